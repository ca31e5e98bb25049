package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"fintrack/internal/models"
)

// CreateGoal creates a new goal. Category defaults to "General", status to
// active; a pre-funded goal is completed immediately when it already covers
// its target.
func (s *Store) CreateGoal(req *models.CreateGoalRequest) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketGoals))
		id, err := nextID(b)
		if err != nil {
			return fmt.Errorf("failed to generate ID: %w", err)
		}

		category := req.Category
		if category == "" {
			category = models.DefaultCategory
		}
		current := 0.0
		if req.CurrentAmount != nil {
			current = *req.CurrentAmount
		}

		goal = models.Goal{
			ID:            id,
			Title:         req.Title,
			Description:   req.Description,
			TargetAmount:  *req.TargetAmount,
			CurrentAmount: current,
			Deadline:      *req.Deadline,
			Category:      category,
			Status:        models.StatusActive,
			AutoTrack:     req.AutoTrack,
			CreatedAt:     time.Now(),
		}
		goal.ReconcileStatus()
		return putRecord(b, id, &goal)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}
	return &goal, nil
}

// GetGoal retrieves a goal by ID.
func (s *Store) GetGoal(id int64) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.View(func(tx *bolt.Tx) error {
		return getRecord(tx.Bucket([]byte(BucketGoals)), id, &goal)
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals retrieves all goals ordered newest-created-first.
func (s *Store) ListGoals() ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketGoals))
		return forEachRecord(b, func(data []byte) error {
			var goal models.Goal
			if err := json.Unmarshal(data, &goal); err != nil {
				return fmt.Errorf("failed to unmarshal goal: %w", err)
			}
			goals = append(goals, goal)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(goals, func(i, j int) bool {
		if !goals[i].CreatedAt.Equal(goals[j].CreatedAt) {
			return goals[i].CreatedAt.After(goals[j].CreatedAt)
		}
		return goals[i].ID > goals[j].ID
	})
	return goals, nil
}

// UpdateGoal applies a partial update to an existing goal and re-evaluates
// the completion invariant. Only CurrentAmount, AutoTrack, and Description
// accept explicit zero values; for the other fields a zero value means
// "leave unchanged", same as an absent one. The read-modify-write runs in
// one write transaction, so concurrent updates to the same goal serialize
// instead of overwriting each other.
func (s *Store) UpdateGoal(id int64, req *models.UpdateGoalRequest) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketGoals))
		if err := getRecord(b, id, &goal); err != nil {
			return err
		}

		if req.Title != nil && *req.Title != "" {
			goal.Title = *req.Title
		}
		if req.Description != nil {
			goal.Description = *req.Description
		}
		if req.TargetAmount != nil && *req.TargetAmount != 0 {
			goal.TargetAmount = *req.TargetAmount
		}
		if req.CurrentAmount != nil {
			goal.CurrentAmount = *req.CurrentAmount
		}
		if req.Deadline != nil && !req.Deadline.IsZero() {
			goal.Deadline = *req.Deadline
		}
		if req.Category != nil && *req.Category != "" {
			goal.Category = *req.Category
		}
		if req.Status != nil && *req.Status != "" {
			goal.Status = *req.Status
		}
		if req.AutoTrack != nil {
			goal.AutoTrack = *req.AutoTrack
		}

		goal.ReconcileStatus()
		return putRecord(b, id, &goal)
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// DeleteGoal deletes a goal by ID, returning ErrNotFound when absent.
func (s *Store) DeleteGoal(id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return deleteRecord(tx.Bucket([]byte(BucketGoals)), id)
	})
}

// AddToGoal adds amount to the goal's accumulated total and re-evaluates the
// completion invariant. Amount validation happens at the handler boundary.
func (s *Store) AddToGoal(id int64, amount float64) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketGoals))
		if err := getRecord(b, id, &goal); err != nil {
			return err
		}
		goal.CurrentAmount += amount
		goal.ReconcileStatus()
		return putRecord(b, id, &goal)
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// SyncGoal recomputes the goal's accumulated amount as the sum of all
// income-signed transactions dated on or after the goal's creation. The sum
// overwrites the stored amount, discarding manual entries. Reading the
// transaction bucket and writing the goal happen in the same transaction.
func (s *Store) SyncGoal(id int64) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Update(func(tx *bolt.Tx) error {
		gb := tx.Bucket([]byte(BucketGoals))
		if err := getRecord(gb, id, &goal); err != nil {
			return err
		}

		var total float64
		tb := tx.Bucket([]byte(BucketTransactions))
		err := forEachRecord(tb, func(data []byte) error {
			var txn models.Transaction
			if err := json.Unmarshal(data, &txn); err != nil {
				return fmt.Errorf("failed to unmarshal transaction: %w", err)
			}
			if txn.IsIncome() && !txn.Date.Before(goal.CreatedAt) {
				total += txn.Amount
			}
			return nil
		})
		if err != nil {
			return err
		}

		goal.CurrentAmount = total
		goal.ReconcileStatus()
		return putRecord(gb, id, &goal)
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// GoalStats aggregates all goals into counts, totals, and overall progress.
func (s *Store) GoalStats() (models.GoalStats, error) {
	goals, err := s.ListGoals()
	if err != nil {
		return models.GoalStats{}, err
	}
	return models.AggregateGoals(goals), nil
}
