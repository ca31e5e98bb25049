package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"fintrack/internal/models"
)

// CreateTransaction creates a new transaction in the database. The category
// defaults to "General" and the date to now when omitted.
func (s *Store) CreateTransaction(req *models.CreateTransactionRequest) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketTransactions))
		id, err := nextID(b)
		if err != nil {
			return fmt.Errorf("failed to generate ID: %w", err)
		}

		category := req.Category
		if category == "" {
			category = models.DefaultCategory
		}
		date := time.Now()
		if req.Date != nil {
			date = *req.Date
		}

		txn = models.Transaction{
			ID:       id,
			Text:     req.Text,
			Amount:   *req.Amount,
			Category: category,
			Date:     date,
			Notes:    req.Notes,
		}
		return putRecord(b, id, &txn)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return &txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *Store) GetTransaction(id int64) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.View(func(tx *bolt.Tx) error {
		return getRecord(tx.Bucket([]byte(BucketTransactions)), id, &txn)
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListTransactions retrieves all transactions ordered newest-by-date-first,
// optionally filtered by category.
func (s *Store) ListTransactions(category *string) ([]models.Transaction, error) {
	txns := make([]models.Transaction, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketTransactions))
		return forEachRecord(b, func(data []byte) error {
			var txn models.Transaction
			if err := json.Unmarshal(data, &txn); err != nil {
				return fmt.Errorf("failed to unmarshal transaction: %w", err)
			}
			if category != nil && txn.Category != *category {
				return nil
			}
			txns = append(txns, txn)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].ID > txns[j].ID
	})
	return txns, nil
}

// UpdateTransaction applies a partial update to an existing transaction. The
// read-modify-write runs in one write transaction.
func (s *Store) UpdateTransaction(id int64, req *models.UpdateTransactionRequest) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketTransactions))
		if err := getRecord(b, id, &txn); err != nil {
			return err
		}

		if req.Text != nil {
			txn.Text = *req.Text
		}
		if req.Amount != nil {
			txn.Amount = *req.Amount
		}
		if req.Category != nil {
			txn.Category = *req.Category
		}
		if req.Date != nil {
			txn.Date = *req.Date
		}
		if req.Notes != nil {
			txn.Notes = *req.Notes
		}

		return putRecord(b, id, &txn)
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// DeleteTransaction deletes a transaction by ID, returning ErrNotFound when
// the id has no record.
func (s *Store) DeleteTransaction(id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return deleteRecord(tx.Bucket([]byte(BucketTransactions)), id)
	})
}

// Summary aggregates all transactions into income, expense, and balance.
func (s *Store) Summary() (models.Summary, error) {
	txns, err := s.ListTransactions(nil)
	if err != nil {
		return models.Summary{}, err
	}
	return models.Summarize(txns), nil
}
