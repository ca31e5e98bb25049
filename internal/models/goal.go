package models

import (
	"fmt"
	"math"
	"time"
)

// Goal statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// DefaultCategory is applied when a goal or transaction omits its category.
const DefaultCategory = "General"

// DefaultGoalCategories are the built-in goal category labels. They can be
// overridden by a YAML file, see config.LoadGoalCategories.
var DefaultGoalCategories = []string{
	"Vacation",
	"Emergency Fund",
	"Education",
	"Home",
	"Car",
	"Wedding",
	"Retirement",
	"General",
	"Other",
}

// Goal represents a savings target with a deadline. Only the stored fields
// live here; derived values are computed per read via WithDerived.
type Goal struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Deadline      time.Time `json:"deadline"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	AutoTrack     bool      `json:"autoTrack"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ReconcileStatus enforces the completion invariant: a goal whose accumulated
// amount has reached its target is completed. Called on every write path that
// touches CurrentAmount. The amount itself is never clamped to the target.
// The transition is one-way: a goal already completed stays completed even if
// the amount later drops below the target.
func (g *Goal) ReconcileStatus() {
	if g.CurrentAmount >= g.TargetAmount {
		g.Status = StatusCompleted
	}
}

// GoalResponse is a Goal plus the fields derived on read.
type GoalResponse struct {
	Goal
	Progress               int     `json:"progress"`
	Remaining              float64 `json:"remaining"`
	DaysRemaining          int     `json:"daysRemaining"`
	MonthlySavingsRequired float64 `json:"monthlySavingsRequired"`
}

// WithDerived computes the virtual fields relative to now.
func (g *Goal) WithDerived(now time.Time) *GoalResponse {
	return &GoalResponse{
		Goal:                   *g,
		Progress:               g.progress(),
		Remaining:              g.remaining(),
		DaysRemaining:          g.daysRemaining(now),
		MonthlySavingsRequired: g.monthlySavingsRequired(now),
	}
}

// progress is the saved percentage, clamped to [0, 100].
func (g *Goal) progress() int {
	if g.TargetAmount <= 0 {
		if g.CurrentAmount > 0 {
			return 100
		}
		return 0
	}
	p := int(math.Round(g.CurrentAmount / g.TargetAmount * 100))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// remaining is the amount still to save, never negative.
func (g *Goal) remaining() float64 {
	if r := g.TargetAmount - g.CurrentAmount; r > 0 {
		return r
	}
	return 0
}

// daysRemaining counts days until the deadline, rounded up. Past deadlines
// yield a negative count.
func (g *Goal) daysRemaining(now time.Time) int {
	return int(math.Ceil(g.Deadline.Sub(now).Hours() / 24))
}

// monthlySavingsRequired spreads the remaining amount over the months left,
// treating anything under a month (or an elapsed deadline) as due in full.
func (g *Goal) monthlySavingsRequired(now time.Time) float64 {
	remaining := g.remaining()
	days := g.daysRemaining(now)
	if days <= 0 {
		return remaining
	}
	months := float64(days) / 30
	if months < 1 {
		months = 1
	}
	return math.Ceil(remaining / months)
}

// CreateGoalRequest represents the request to create a goal. TargetAmount is
// a pointer so that a missing field can be told apart from zero.
type CreateGoalRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	TargetAmount  *float64   `json:"targetAmount"`
	CurrentAmount *float64   `json:"currentAmount,omitempty"`
	Deadline      *time.Time `json:"deadline"`
	Category      string     `json:"category,omitempty"`
	AutoTrack     bool       `json:"autoTrack,omitempty"`
}

// Validate checks the required goal fields against the allowed categories.
func (r *CreateGoalRequest) Validate(categories []string) error {
	if r.Title == "" || r.TargetAmount == nil || *r.TargetAmount == 0 || r.Deadline == nil {
		return &ValidationError{Message: "Please provide title, target amount, and deadline"}
	}
	if *r.TargetAmount < 0 {
		return &ValidationError{Message: "Target amount must not be negative"}
	}
	if r.Category != "" && !contains(categories, r.Category) {
		return &ValidationError{Message: fmt.Sprintf("Unknown category %q", r.Category)}
	}
	return nil
}

// UpdateGoalRequest represents a partial goal update. CurrentAmount,
// AutoTrack, and Description accept explicit zero values through their
// pointers; for every other field both a nil pointer and a zero value mean
// "leave unchanged".
type UpdateGoalRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	TargetAmount  *float64   `json:"targetAmount,omitempty"`
	CurrentAmount *float64   `json:"currentAmount,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Category      *string    `json:"category,omitempty"`
	Status        *string    `json:"status,omitempty"`
	AutoTrack     *bool      `json:"autoTrack,omitempty"`
}

// Validate checks the provided fields against the allowed categories and
// statuses. Empty strings are skipped: they mean "leave unchanged", not a
// value to validate.
func (r *UpdateGoalRequest) Validate(categories []string) error {
	if r.Category != nil && *r.Category != "" && !contains(categories, *r.Category) {
		return &ValidationError{Message: fmt.Sprintf("Unknown category %q", *r.Category)}
	}
	if r.Status != nil && *r.Status != "" {
		switch *r.Status {
		case StatusActive, StatusCompleted, StatusCancelled:
		default:
			return &ValidationError{Message: fmt.Sprintf("Unknown status %q", *r.Status)}
		}
	}
	return nil
}

// AddToGoalRequest represents the request to add an amount to a goal.
type AddToGoalRequest struct {
	Amount *float64 `json:"amount"`
}

// Validate requires a strictly positive amount.
func (r *AddToGoalRequest) Validate() error {
	if r.Amount == nil || *r.Amount <= 0 {
		return &ValidationError{Message: "Please provide a valid amount"}
	}
	return nil
}

// GoalStats is the aggregate over all goals, computed on read.
type GoalStats struct {
	TotalGoals        int     `json:"totalGoals"`
	ActiveGoals       int     `json:"activeGoals"`
	CompletedGoals    int     `json:"completedGoals"`
	TotalTargetAmount float64 `json:"totalTargetAmount"`
	TotalSavedAmount  float64 `json:"totalSavedAmount"`
	TotalRemaining    float64 `json:"totalRemaining"`
	OverallProgress   int     `json:"overallProgress"`
}

// AggregateGoals folds all goals into a GoalStats. Each goal's negative
// remaining is clamped to zero before summing, so overshooting one goal does
// not offset another.
func AggregateGoals(goals []Goal) GoalStats {
	var stats GoalStats
	stats.TotalGoals = len(goals)
	for _, g := range goals {
		switch g.Status {
		case StatusActive:
			stats.ActiveGoals++
		case StatusCompleted:
			stats.CompletedGoals++
		}
		stats.TotalTargetAmount += g.TargetAmount
		stats.TotalSavedAmount += g.CurrentAmount
		if rem := g.TargetAmount - g.CurrentAmount; rem > 0 {
			stats.TotalRemaining += rem
		}
	}
	if stats.TotalTargetAmount > 0 {
		stats.OverallProgress = int(math.Round(stats.TotalSavedAmount / stats.TotalTargetAmount * 100))
	}
	return stats
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
