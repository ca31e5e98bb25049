package models

import (
	"errors"
	"testing"
	"time"
)

func TestProgressClamping(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		want    int
	}{
		{"empty goal", 0, 10000, 0},
		{"halfway", 5000, 10000, 50},
		{"rounds", 333, 1000, 33},
		{"rounds up", 335, 1000, 34},
		{"exactly complete", 10000, 10000, 100},
		{"overshoot clamps to 100", 12000, 10000, 100},
		{"zero target with savings", 500, 0, 100},
		{"zero target untouched", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{CurrentAmount: tt.current, TargetAmount: tt.target}
			if got := g.progress(); got != tt.want {
				t.Errorf("progress() = %d, want %d", got, tt.want)
			}
			if got := g.progress(); got < 0 || got > 100 {
				t.Errorf("progress() = %d, outside [0,100]", got)
			}
		})
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		want    float64
	}{
		{"partial", 3000, 10000, 7000},
		{"complete", 10000, 10000, 0},
		{"overshoot", 15000, 10000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{CurrentAmount: tt.current, TargetAmount: tt.target}
			if got := g.remaining(); got != tt.want {
				t.Errorf("remaining() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"sixty days out", now.AddDate(0, 0, 60), 60},
		{"partial day rounds up", now.Add(36 * time.Hour), 2},
		{"today later", now.Add(6 * time.Hour), 1},
		{"already passed", now.AddDate(0, 0, -10), -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{Deadline: tt.deadline}
			if got := g.daysRemaining(now); got != tt.want {
				t.Errorf("daysRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthlySavingsRequired(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		current  float64
		target   float64
		deadline time.Time
		want     float64
	}{
		{"three months", 0, 9000, now.AddDate(0, 0, 90), 3000},
		{"under a month due in full", 0, 9000, now.AddDate(0, 0, 10), 9000},
		{"deadline passed is the remaining", 2000, 9000, now.AddDate(0, 0, -5), 7000},
		{"completed goal needs nothing", 9000, 9000, now.AddDate(0, 0, 90), 0},
		{"rounds up", 0, 10000, now.AddDate(0, 0, 90), 3334},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{CurrentAmount: tt.current, TargetAmount: tt.target, Deadline: tt.deadline}
			if got := g.monthlySavingsRequired(now); got != tt.want {
				t.Errorf("monthlySavingsRequired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReconcileStatus(t *testing.T) {
	t.Run("completes at target", func(t *testing.T) {
		g := Goal{CurrentAmount: 10000, TargetAmount: 10000, Status: StatusActive}
		g.ReconcileStatus()
		if g.Status != StatusCompleted {
			t.Errorf("Status = %q, want %q", g.Status, StatusCompleted)
		}
	})

	t.Run("completes past target without clamping", func(t *testing.T) {
		g := Goal{CurrentAmount: 12000, TargetAmount: 10000, Status: StatusActive}
		g.ReconcileStatus()
		if g.Status != StatusCompleted {
			t.Errorf("Status = %q, want %q", g.Status, StatusCompleted)
		}
		if g.CurrentAmount != 12000 {
			t.Errorf("CurrentAmount = %v, want 12000 (never clamped)", g.CurrentAmount)
		}
	})

	t.Run("leaves unfinished goals alone", func(t *testing.T) {
		g := Goal{CurrentAmount: 5000, TargetAmount: 10000, Status: StatusActive}
		g.ReconcileStatus()
		if g.Status != StatusActive {
			t.Errorf("Status = %q, want %q", g.Status, StatusActive)
		}
	})

	t.Run("completed stays completed below target", func(t *testing.T) {
		g := Goal{CurrentAmount: 3000, TargetAmount: 10000, Status: StatusCompleted}
		g.ReconcileStatus()
		if g.Status != StatusCompleted {
			t.Errorf("Status = %q, want %q", g.Status, StatusCompleted)
		}
	})

	t.Run("does not resurrect cancelled below target", func(t *testing.T) {
		g := Goal{CurrentAmount: 100, TargetAmount: 10000, Status: StatusCancelled}
		g.ReconcileStatus()
		if g.Status != StatusCancelled {
			t.Errorf("Status = %q, want %q", g.Status, StatusCancelled)
		}
	})
}

func TestAggregateGoals(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		stats := AggregateGoals(nil)
		if stats.TotalGoals != 0 || stats.OverallProgress != 0 {
			t.Errorf("AggregateGoals(nil) = %+v, want zero stats", stats)
		}
	})

	t.Run("zero total target", func(t *testing.T) {
		stats := AggregateGoals([]Goal{{TargetAmount: 0, CurrentAmount: 0, Status: StatusActive}})
		if stats.OverallProgress != 0 {
			t.Errorf("OverallProgress = %d, want 0 when total target is 0", stats.OverallProgress)
		}
	})

	t.Run("clamps per-goal negative remaining", func(t *testing.T) {
		goals := []Goal{
			{TargetAmount: 10000, CurrentAmount: 15000, Status: StatusCompleted},
			{TargetAmount: 10000, CurrentAmount: 2000, Status: StatusActive},
		}
		stats := AggregateGoals(goals)
		if stats.TotalRemaining != 8000 {
			t.Errorf("TotalRemaining = %v, want 8000 (overshoot must not offset)", stats.TotalRemaining)
		}
		if stats.TotalSavedAmount != 17000 {
			t.Errorf("TotalSavedAmount = %v, want 17000", stats.TotalSavedAmount)
		}
		if stats.ActiveGoals != 1 || stats.CompletedGoals != 1 {
			t.Errorf("counts = %d active, %d completed, want 1/1", stats.ActiveGoals, stats.CompletedGoals)
		}
		if stats.OverallProgress != 85 {
			t.Errorf("OverallProgress = %d, want 85", stats.OverallProgress)
		}
	})
}

func TestUpdateGoalRequestValidate(t *testing.T) {
	known := "Vacation"
	unknown := "Yacht"
	empty := ""
	badStatus := "paused"

	tests := []struct {
		name    string
		req     UpdateGoalRequest
		wantErr bool
	}{
		{"no fields", UpdateGoalRequest{}, false},
		{"known category", UpdateGoalRequest{Category: &known}, false},
		{"unknown category", UpdateGoalRequest{Category: &unknown}, true},
		{"empty category means unchanged", UpdateGoalRequest{Category: &empty}, false},
		{"empty status means unchanged", UpdateGoalRequest{Status: &empty}, false},
		{"unknown status", UpdateGoalRequest{Status: &badStatus}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(DefaultGoalCategories); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateGoalRequestValidate(t *testing.T) {
	deadline := time.Now().AddDate(0, 2, 0)
	target := 10000.0
	zero := 0.0

	tests := []struct {
		name    string
		req     CreateGoalRequest
		wantErr bool
	}{
		{"valid", CreateGoalRequest{Title: "Trip", TargetAmount: &target, Deadline: &deadline}, false},
		{"missing title", CreateGoalRequest{TargetAmount: &target, Deadline: &deadline}, true},
		{"missing target", CreateGoalRequest{Title: "Trip", Deadline: &deadline}, true},
		{"zero target", CreateGoalRequest{Title: "Trip", TargetAmount: &zero, Deadline: &deadline}, true},
		{"missing deadline", CreateGoalRequest{Title: "Trip", TargetAmount: &target}, true},
		{"known category", CreateGoalRequest{Title: "Trip", TargetAmount: &target, Deadline: &deadline, Category: "Vacation"}, false},
		{"unknown category", CreateGoalRequest{Title: "Trip", TargetAmount: &target, Deadline: &deadline, Category: "Yacht"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(DefaultGoalCategories)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("Validate() error type = %T, want *ValidationError", err)
				}
			}
		})
	}
}
