package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/store"
)

// GoalsHandler handles goal-related API endpoints. Responses carry the
// derived virtual fields (progress, remaining, daysRemaining,
// monthlySavingsRequired) computed at read time.
type GoalsHandler struct {
	store      *store.Store
	categories []string
}

// NewGoalsHandler creates a new GoalsHandler. categories is the set of
// accepted goal category labels.
func NewGoalsHandler(s *store.Store, categories []string) *GoalsHandler {
	return &GoalsHandler{store: s, categories: categories}
}

// List handles GET /api/goals.
func (h *GoalsHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.store.ListGoals()
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list goals", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now()
	resp := make([]*models.GoalResponse, 0, len(goals))
	for i := range goals {
		resp = append(resp, goals[i].WithDerived(now))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/goals/{id}.
func (h *GoalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	goal, err := h.store.GetGoal(id)
	if err != nil {
		h.writeGoalError(w, r, err, "failed to get goal", id)
		return
	}

	writeJSON(w, http.StatusOK, goal.WithDerived(time.Now()))
}

// Create handles POST /api/goals.
func (h *GoalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if err := req.Validate(h.categories); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.store.CreateGoal(&req)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create goal", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, goal.WithDerived(time.Now()))
}

// Update handles PUT /api/goals/{id}. Absent fields are left unchanged;
// currentAmount, autoTrack, and description accept explicit zero values.
func (h *GoalsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if err := req.Validate(h.categories); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.store.UpdateGoal(id, &req)
	if err != nil {
		h.writeGoalError(w, r, err, "failed to update goal", id)
		return
	}

	writeJSON(w, http.StatusOK, goal.WithDerived(time.Now()))
}

// Delete handles DELETE /api/goals/{id}.
func (h *GoalsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteGoal(id); err != nil {
		h.writeGoalError(w, r, err, "failed to delete goal", id)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted successfully"})
}

// Add handles POST /api/goals/{id}/add: a manual contribution toward the
// goal's target.
func (h *GoalsHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req models.AddToGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.store.AddToGoal(id, *req.Amount)
	if err != nil {
		h.writeGoalError(w, r, err, "failed to add to goal", id)
		return
	}

	writeJSON(w, http.StatusOK, goal.WithDerived(time.Now()))
}

// Sync handles POST /api/goals/{id}/sync: recompute the accumulated amount
// from income transactions recorded since the goal was created.
func (h *GoalsHandler) Sync(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	goal, err := h.store.SyncGoal(id)
	if err != nil {
		h.writeGoalError(w, r, err, "failed to sync goal", id)
		return
	}

	writeJSON(w, http.StatusOK, goal.WithDerived(time.Now()))
}

// Stats handles GET /api/goals/stats/summary.
func (h *GoalsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GoalStats()
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to compute goal stats", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// writeGoalError maps a store error to the HTTP response and logs anything
// unexpected.
func (h *GoalsHandler) writeGoalError(w http.ResponseWriter, r *http.Request, err error, msg string, id int64) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "Goal not found")
		return
	}
	slog.ErrorContext(r.Context(), msg, "error", err, "id", id)
	writeJSONError(w, http.StatusInternalServerError, "Server error")
}
