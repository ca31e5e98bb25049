package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/models"
	"fintrack/internal/store"
)

// TransactionsHandler handles transaction-related API endpoints.
type TransactionsHandler struct {
	store *store.Store
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(s *store.Store) *TransactionsHandler {
	return &TransactionsHandler{store: s}
}

// List handles GET /api/transactions. An optional category query parameter
// narrows the result server-side.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}

	txns, err := h.store.ListTransactions(category)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list transactions", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Error fetching transactions")
		return
	}

	writeJSON(w, http.StatusOK, txns)
}

// Create handles POST /api/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	txn, err := h.store.CreateTransaction(&req)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create transaction", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Error adding transaction")
		return
	}

	writeJSON(w, http.StatusCreated, txn)
}

// Update handles PUT /api/transactions/{id}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	txn, err := h.store.UpdateTransaction(id, &req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to update transaction", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "Error updating transaction")
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

// Delete handles DELETE /api/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteTransaction(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to delete transaction", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "Error deleting transaction")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

// Summary handles GET /api/transactions/summary/all.
func (h *TransactionsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.Summary()
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to compute summary", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Error fetching summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// parseID extracts the id path parameter, writing a 400 on malformed input.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid record ID")
		return 0, false
	}
	return id, true
}
