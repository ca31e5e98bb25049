package integration

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/api"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

// newRouter wires the API routes the same way cmd/server does.
func newRouter(st *store.Store, authToken string) chi.Router {
	goalsHandler := api.NewGoalsHandler(st, models.DefaultGoalCategories)
	transactionsHandler := api.NewTransactionsHandler(st)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(api.AuthMiddleware(authToken))

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", goalsHandler.List)
			r.Post("/", goalsHandler.Create)
			r.Get("/stats/summary", goalsHandler.Stats)
			r.Get("/{id}", goalsHandler.Get)
			r.Put("/{id}", goalsHandler.Update)
			r.Delete("/{id}", goalsHandler.Delete)
			r.Post("/{id}/add", goalsHandler.Add)
			r.Post("/{id}/sync", goalsHandler.Sync)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionsHandler.List)
			r.Post("/", transactionsHandler.Create)
			r.Get("/summary/all", transactionsHandler.Summary)
			r.Put("/{id}", transactionsHandler.Update)
			r.Delete("/{id}", transactionsHandler.Delete)
		})
	})

	return r
}

// TestDataBuilder provides helper methods for building test data.
type TestDataBuilder struct{}

// GoalRequest creates a goal creation request due the given number of days
// from now.
func (b *TestDataBuilder) GoalRequest(title string, target float64, daysOut int) models.CreateGoalRequest {
	deadline := time.Now().AddDate(0, 0, daysOut)
	return models.CreateGoalRequest{
		Title:        title,
		TargetAmount: &target,
		Deadline:     &deadline,
	}
}

// IncomeTransaction creates an income transaction request.
func (b *TestDataBuilder) IncomeTransaction(text string, amount float64) models.CreateTransactionRequest {
	return b.transaction(text, amount)
}

// ExpenseTransaction creates an expense transaction request; amount is given
// as a positive magnitude.
func (b *TestDataBuilder) ExpenseTransaction(text string, amount float64) models.CreateTransactionRequest {
	return b.transaction(text, -amount)
}

func (b *TestDataBuilder) transaction(text string, amount float64) models.CreateTransactionRequest {
	return models.CreateTransactionRequest{
		Text:   text,
		Amount: &amount,
	}
}
