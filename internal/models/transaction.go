package models

import "time"

// Transaction represents a single signed monetary event. A positive amount is
// income, a negative amount is an expense; the sign is the only discriminator.
type Transaction struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes,omitempty"`
}

// IsIncome reports whether the transaction counts toward income.
func (t *Transaction) IsIncome() bool {
	return t.Amount > 0
}

// CreateTransactionRequest represents the request to create a transaction.
// Amount is a pointer so that a missing field can be told apart from zero.
type CreateTransactionRequest struct {
	Text     string     `json:"text"`
	Amount   *float64   `json:"amount"`
	Category string     `json:"category,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// Validate checks required fields for transaction creation.
func (r *CreateTransactionRequest) Validate() error {
	if r.Text == "" {
		return &ValidationError{Message: "Please provide text"}
	}
	if r.Amount == nil {
		return &ValidationError{Message: "Please provide amount"}
	}
	return nil
}

// UpdateTransactionRequest represents a partial update: nil fields are left
// unchanged.
type UpdateTransactionRequest struct {
	Text     *string    `json:"text,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
	Category *string    `json:"category,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

// Summary is the income/expense/balance aggregate over a transaction set.
// It is computed on read and never persisted.
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Summarize partitions transactions by amount sign. Expense is reported as a
// positive magnitude, so Balance == Income - Expense always holds.
func Summarize(txns []Transaction) Summary {
	var s Summary
	for _, t := range txns {
		if t.Amount > 0 {
			s.Income += t.Amount
		} else {
			s.Expense += -t.Amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}
