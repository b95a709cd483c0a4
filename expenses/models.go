// Package expenses manages expense records. An expense belongs to exactly
// one user: every read of a single record and every mutation is gated on
// ownership, and using a category the caller is not yet linked to grants
// the link on create (and only on create).
package expenses

import "time"

// Expense is a single expense record. CategoryName is populated from the
// join with categories on reads; it is not a stored column.
type Expense struct {
	ID           int       `json:"id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	Date         Date      `json:"date"`
	CategoryID   int       `json:"category_id"`
	CategoryName string    `json:"category_name"`
	UserID       int       `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExpenseRequest is the payload for creating or updating an expense.
type ExpenseRequest struct {
	Description string   `json:"description" example:"Supermercado"`
	Amount      *float64 `json:"amount" example:"152.75"`
	Date        *Date    `json:"date" swaggertype:"string" example:"2026-08-15"`
	CategoryID  int      `json:"category_id" example:"1"`
}

// MessageResponse is the body of a successful delete.
type MessageResponse struct {
	Message string `json:"message" example:"expense removed successfully"`
}
