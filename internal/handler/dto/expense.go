package dto

import (
	"time"

	"github.com/outlay/outlay/internal/model"
)

// CreateExpenseRequest represents the request body for creating an expense.
type CreateExpenseRequest struct {
	Title  string     `json:"title"`
	Amount float64    `json:"amount"`
	Date   *time.Time `json:"date,omitempty"`
}

// UpdateExpenseRequest represents the request body for updating an expense.
// Omitted fields are left unchanged on the record.
type UpdateExpenseRequest struct {
	Title  *string  `json:"title"`
	Amount *float64 `json:"amount"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToExpenseResponse converts an Expense model to ExpenseResponse DTO.
func ToExpenseResponse(expense *model.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        expense.ID,
		OwnerID:   expense.OwnerID,
		Title:     expense.Title,
		Amount:    expense.Amount,
		Date:      expense.Date,
		CreatedAt: expense.CreatedAt,
		UpdatedAt: expense.UpdatedAt,
	}
}

// ToExpenseListResponse converts a slice of Expense models to DTOs.
// Always returns a non-nil slice so an empty list encodes as [].
func ToExpenseListResponse(expenses []*model.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = ToExpenseResponse(expense)
	}
	return responses
}
