// Package model defines domain entities for the application.
package model

import "time"

// Expense represents a single spending record owned by one user.
// OwnerID is immutable after creation and is never taken from the client.
type Expense struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
