package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/outlay/outlay/internal/model"
	"github.com/outlay/outlay/internal/repository"
)

// ErrExpenseNotFound is returned when an expense does not exist for the
// requesting user. Records owned by other users look exactly the same.
var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseStore is the persistence surface the expense service needs.
// Update and delete are single conditional calls scoped by ID and owner, so
// no read-check-then-mutate sequence (and no locking) is required.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense *model.Expense) error
	ListExpensesByOwner(ctx context.Context, ownerID string) ([]*model.Expense, error)
	UpdateExpense(ctx context.Context, ownerID, id string, title *string, amount *float64) (*model.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, id string) error
}

// ExpenseService handles expense business logic. Every operation takes the
// owner ID resolved by the auth middleware; a client-supplied owner is never
// honored.
type ExpenseService struct {
	store ExpenseStore
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store ExpenseStore) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput defines input for creating an expense.
type CreateExpenseInput struct {
	Title  string
	Amount float64
	// Date is optional; zero means "now".
	Date *time.Time
}

// Create persists a new expense stamped with the authenticated owner.
// Title and amount are stored as given: validation is a client
// responsibility in this design.
func (s *ExpenseService) Create(ctx context.Context, ownerID string, input CreateExpenseInput) (*model.Expense, error) {
	now := time.Now().UTC()

	date := now
	if input.Date != nil && !input.Date.IsZero() {
		date = input.Date.UTC()
	}

	expense := &model.Expense{
		ID:        ulid.Make().String(),
		OwnerID:   ownerID,
		Title:     input.Title,
		Amount:    input.Amount,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// List returns all expenses owned by the user, ordered by date descending.
// No pagination; the unbounded result set is an accepted limitation.
func (s *ExpenseService) List(ctx context.Context, ownerID string) ([]*model.Expense, error) {
	expenses, err := s.store.ListExpensesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpenseInput defines input for updating an expense. Nil fields are
// left unchanged, so a caller can send any subset of the mutable fields.
type UpdateExpenseInput struct {
	Title  *string
	Amount *float64
}

// Update changes the mutable fields of an expense owned by the user.
func (s *ExpenseService) Update(ctx context.Context, ownerID, id string, input UpdateExpenseInput) (*model.Expense, error) {
	expense, err := s.store.UpdateExpense(ctx, ownerID, id, input.Title, input.Amount)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

// Delete removes an expense owned by the user.
func (s *ExpenseService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteExpense(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
