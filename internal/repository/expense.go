package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/outlay/outlay/internal/model"
)

// ErrExpenseNotFound is returned when no expense matches both the ID and the
// owner. A record owned by another user is indistinguishable from a missing
// one.
var ErrExpenseNotFound = errors.New("expense not found")

// CreateExpense inserts a new expense into the database.
func (r *Repository) CreateExpense(ctx context.Context, expense *model.Expense) error {
	query := `
		INSERT INTO expenses (id, owner_id, title, amount, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.OwnerID,
		expense.Title,
		expense.Amount,
		expense.Date,
		expense.CreatedAt,
		expense.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// ListExpensesByOwner retrieves all expenses for one owner, most recent date
// first. ID is the tiebreak so the order is stable across equal dates.
func (r *Repository) ListExpensesByOwner(ctx context.Context, ownerID string) ([]*model.Expense, error) {
	query := `
		SELECT id, owner_id, title, amount, date, created_at, updated_at
		FROM expenses
		WHERE owner_id = $1
		ORDER BY date DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// UpdateExpense updates title and amount of an expense in a single
// conditional statement scoped by both ID and owner. Nil fields are left
// unchanged (COALESCE against the stored value). Zero matched rows means
// the record is absent or owned by someone else; both return
// ErrExpenseNotFound.
func (r *Repository) UpdateExpense(ctx context.Context, ownerID, id string, title *string, amount *float64) (*model.Expense, error) {
	query := `
		UPDATE expenses
		SET title = COALESCE($3, title), amount = COALESCE($4, amount), updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, title, amount, date, created_at, updated_at
	`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id, ownerID, title, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return expense, nil
}

// DeleteExpense removes an expense in a single conditional statement scoped
// by both ID and owner.
func (r *Repository) DeleteExpense(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM expenses WHERE id = $1 AND owner_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// scanExpense scans a single row into an Expense model.
func scanExpense(row pgx.Row) (*model.Expense, error) {
	var expense model.Expense
	err := row.Scan(
		&expense.ID,
		&expense.OwnerID,
		&expense.Title,
		&expense.Amount,
		&expense.Date,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	return &expense, err
}
