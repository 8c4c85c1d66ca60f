package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/outlay/outlay/internal/model"
	"github.com/outlay/outlay/internal/repository"
)

// MemoryStore is an in-memory implementation of the service store
// interfaces. It mirrors the repository error contract so services behave
// identically against it: same sentinels, same ownership scoping, same
// ordering. Calls counts every store method invocation so tests can assert
// that rejected requests never touch storage.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*model.User
	expenses map[string]*model.Expense

	Calls int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*model.User),
		expenses: make(map[string]*model.Expense),
	}
}

// CreateUser stores a user, enforcing email uniqueness.
func (s *MemoryStore) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrEmailExists
		}
	}

	copied := *user
	s.users[user.ID] = &copied
	return nil
}

// GetUserByEmail looks a user up by exact email.
func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// CreateExpense stores an expense.
func (s *MemoryStore) CreateExpense(ctx context.Context, expense *model.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	copied := *expense
	s.expenses[expense.ID] = &copied
	return nil
}

// ListExpensesByOwner returns the owner's expenses, date descending with ID
// as tiebreak.
func (s *MemoryStore) ListExpensesByOwner(ctx context.Context, ownerID string) ([]*model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	var expenses []*model.Expense
	for _, expense := range s.expenses {
		if expense.OwnerID == ownerID {
			copied := *expense
			expenses = append(expenses, &copied)
		}
	}

	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})

	return expenses, nil
}

// UpdateExpense mutates the given fields only when both ID and owner match.
// Nil fields keep their stored value, mirroring the COALESCE update in the
// real repository.
func (s *MemoryStore) UpdateExpense(ctx context.Context, ownerID, id string, title *string, amount *float64) (*model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	expense, ok := s.expenses[id]
	if !ok || expense.OwnerID != ownerID {
		return nil, repository.ErrExpenseNotFound
	}

	if title != nil {
		expense.Title = *title
	}
	if amount != nil {
		expense.Amount = *amount
	}
	expense.UpdatedAt = time.Now().UTC()

	copied := *expense
	return &copied, nil
}

// DeleteExpense removes an expense only when both ID and owner match.
func (s *MemoryStore) DeleteExpense(ctx context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	expense, ok := s.expenses[id]
	if !ok || expense.OwnerID != ownerID {
		return repository.ErrExpenseNotFound
	}

	delete(s.expenses, id)
	return nil
}

// GetExpense returns a stored expense by bare ID, bypassing ownership
// scoping. Test-only accessor for asserting a record was left unchanged.
func (s *MemoryStore) GetExpense(id string) *model.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expense, ok := s.expenses[id]
	if !ok {
		return nil
	}
	copied := *expense
	return &copied
}
