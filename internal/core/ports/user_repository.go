package ports

import (
	"context"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update persists profile and admin-editable fields, including
	// administrative balance corrections. Organic balance movement goes
	// through Deposit and the settlement transaction only.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)

	// Deposit atomically increments the balance, guarded server-side so the
	// result never exceeds domain.BalanceCeiling. Returns the new balance.
	// Fails with domain.ErrDepositLimit when the guard rejects the write and
	// domain.ErrUserNotFound when the user does not exist.
	Deposit(ctx context.Context, userID string, amount float64) (float64, error)
}
