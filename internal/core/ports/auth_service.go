package ports

import (
	"context"
	"time"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// RegisterInput is the first registration step: account credentials only.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// ProfileInput is the second registration step: personal data. Submitting it
// completes the registration.
type ProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
	Document  string
	BirthDate time.Time
}

// AuthService implements account registration, profile completion and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	CompleteProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error)
	// Login returns a signed token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
