package ports

import (
	"context"
	"time"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// DashboardResult aggregates the admin panel counters.
type DashboardResult struct {
	TotalUsers     int64
	TotalEvents    int64
	UpcomingEvents int64
	LatestEvents   []*domain.Event
}

// AdminUpdateUserInput carries the admin-editable user fields. The zero value
// of Password leaves the current hash untouched.
type AdminUpdateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Document  string
	BirthDate time.Time
	Balance   float64
	IsAdmin   bool
	Password  string
}

// AdminService backs the administration panel.
type AdminService interface {
	Dashboard(ctx context.Context) (*DashboardResult, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id string, in AdminUpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
