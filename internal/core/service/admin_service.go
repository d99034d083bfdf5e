package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

const dashboardLatestEvents = 5

// AdminService backs the administration panel: aggregate counters and user
// management. Authorization happens at the transport layer (admin-only route
// group); the service assumes an admin caller.
type AdminService struct {
	users  ports.UserRepository
	events ports.EventRepository
	log    zerolog.Logger
}

func NewAdminService(users ports.UserRepository, events ports.EventRepository, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, events: events, log: log}
}

func (s *AdminService) Dashboard(ctx context.Context) (*ports.DashboardResult, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count users: %w", err)
	}
	totalEvents, err := s.events.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count events: %w", err)
	}
	upcoming, err := s.events.CountUpcoming(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count upcoming: %w", err)
	}
	latest, err := s.events.FindLatest(ctx, dashboardLatestEvents)
	if err != nil {
		return nil, fmt.Errorf("dashboard: latest events: %w", err)
	}

	return &ports.DashboardResult{
		TotalUsers:     totalUsers,
		TotalEvents:    totalEvents,
		UpcomingEvents: upcoming,
		LatestEvents:   latest,
	}, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// UpdateUser applies an admin edit. The balance set here is an administrative
// correction and still honors the ceiling invariant.
func (s *AdminService) UpdateUser(ctx context.Context, id string, in ports.AdminUpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	if username == "" || len(username) > 28 {
		return nil, fmt.Errorf("%w: username must be between 1 and 28 characters", domain.ErrValidation)
	}
	if in.Balance < 0 || in.Balance > domain.BalanceCeiling {
		return nil, fmt.Errorf("%w: balance must be between 0 and %.0f", domain.ErrValidation, domain.BalanceCeiling)
	}
	if in.Password != "" && len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}

	user.Username = username
	user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Phone = in.Phone
	user.Document = in.Document
	user.BirthDate = in.BirthDate
	user.Balance = in.Balance
	user.IsAdmin = in.IsAdmin
	user.UpdatedAt = time.Now().UTC()

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Bool("is_admin", user.IsAdmin).Msg("user updated by admin")
	return user, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted by admin")
	return nil
}
