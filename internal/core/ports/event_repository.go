package ports

import (
	"context"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// ListEventsFilter carries the query parameters for listing events.
type ListEventsFilter struct {
	CategoryID   string // optional: filter by category
	UpcomingOnly bool   // optional: date >= now
	Page         int    // 1-based
	Limit        int    // max rows per page (capped at 100 by the service)
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// List returns a page of events matching filter and the total count.
	List(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, int64, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountUpcoming(ctx context.Context) (int64, error)
	// FindLatest returns the n most recently created events.
	FindLatest(ctx context.Context, n int) ([]*domain.Event, error)
}
