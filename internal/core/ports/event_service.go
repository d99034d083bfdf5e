package ports

import (
	"context"
	"time"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// CreateEventInput carries all data needed to create an event.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Price       float64
	Capacity    int // 0 = unlimited
	CategoryID  string
}

// UpdateEventInput mirrors CreateEventInput for edits.
type UpdateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Price       float64
	Capacity    int
	CategoryID  string
}

// ListEventsInput carries all parameters for the list endpoint.
type ListEventsInput struct {
	CategoryID   string
	UpcomingOnly bool
	Page         int
	Limit        int
}

// ListEventsResult is returned by ListEvents.
type ListEventsResult struct {
	Items      []*domain.Event
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EventService defines use-case operations for events.
type EventService interface {
	Create(ctx context.Context, auth domain.AuthContext, in CreateEventInput) (*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, in ListEventsInput) (*ListEventsResult, error)
	Update(ctx context.Context, auth domain.AuthContext, id string, in UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, auth domain.AuthContext, id string) error
}
