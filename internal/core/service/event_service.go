package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

const (
	maxListLimit     = 100
	defaultListLimit = 20
)

// EventService implements event CRUD with creator/admin authorization.
type EventService struct {
	events     ports.EventRepository
	categories ports.CategoryRepository
	log        zerolog.Logger
}

func NewEventService(events ports.EventRepository, categories ports.CategoryRepository, log zerolog.Logger) *EventService {
	return &EventService{events: events, categories: categories, log: log}
}

func (s *EventService) Create(ctx context.Context, auth domain.AuthContext, in ports.CreateEventInput) (*domain.Event, error) {
	if auth.RegistrationStatus != domain.RegistrationComplete {
		return nil, domain.ErrRegistrationIncomplete
	}
	if err := validateEventInput(in.Title, in.Description, in.Date, in.Location, in.Price, in.Capacity); err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := &domain.Event{
		Title:         in.Title,
		Slug:          slug.Make(in.Title),
		Description:   in.Description,
		Date:          in.Date,
		Location:      in.Location,
		Price:         in.Price,
		Capacity:      in.Capacity,
		CategoryID:    in.CategoryID,
		CreatorID:     auth.UserID,
		EnrolledUsers: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Str("title", in.Title).Msg("failed to create event")
		return nil, err
	}

	s.log.Info().Str("event_id", created.ID).Str("creator_id", auth.UserID).Msg("event created")
	return created, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	if id == "" {
		return nil, domain.ErrEventNotFound
	}
	return s.events.FindByID(ctx, id)
}

func (s *EventService) List(ctx context.Context, in ports.ListEventsInput) (*ports.ListEventsResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, total, err := s.events.List(ctx, ports.ListEventsFilter{
		CategoryID:   in.CategoryID,
		UpcomingOnly: in.UpcomingOnly,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListEventsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *EventService) Update(ctx context.Context, auth domain.AuthContext, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.EditableBy(auth) {
		return nil, domain.ErrForbidden
	}
	if err := validateEventInput(in.Title, in.Description, in.Date, in.Location, in.Price, in.Capacity); err != nil {
		return nil, err
	}
	if in.CategoryID != event.CategoryID {
		if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}

	event.Title = in.Title
	event.Slug = slug.Make(in.Title)
	event.Description = in.Description
	event.Date = in.Date
	event.Location = in.Location
	event.Price = in.Price
	event.Capacity = in.Capacity
	event.CategoryID = in.CategoryID
	event.UpdatedAt = time.Now().UTC()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", event.ID).Str("editor_id", auth.UserID).Msg("event updated")
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, auth domain.AuthContext, id string) error {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !event.EditableBy(auth) {
		return domain.ErrForbidden
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("event_id", id).Str("deleter_id", auth.UserID).Msg("event deleted")
	return nil
}

// validateEventInput applies the form rules: title 3-50 characters, date not
// in the past, non-negative price, positive capacity when limited.
func validateEventInput(title, description string, date time.Time, location string, price float64, capacity int) error {
	title = strings.TrimSpace(title)
	if len(title) < 3 || len(title) > 50 {
		return fmt.Errorf("%w: title must be between 3 and 50 characters", domain.ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if date.Before(time.Now()) {
		return fmt.Errorf("%w: event date cannot be in the past", domain.ErrValidation)
	}
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}
	if capacity < 0 {
		return fmt.Errorf("%w: capacity must be a positive integer", domain.ErrValidation)
	}
	return nil
}
