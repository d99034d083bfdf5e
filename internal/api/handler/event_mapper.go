package handler

import "github.com/encontro-app/encontro/internal/core/domain"

// toEventResponse maps a domain event to the lightweight transport shape.
func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:            e.ID,
		Title:         e.Title,
		Slug:          e.Slug,
		Description:   e.Description,
		Date:          e.Date,
		Location:      e.Location,
		Price:         e.Price,
		Capacity:      e.Capacity,
		CategoryID:    e.CategoryID,
		CreatorID:     e.CreatorID,
		EnrolledCount: len(e.EnrolledUsers),
		CreatedAt:     e.CreatedAt,
	}
}

// toEventDetailResponse includes the roster.
func toEventDetailResponse(e *domain.Event) eventDetailResponse {
	roster := e.EnrolledUsers
	if roster == nil {
		roster = []string{}
	}
	return eventDetailResponse{
		eventResponse: toEventResponse(e),
		EnrolledUsers: roster,
	}
}
