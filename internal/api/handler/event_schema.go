package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createEventRequest struct {
	Title       string  `json:"title"       validate:"required,min=3,max=50"`
	Description string  `json:"description" validate:"required"`
	Date        string  `json:"date"        validate:"required"`
	Location    string  `json:"location"    validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Capacity    int     `json:"capacity"    validate:"gte=0"`
	CategoryID  string  `json:"category_id" validate:"required"`
}

type updateEventRequest struct {
	Title       string  `json:"title"       validate:"required,min=3,max=50"`
	Description string  `json:"description" validate:"required"`
	Date        string  `json:"date"        validate:"required"`
	Location    string  `json:"location"    validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Capacity    int     `json:"capacity"    validate:"gte=0"`
	CategoryID  string  `json:"category_id" validate:"required"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type eventResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	Location      string    `json:"location"`
	Price         float64   `json:"price"`
	Capacity      int       `json:"capacity"`
	CategoryID    string    `json:"category_id"`
	CreatorID     string    `json:"creator_id"`
	EnrolledCount int       `json:"enrolled_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// eventDetailResponse adds the roster, which list responses deliberately omit
// to keep payloads small.
type eventDetailResponse struct {
	eventResponse
	EnrolledUsers []string `json:"enrolled_users"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listEventsResponse struct {
	Data       []eventResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type enrollmentResponse struct {
	EventID  string  `json:"event_id"`
	Enrolled bool    `json:"enrolled"`
	Price    float64 `json:"price"`
	Balance  float64 `json:"balance"`
}
