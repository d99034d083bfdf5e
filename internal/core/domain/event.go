package domain

import (
	"errors"
	"time"
)

var ErrEventNotFound = errors.New("event not found")
var ErrAlreadyEnrolled = errors.New("user already enrolled")
var ErrNotEnrolled = errors.New("user not enrolled")
var ErrEventFull = errors.New("event is at capacity")
var ErrValidation = errors.New("validation failed")

// ErrSettlementConflict signals that a concurrent writer touched the user or
// the event while a settlement was in flight. The enrollment service retries
// a bounded number of times before surfacing it.
var ErrSettlementConflict = errors.New("concurrent settlement conflict")

// Event is a bookable happening with a price and an enrollment roster.
// Capacity 0 means unlimited.
type Event struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Title         string    `json:"title" bson:"title"`
	Slug          string    `json:"slug" bson:"slug"`
	Description   string    `json:"description" bson:"description"`
	Date          time.Time `json:"date" bson:"date"`
	Location      string    `json:"location" bson:"location"`
	Price         float64   `json:"price" bson:"price"`
	Capacity      int       `json:"capacity" bson:"capacity"`
	CategoryID    string    `json:"category_id" bson:"category_id"`
	CreatorID     string    `json:"creator_id" bson:"creator_id"`
	EnrolledUsers []string  `json:"enrolled_users" bson:"enrolled_users"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// IsFree reports whether enrolling requires no wallet debit.
func (e *Event) IsFree() bool {
	return e.Price == 0
}

// IsEnrolled reports roster membership for the given user.
func (e *Event) IsEnrolled(userID string) bool {
	for _, id := range e.EnrolledUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// HasCapacity reports whether the roster can take one more enrollment.
func (e *Event) HasCapacity() bool {
	return e.Capacity <= 0 || len(e.EnrolledUsers) < e.Capacity
}

// Enroll adds userID to the roster, enforcing uniqueness and capacity.
func (e *Event) Enroll(userID string) error {
	if e.IsEnrolled(userID) {
		return ErrAlreadyEnrolled
	}
	if !e.HasCapacity() {
		return ErrEventFull
	}
	e.EnrolledUsers = append(e.EnrolledUsers, userID)
	return nil
}

// Unenroll removes userID from the roster.
func (e *Event) Unenroll(userID string) error {
	for i, id := range e.EnrolledUsers {
		if id == userID {
			e.EnrolledUsers = append(e.EnrolledUsers[:i], e.EnrolledUsers[i+1:]...)
			return nil
		}
	}
	return ErrNotEnrolled
}

// EditableBy reports whether the caller may edit or delete this event:
// the creator, or any admin.
func (e *Event) EditableBy(auth AuthContext) bool {
	return auth.IsAdmin || e.CreatorID == auth.UserID
}
