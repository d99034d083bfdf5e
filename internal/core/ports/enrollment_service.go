package ports

import (
	"context"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// EnrollmentResult reports the state of the (user, event) pair after a
// settlement, plus the caller's balance so clients can render it directly.
type EnrollmentResult struct {
	EventID  string
	Enrolled bool
	Price    float64
	Balance  float64
}

// EnrollmentService orchestrates the wallet-and-roster settlement.
// A (user, event) pair is either NotEnrolled or Enrolled; there is no
// intermediate state.
type EnrollmentService interface {
	Enroll(ctx context.Context, auth domain.AuthContext, eventID string) (*EnrollmentResult, error)
	Unenroll(ctx context.Context, auth domain.AuthContext, eventID string) (*EnrollmentResult, error)
	// Toggle enrolls when not enrolled and unenrolls otherwise.
	//
	// Deprecated: legacy single-endpoint behavior kept for old clients; use
	// Enroll and Unenroll.
	Toggle(ctx context.Context, auth domain.AuthContext, eventID string) (*EnrollmentResult, error)
}
