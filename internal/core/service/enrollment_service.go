package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/encontro-app/encontro/internal/api/metrics"
	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

// settleRetries bounds how often a settlement is replayed after a concurrent
// writer invalidated the conditions it was built on.
const settleRetries = 3

type enrollmentService struct {
	users  ports.UserRepository
	events ports.EventRepository
	settle ports.SettlementRepository
	locker ports.SettlementLocker
	ledger ports.LedgerSink
	log    zerolog.Logger
}

// NewEnrollmentService returns an EnrollmentService implementation.
func NewEnrollmentService(
	users ports.UserRepository,
	events ports.EventRepository,
	settle ports.SettlementRepository,
	locker ports.SettlementLocker,
	ledger ports.LedgerSink,
	log zerolog.Logger,
) ports.EnrollmentService {
	return &enrollmentService{
		users:  users,
		events: events,
		settle: settle,
		locker: locker,
		ledger: ledger,
		log:    log,
	}
}

// Enroll moves the (user, event) pair from NotEnrolled to Enrolled. Paid
// events debit the wallet by the full price in the same transaction that adds
// the roster entry; free events touch no wallet state.
func (s *enrollmentService) Enroll(ctx context.Context, auth domain.AuthContext, eventID string) (*ports.EnrollmentResult, error) {
	release, err := s.acquireLock(ctx, auth.UserID, eventID)
	if err != nil {
		return nil, err
	}
	defer release()

	for attempt := 0; ; attempt++ {
		user, event, err := s.load(ctx, auth.UserID, eventID)
		if err != nil {
			return nil, err
		}
		if user.RegistrationStatus != domain.RegistrationComplete {
			return nil, domain.ErrRegistrationIncomplete
		}
		if event.IsEnrolled(user.ID) {
			return nil, domain.ErrAlreadyEnrolled
		}
		if !event.HasCapacity() {
			return nil, domain.ErrEventFull
		}
		if user.Balance < event.Price {
			return nil, domain.ErrInsufficientFunds
		}

		// The repository re-checks all three conditions inside the
		// transaction; the reads above only pick the precise error to return.
		err = s.settle.EnrollAndDebit(ctx, user.ID, event.ID, event.Price)
		if errors.Is(err, domain.ErrSettlementConflict) && attempt < settleRetries {
			metrics.SettlementConflictsTotal.Inc()
			s.log.Debug().Str("user_id", user.ID).Str("event_id", event.ID).Int("attempt", attempt+1).Msg("settlement conflict, retrying")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("enroll: %w", err)
		}

		balance := user.Balance - event.Price
		if !event.IsFree() {
			s.record(user.ID, event.ID, domain.LedgerDebit, event.Price, balance)
		}

		s.log.Info().
			Str("user_id", user.ID).
			Str("event_id", event.ID).
			Float64("price", event.Price).
			Msg("enrollment settled")

		return &ports.EnrollmentResult{EventID: event.ID, Enrolled: true, Price: event.Price, Balance: balance}, nil
	}
}

// Unenroll moves the pair back to NotEnrolled and refunds the full price of
// paid events. There is no cancellation-fee schedule: one debit on enroll,
// exactly one matching credit on unenroll.
func (s *enrollmentService) Unenroll(ctx context.Context, auth domain.AuthContext, eventID string) (*ports.EnrollmentResult, error) {
	release, err := s.acquireLock(ctx, auth.UserID, eventID)
	if err != nil {
		return nil, err
	}
	defer release()

	for attempt := 0; ; attempt++ {
		user, event, err := s.load(ctx, auth.UserID, eventID)
		if err != nil {
			return nil, err
		}
		if !event.IsEnrolled(user.ID) {
			return nil, domain.ErrNotEnrolled
		}

		err = s.settle.UnenrollAndCredit(ctx, user.ID, event.ID, event.Price)
		if errors.Is(err, domain.ErrSettlementConflict) && attempt < settleRetries {
			metrics.SettlementConflictsTotal.Inc()
			s.log.Debug().Str("user_id", user.ID).Str("event_id", event.ID).Int("attempt", attempt+1).Msg("settlement conflict, retrying")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("unenroll: %w", err)
		}

		balance := user.Balance + event.Price
		if !event.IsFree() {
			s.record(user.ID, event.ID, domain.LedgerRefund, event.Price, balance)
		}

		s.log.Info().
			Str("user_id", user.ID).
			Str("event_id", event.ID).
			Float64("refund", event.Price).
			Msg("unenrollment settled")

		return &ports.EnrollmentResult{EventID: event.ID, Enrolled: false, Price: event.Price, Balance: balance}, nil
	}
}

// Toggle flips the membership state.
//
// Deprecated: kept for clients of the old single-endpoint behavior.
func (s *enrollmentService) Toggle(ctx context.Context, auth domain.AuthContext, eventID string) (*ports.EnrollmentResult, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsEnrolled(auth.UserID) {
		return s.Unenroll(ctx, auth, eventID)
	}
	return s.Enroll(ctx, auth, eventID)
}

func (s *enrollmentService) load(ctx context.Context, userID, eventID string) (*domain.User, *domain.Event, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	return user, event, nil
}

// acquireLock serializes settlements on the pair. A busy pair is a conflict;
// a broken locker is tolerated because the transaction conditions alone keep
// the settlement correct.
func (s *enrollmentService) acquireLock(ctx context.Context, userID, eventID string) (func(), error) {
	release, err := s.locker.Acquire(ctx, userID, eventID)
	if errors.Is(err, domain.ErrSettlementConflict) {
		return nil, err
	}
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Str("event_id", eventID).Msg("settlement lock unavailable, relying on transaction")
		return func() {}, nil
	}
	return release, nil
}

func (s *enrollmentService) record(userID, eventID, entryType string, amount, balanceAfter float64) {
	s.ledger.Record(domain.LedgerEntry{
		ID:           uuid.NewString(),
		UserID:       userID,
		EventID:      eventID,
		Type:         entryType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		CreatedAt:    time.Now().UTC(),
	})
}
