package ports

import "context"

// SettlementRepository performs the paired wallet-and-roster mutation of an
// enrollment as one atomic unit: either both documents change or neither
// does. Implementations must re-check the business conditions (funds,
// membership, capacity) inside the transaction so that a concurrent writer
// cannot slip between the service's read and the write.
type SettlementRepository interface {
	// EnrollAndDebit adds userID to the event roster and, when amount > 0,
	// debits amount from the user's balance. Fails with
	// domain.ErrSettlementConflict when the roster condition no longer holds
	// and domain.ErrInsufficientFunds when the balance condition fails.
	EnrollAndDebit(ctx context.Context, userID, eventID string, amount float64) error

	// UnenrollAndCredit removes userID from the roster and, when amount > 0,
	// credits the full amount back to the user's balance. Fails with
	// domain.ErrSettlementConflict when the membership condition fails.
	UnenrollAndCredit(ctx context.Context, userID, eventID string, amount float64) error
}

// SettlementLocker serializes settlements on the same (user, event) pair.
// Locking is an optimization in front of the transaction, not the safety
// mechanism: implementations may fail open.
type SettlementLocker interface {
	// Acquire takes the pair lock and returns a release function. A second
	// acquirer on a held pair gets domain.ErrSettlementConflict.
	Acquire(ctx context.Context, userID, eventID string) (release func(), err error)
}
