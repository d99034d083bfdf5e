package ports

import (
	"context"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// LedgerRepository persists wallet audit entries.
type LedgerRepository interface {
	Insert(ctx context.Context, entry *domain.LedgerEntry) error
	ListByUser(ctx context.Context, userID string) ([]*domain.LedgerEntry, error)
}

// LedgerSink is the write side handed to services. The queue dispatcher
// implements it by fanning entries out to sharded workers, so services never
// block on the audit write.
type LedgerSink interface {
	Record(entry domain.LedgerEntry)
}
