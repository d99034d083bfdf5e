package domain

import "time"

// Ledger entry types. Every balance mutation leaves exactly one entry.
const (
	LedgerDeposit = "deposit"
	LedgerDebit   = "debit"
	LedgerRefund  = "refund"
)

// LedgerEntry is an audit record of a single wallet mutation. Entries are
// written asynchronously and are not part of the settlement transaction.
type LedgerEntry struct {
	ID           string    `json:"id" bson:"_id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	EventID      string    `json:"event_id,omitempty" bson:"event_id,omitempty"`
	Type         string    `json:"type" bson:"type"`
	Amount       float64   `json:"amount" bson:"amount"`
	BalanceAfter float64   `json:"balance_after" bson:"balance_after"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
