package ports

import (
	"context"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// WalletResult is returned after a wallet mutation.
type WalletResult struct {
	Balance float64
}

// WalletService exposes the caller's wallet.
type WalletService interface {
	Deposit(ctx context.Context, auth domain.AuthContext, amount float64) (*WalletResult, error)
	Balance(ctx context.Context, auth domain.AuthContext) (*WalletResult, error)
	History(ctx context.Context, auth domain.AuthContext) ([]*domain.LedgerEntry, error)
}
