package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

// WalletService implements deposits and balance queries. The deposit ceiling
// is enforced here AND in the repository's guarded write, so no code path can
// push a balance past domain.BalanceCeiling.
type WalletService struct {
	users   ports.UserRepository
	history ports.LedgerRepository
	ledger  ports.LedgerSink
	log     zerolog.Logger
}

func NewWalletService(users ports.UserRepository, history ports.LedgerRepository, ledger ports.LedgerSink, log zerolog.Logger) *WalletService {
	return &WalletService{users: users, history: history, ledger: ledger, log: log}
}

func (s *WalletService) Deposit(ctx context.Context, auth domain.AuthContext, amount float64) (*ports.WalletResult, error) {
	if amount <= 0 || amount > domain.BalanceCeiling {
		return nil, domain.ErrInvalidAmount
	}

	balance, err := s.users.Deposit(ctx, auth.UserID, amount)
	if err != nil {
		return nil, err
	}

	s.ledger.Record(domain.LedgerEntry{
		ID:           uuid.NewString(),
		UserID:       auth.UserID,
		Type:         domain.LedgerDeposit,
		Amount:       amount,
		BalanceAfter: balance,
		CreatedAt:    time.Now().UTC(),
	})

	s.log.Info().Str("user_id", auth.UserID).Float64("amount", amount).Float64("balance", balance).Msg("deposit applied")

	return &ports.WalletResult{Balance: balance}, nil
}

func (s *WalletService) Balance(ctx context.Context, auth domain.AuthContext) (*ports.WalletResult, error) {
	user, err := s.users.FindByID(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}
	return &ports.WalletResult{Balance: user.Balance}, nil
}

// History returns the caller's wallet audit trail, newest first.
func (s *WalletService) History(ctx context.Context, auth domain.AuthContext) ([]*domain.LedgerEntry, error) {
	return s.history.ListByUser(ctx, auth.UserID)
}
