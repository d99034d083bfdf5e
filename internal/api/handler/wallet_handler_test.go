package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

type stubWalletService struct {
	depositFn func(ctx context.Context, auth domain.AuthContext, amount float64) (*ports.WalletResult, error)
	balanceFn func(ctx context.Context, auth domain.AuthContext) (*ports.WalletResult, error)
	historyFn func(ctx context.Context, auth domain.AuthContext) ([]*domain.LedgerEntry, error)
}

func (s *stubWalletService) Deposit(ctx context.Context, auth domain.AuthContext, amount float64) (*ports.WalletResult, error) {
	return s.depositFn(ctx, auth, amount)
}

func (s *stubWalletService) Balance(ctx context.Context, auth domain.AuthContext) (*ports.WalletResult, error) {
	return s.balanceFn(ctx, auth)
}

func (s *stubWalletService) History(ctx context.Context, auth domain.AuthContext) ([]*domain.LedgerEntry, error) {
	return s.historyFn(ctx, auth)
}

func TestWalletHandler_Deposit_Success(t *testing.T) {
	stub := &stubWalletService{
		depositFn: func(ctx context.Context, auth domain.AuthContext, amount float64) (*ports.WalletResult, error) {
			if auth.UserID != "u1" || amount != 50 {
				t.Fatalf("unexpected args: %+v %.2f", auth, amount)
			}
			return &ports.WalletResult{Balance: 150}, nil
		},
	}
	h := NewWalletHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/wallet/deposit", `{"amount":50}`)
	c.Set("user_id", "u1")

	if err := h.Deposit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp walletResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Balance != 150 {
		t.Fatalf("expected balance 150, got %.2f", resp.Balance)
	}
}

func TestWalletHandler_Deposit_RejectsNonPositive(t *testing.T) {
	stub := &stubWalletService{
		depositFn: func(ctx context.Context, auth domain.AuthContext, amount float64) (*ports.WalletResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewWalletHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/wallet/deposit", `{"amount":-5}`)
	c.Set("user_id", "u1")

	err := h.Deposit(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestWalletHandler_Deposit_LimitPassthrough(t *testing.T) {
	stub := &stubWalletService{
		depositFn: func(ctx context.Context, auth domain.AuthContext, amount float64) (*ports.WalletResult, error) {
			return nil, domain.ErrDepositLimit
		},
	}
	h := NewWalletHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/wallet/deposit", `{"amount":50}`)
	c.Set("user_id", "u1")

	err := h.Deposit(c)
	if !errors.Is(err, domain.ErrDepositLimit) {
		t.Fatalf("expected ErrDepositLimit to pass through, got %v", err)
	}
}

func TestWalletHandler_Balance(t *testing.T) {
	stub := &stubWalletService{
		balanceFn: func(ctx context.Context, auth domain.AuthContext) (*ports.WalletResult, error) {
			return &ports.WalletResult{Balance: 42}, nil
		},
	}
	h := NewWalletHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/wallet", "")
	c.Set("user_id", "u1")

	if err := h.Balance(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWalletHandler_History(t *testing.T) {
	stub := &stubWalletService{
		historyFn: func(ctx context.Context, auth domain.AuthContext) ([]*domain.LedgerEntry, error) {
			return []*domain.LedgerEntry{
				{ID: "2", UserID: auth.UserID, Type: domain.LedgerDebit, Amount: 30},
				{ID: "1", UserID: auth.UserID, Type: domain.LedgerDeposit, Amount: 100},
			}, nil
		},
	}
	h := NewWalletHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/wallet/history", "")
	c.Set("user_id", "u1")

	if err := h.History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp historyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Entries) != 2 || resp.Entries[0].ID != "2" {
		t.Fatalf("unexpected entries: %+v", resp.Entries)
	}
}
