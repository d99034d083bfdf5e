package domain

import (
	"errors"
	"testing"
)

func TestUserDeposit(t *testing.T) {
	u := &User{Balance: 100}

	if err := u.Deposit(50); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if u.Balance != 150 {
		t.Fatalf("expected 150, got %.2f", u.Balance)
	}
}

func TestUserDeposit_InvalidAmounts(t *testing.T) {
	u := &User{Balance: 0}

	for _, amount := range []float64{0, -5, BalanceCeiling + 1} {
		if err := u.Deposit(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %.2f: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if u.Balance != 0 {
		t.Fatalf("balance mutated: %.2f", u.Balance)
	}
}

func TestUserDeposit_Ceiling(t *testing.T) {
	u := &User{Balance: 9990}

	if err := u.Deposit(20); !errors.Is(err, ErrDepositLimit) {
		t.Fatalf("expected ErrDepositLimit, got %v", err)
	}
	if err := u.Deposit(10); err != nil {
		t.Fatalf("deposit landing on the ceiling must pass: %v", err)
	}
	if u.Balance != BalanceCeiling {
		t.Fatalf("expected %.0f, got %.2f", BalanceCeiling, u.Balance)
	}
}

func TestUserDebit(t *testing.T) {
	u := &User{Balance: 30}

	if err := u.Debit(40); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if err := u.Debit(30); err != nil {
		t.Fatalf("debit: %v", err)
	}
	if u.Balance != 0 {
		t.Fatalf("expected 0, got %.2f", u.Balance)
	}
}

func TestUserCredit_IgnoresCeiling(t *testing.T) {
	u := &User{Balance: 9990}
	u.Credit(500)
	if u.Balance != 10490 {
		t.Fatalf("refund credit must ignore the ceiling, got %.2f", u.Balance)
	}
}

func TestAuthContextCompleted(t *testing.T) {
	if (AuthContext{RegistrationStatus: RegistrationPending}).Completed() {
		t.Fatalf("pending must not be complete")
	}
	if !(AuthContext{RegistrationStatus: RegistrationComplete}).Completed() {
		t.Fatalf("complete status not recognised")
	}
}
