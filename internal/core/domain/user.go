package domain

import (
	"errors"
	"time"
)

// BalanceCeiling is the maximum wallet balance a user may hold, in BRL.
// Deposits that would push the balance above it are rejected; refunds are not
// subject to it.
const BalanceCeiling = 10000.0

// Registration lifecycle. Accounts start as pending_profile and become
// complete once the personal-data step has been submitted.
const (
	RegistrationPending  = "pending_profile"
	RegistrationComplete = "complete"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrRegistrationIncomplete = errors.New("registration incomplete")

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrInvalidAmount = errors.New("invalid amount")
var ErrDepositLimit = errors.New("deposit would exceed balance ceiling")

// User models a registered account, including its wallet balance.
type User struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	FirstName          string    `json:"first_name,omitempty"`
	LastName           string    `json:"last_name,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	Document           string    `json:"document,omitempty"`
	BirthDate          time.Time `json:"birth_date,omitempty"`
	Balance            float64   `json:"balance"`
	IsAdmin            bool      `json:"is_admin"`
	RegistrationStatus string    `json:"registration_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AuthContext carries the identity of the authenticated caller. It is built
// once from the verified token claims and passed explicitly to services;
// nothing below the transport layer reads ambient request state.
type AuthContext struct {
	UserID             string
	IsAdmin            bool
	RegistrationStatus string
}

// Completed reports whether the caller finished the registration flow.
func (a AuthContext) Completed() bool {
	return a.RegistrationStatus == RegistrationComplete
}

// Deposit adds amount to the wallet. Amount must be positive, no larger than
// BalanceCeiling, and must not push the balance above the ceiling.
func (u *User) Deposit(amount float64) error {
	if amount <= 0 || amount > BalanceCeiling {
		return ErrInvalidAmount
	}
	if u.Balance+amount > BalanceCeiling {
		return ErrDepositLimit
	}
	u.Balance += amount
	return nil
}

// Debit removes amount from the wallet, failing when funds are insufficient.
func (u *User) Debit(amount float64) error {
	if u.Balance < amount {
		return ErrInsufficientFunds
	}
	u.Balance -= amount
	return nil
}

// Credit adds amount unconditionally. Refunds may legitimately land above
// where a deposit would have been cut off.
func (u *User) Credit(amount float64) {
	u.Balance += amount
}
