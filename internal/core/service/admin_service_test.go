package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

func newAdminFixture() (*fakeStore, *AdminService) {
	store := newFakeStore()
	svc := NewAdminService(&fakeUserRepo{store: store}, &fakeEventRepo{store: store}, zerolog.Nop())
	return store, svc
}

func TestAdminDashboard(t *testing.T) {
	store, svc := newAdminFixture()
	store.addUser(completeUser(0))
	store.addUser(domain.User{Username: "bob", Email: "b@example.com"})

	upcoming := paidEvent(0, 0)
	past := paidEvent(0, 0)
	past.Date = time.Now().Add(-24 * time.Hour)
	store.addEvent(upcoming)
	store.addEvent(past)

	result, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if result.TotalUsers != 2 {
		t.Fatalf("expected 2 users, got %d", result.TotalUsers)
	}
	if result.TotalEvents != 2 {
		t.Fatalf("expected 2 events, got %d", result.TotalEvents)
	}
	if result.UpcomingEvents != 1 {
		t.Fatalf("expected 1 upcoming event, got %d", result.UpcomingEvents)
	}
}

func validAdminUpdate() ports.AdminUpdateUserInput {
	return ports.AdminUpdateUserInput{
		Username: "alice",
		Email:    "Alice@Example.com",
		Balance:  500,
		IsAdmin:  true,
	}
}

func TestAdminUpdateUser_AppliesFields(t *testing.T) {
	store, svc := newAdminFixture()
	userID := store.addUser(completeUser(100))

	user, err := svc.UpdateUser(context.Background(), userID, validAdminUpdate())
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if user.Balance != 500 {
		t.Fatalf("balance correction not applied: %.2f", user.Balance)
	}
	if !user.IsAdmin {
		t.Fatalf("is_admin not applied")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalised: %q", user.Email)
	}
	if got := store.user(userID); got.Balance != 500 {
		t.Fatalf("not persisted: %.2f", got.Balance)
	}
}

func TestAdminUpdateUser_BalanceBounds(t *testing.T) {
	store, svc := newAdminFixture()
	userID := store.addUser(completeUser(100))

	for _, balance := range []float64{-1, domain.BalanceCeiling + 1} {
		in := validAdminUpdate()
		in.Balance = balance
		_, err := svc.UpdateUser(context.Background(), userID, in)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("balance %.2f: expected ErrValidation, got %v", balance, err)
		}
	}
}

func TestAdminUpdateUser_PasswordRehash(t *testing.T) {
	store, svc := newAdminFixture()
	userID := store.addUser(completeUser(100))

	in := validAdminUpdate()
	in.Password = "newsecret"
	user, err := svc.UpdateUser(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newsecret")) != nil {
		t.Fatalf("password not rehashed")
	}

	in.Password = "short"
	if _, err := svc.UpdateUser(context.Background(), userID, in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}
}

func TestAdminDeleteUser(t *testing.T) {
	store, svc := newAdminFixture()
	userID := store.addUser(completeUser(0))

	if err := svc.DeleteUser(context.Background(), userID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), userID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
