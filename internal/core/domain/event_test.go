package domain

import (
	"errors"
	"testing"
)

func TestEventEnroll(t *testing.T) {
	e := &Event{Capacity: 2}

	if err := e.Enroll("u1"); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if err := e.Enroll("u1"); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
	if err := e.Enroll("u2"); err != nil {
		t.Fatalf("second enroll: %v", err)
	}
	if err := e.Enroll("u3"); !errors.Is(err, ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}
}

func TestEventEnroll_UnlimitedCapacity(t *testing.T) {
	e := &Event{Capacity: 0}
	for _, id := range []string{"u1", "u2", "u3", "u4"} {
		if err := e.Enroll(id); err != nil {
			t.Fatalf("enroll %s: %v", id, err)
		}
	}
}

func TestEventUnenroll(t *testing.T) {
	e := &Event{EnrolledUsers: []string{"u1", "u2", "u3"}}

	if err := e.Unenroll("u2"); err != nil {
		t.Fatalf("unenroll: %v", err)
	}
	if e.IsEnrolled("u2") {
		t.Fatalf("u2 still on roster")
	}
	if !e.IsEnrolled("u1") || !e.IsEnrolled("u3") {
		t.Fatalf("other members lost: %v", e.EnrolledUsers)
	}
	if err := e.Unenroll("u2"); !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}
}

func TestEventEditableBy(t *testing.T) {
	e := &Event{CreatorID: "owner"}

	if !e.EditableBy(AuthContext{UserID: "owner"}) {
		t.Fatalf("creator must be able to edit")
	}
	if !e.EditableBy(AuthContext{UserID: "root", IsAdmin: true}) {
		t.Fatalf("admin must be able to edit")
	}
	if e.EditableBy(AuthContext{UserID: "someone"}) {
		t.Fatalf("stranger must not be able to edit")
	}
}

func TestEventIsFree(t *testing.T) {
	if !(&Event{Price: 0}).IsFree() {
		t.Fatalf("zero price is free")
	}
	if (&Event{Price: 0.01}).IsFree() {
		t.Fatalf("non-zero price is not free")
	}
}
