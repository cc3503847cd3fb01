package service

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAdminServiceVerifiesPlainPassword(t *testing.T) {
	svc, err := NewAdminService("", "s3cret")
	if err != nil {
		t.Fatalf("new admin service: %v", err)
	}
	if !svc.Enabled() {
		t.Fatalf("expected admin login to be enabled")
	}
	if err := svc.Verify("s3cret"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := svc.Verify("nope"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAdminServiceUsesConfiguredHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	svc, err := NewAdminService(string(hash), "ignored")
	if err != nil {
		t.Fatalf("new admin service: %v", err)
	}
	if err := svc.Verify("hashed"); err != nil {
		t.Fatalf("expected hash to match: %v", err)
	}
	if err := svc.Verify("ignored"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("plain password must be ignored when a hash is set")
	}

	if _, err := NewAdminService("not-a-hash", ""); err == nil {
		t.Fatalf("expected malformed hash to be rejected")
	}
}

func TestAdminServiceDisabledWithoutPassword(t *testing.T) {
	svc, err := NewAdminService("", "")
	if err != nil {
		t.Fatalf("new admin service: %v", err)
	}
	if svc.Enabled() {
		t.Fatalf("expected admin login to be disabled")
	}
	if err := svc.Verify(""); !errors.Is(err, ErrAdminDisabled) {
		t.Fatalf("expected ErrAdminDisabled, got %v", err)
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}
