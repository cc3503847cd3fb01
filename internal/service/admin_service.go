package service

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrAdminDisabled   = errors.New("admin login is not configured")
)

// AdminService checks the admin password against a bcrypt hash.
type AdminService struct {
	hash []byte
}

// NewAdminService builds the service from a stored hash, or hashes a plain
// password when no hash is configured. With neither, login is disabled.
func NewAdminService(passwordHash, password string) (*AdminService, error) {
	passwordHash = strings.TrimSpace(passwordHash)
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("parse admin password hash: %w", err)
		}
		return &AdminService{hash: []byte(passwordHash)}, nil
	}
	if password == "" {
		return &AdminService{}, nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &AdminService{hash: []byte(hash)}, nil
}

// Enabled reports whether a password is configured.
func (s *AdminService) Enabled() bool {
	return s != nil && len(s.hash) > 0
}

// Verify returns nil when password matches.
func (s *AdminService) Verify(password string) error {
	if !s.Enabled() {
		return ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is empty", ErrInvalidPassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
