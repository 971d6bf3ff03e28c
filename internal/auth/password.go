package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/tipsplit/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// PasswordAuthenticator checks credentials against the configured operator.
type PasswordAuthenticator struct {
	operator models.Operator
}

// NewPasswordAuthenticator creates an authenticator for a single operator.
func NewPasswordAuthenticator(operator models.Operator) *PasswordAuthenticator {
	return &PasswordAuthenticator{operator: operator}
}

// Authenticate verifies the email and password, returning the operator if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.Operator, error) {
	if a.operator.Email == "" || a.operator.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(email), a.operator.Email) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.operator.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	op := a.operator
	return &op, nil
}

// HashPassword returns the bcrypt hash to put in the operator config.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
