package auth

import (
	"context"

	"github.com/mmynk/tipsplit/internal/models"
)

// Authenticator defines the interface for operator authentication.
// This abstraction allows swapping the credential check (static config,
// database, SSO) without changing the service layer code.
type Authenticator interface {
	// Authenticate verifies the credentials and returns the operator if they match.
	Authenticate(ctx context.Context, email, credential string) (*models.Operator, error)
}
