package auth

import (
	"context"

	"github.com/mmynk/tasklist/internal/models"
)

// Authenticator owns account credentials. PasswordAuthenticator is the only
// implementation; the service layer depends on this interface so tests can
// substitute their own.
type Authenticator interface {
	// Register stores a new account. A taken email yields ErrEmailExists.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate returns the account for email when credential matches it,
	// and ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential reports whether credential is acceptable for a new account.
	ValidateCredential(credential string) error
}
