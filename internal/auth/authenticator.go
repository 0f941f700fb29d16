package auth

import (
	"context"

	"github.com/homegamehq/homegame/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the service layer code.
type Authenticator interface {
	// Register creates a new player account with the given email and credential.
	// The credential format depends on the implementation (e.g., password, OAuth token).
	Register(ctx context.Context, email, name, credential string) (*models.Player, error)

	// Authenticate verifies the player's credentials and returns the player if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.Player, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
