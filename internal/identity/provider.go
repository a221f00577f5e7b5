// Package identity adapts external identity providers. Passwords never reach
// the stores; the API only keeps the provider's subject id as profileId.
package identity

import (
	"context"

	"github.com/careerbridge/careerbridge-backend/internal/model"
)

// Provider signs accounts in and out and verifies their access tokens.
type Provider interface {
	// SignIn exchanges credentials for a session. Wrong credentials yield
	// model.ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (*model.Session, error)
	// SignUp creates an account with the given role and returns its identity.
	// An already registered email yields model.ErrConflict.
	SignUp(ctx context.Context, email, password string, role model.Role) (*model.Principal, error)
	// SignOut ends the session of token at the provider.
	SignOut(ctx context.Context, token string) error
	// Verify checks token and returns the principal it was issued to.
	Verify(ctx context.Context, token string) (*model.Principal, error)
}
