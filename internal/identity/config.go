package identity

import (
	"fmt"

	"github.com/careerbridge/careerbridge-backend/internal/config"
)

// FromConfig returns the provider named by IDENTITY_PROVIDER.
func FromConfig(cfg *config.Config) (Provider, error) {
	tokens := NewTokens(cfg.JWTSecret, cfg.JWTExpiry)

	switch cfg.IdentityProvider {
	case config.IdentityGoTrue:
		if cfg.IdentityURL == "" {
			return nil, fmt.Errorf("IDENTITY_URL is required for the gotrue provider")
		}
		if cfg.IdentityServiceKey == "" {
			return nil, fmt.Errorf("IDENTITY_SERVICE_KEY is required for the gotrue provider")
		}
		return NewGoTrue(cfg.IdentityURL, cfg.IdentityAPIKey, cfg.IdentityServiceKey, tokens, cfg.StoreTimeout), nil
	case config.IdentityLocal:
		return NewLocal(tokens, cfg.BcryptCost), nil
	default:
		return nil, fmt.Errorf("unknown IDENTITY_PROVIDER %q", cfg.IdentityProvider)
	}
}
