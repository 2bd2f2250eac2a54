package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Provider resolves a bearer token to the user it belongs to.
type Provider interface {
	Authenticate(ctx context.Context, token string) (*internal.User, error)
}

// NewProvider builds the provider selected by cfg.AuthType.
func NewProvider(cfg *config.Config, logger internal.Logger) (Provider, error) {
	switch cfg.AuthType {
	case "local":
		return NewLocalAuthProvider(cfg.AuthToken, cfg.AuthUser, logger), nil
	case "remote":
		return NewRemoteAuthProvider(cfg.AuthURL, logger), nil
	case "jwt":
		return NewJWTAuthProvider(cfg.JWTSecret, logger), nil
	default:
		return nil, fmt.Errorf("auth: unknown provider %q", cfg.AuthType)
	}
}
