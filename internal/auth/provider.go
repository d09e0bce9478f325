package auth

import (
	"context"
	"errors"

	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

type Provider interface {
	ValidateToken(ctx context.Context, token string) (*internal.User, error)
}

// ChainProvider accepts a token if any of its providers does.
type ChainProvider []Provider

func (p ChainProvider) ValidateToken(ctx context.Context, token string) (*internal.User, error) {
	for _, provider := range p {
		if user, err := provider.ValidateToken(ctx, token); err == nil {
			return user, nil
		}
	}
	return nil, ErrInvalidToken
}

// NewProvider picks the providers enabled by cfg. The static token is only
// honoured in development.
func NewProvider(cfg *config.Config, logger internal.Logger) Provider {
	var chain ChainProvider
	if cfg.AuthServiceURL != "" {
		chain = append(chain, NewRemoteAuthProvider(cfg.AuthServiceURL, logger))
	}
	if cfg.JWTSecret != "" {
		chain = append(chain, NewJWTAuthProvider(cfg.JWTSecret, logger))
	}
	if cfg.Env == "development" {
		chain = append(chain, NewLocalAuthProvider(cfg.AuthToken, logger))
	}
	if len(chain) == 1 {
		return chain[0]
	}
	return chain
}
