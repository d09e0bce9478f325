package auth

import (
	"context"

	"github.com/yourname/fitplanner/internal"
)

type LocalAuthProvider struct {
	Token  string
	logger internal.Logger
}

func (a *LocalAuthProvider) ValidateToken(ctx context.Context, token string) (*internal.User, error) {
	if a.Token != "" && token == a.Token {
		return &internal.User{ID: "u1", Name: "Demo User"}, nil
	}
	a.logger.Debugf("local token rejected")
	return nil, ErrInvalidToken
}

func NewLocalAuthProvider(token string, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{Token: token, logger: logger}
}
