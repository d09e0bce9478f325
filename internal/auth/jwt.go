package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yourname/fitplanner/internal"
)

const tokenIssuer = "fitplanner"

type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthProvider accepts HS256 tokens signed with a shared secret. The
// subject claim is the user ID.
type JWTAuthProvider struct {
	secret []byte
	logger internal.Logger
}

func NewJWTAuthProvider(secret string, logger internal.Logger) *JWTAuthProvider {
	return &JWTAuthProvider{secret: []byte(secret), logger: logger}
}

// Issue signs a token for user valid for ttl and returns it with its expiry.
func (a *JWTAuthProvider) Issue(user *internal.User, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expires := jwt.NewNumericDate(now.Add(ttl))
	claims := Claims{
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expires,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires.Time, nil
}

func (a *JWTAuthProvider) ValidateToken(ctx context.Context, token string) (*internal.User, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		a.logger.Debugf("jwt rejected: %v", err)
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &internal.User{ID: claims.Subject, Name: claims.Name}, nil
}
