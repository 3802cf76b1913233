// Package token issues and verifies the signed identity tokens attached to
// every owner-scoped request.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stillpoint/wellness-server-go/internal/apperr"
)

// Claims embeds the registered claims plus the authenticated user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds a token service. The secret is validated at startup by
// config.Validate; an empty secret never reaches this constructor.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding userID, expiring after the configured TTL.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
	})

	return token.SignedString(s.secret)
}

// Verify parses tokenString and returns the embedded user id. Failures are
// classified: expired, malformed (bad signature or structure), or invalid
// for anything else. There is no refresh; expired tokens require a new login.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", apperr.TokenExpired().WithCause(err)
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return "", apperr.TokenMalformed().WithCause(err)
	default:
		return "", apperr.TokenInvalid().WithCause(err)
	}

	if !parsed.Valid || claims.UserID == "" {
		return "", apperr.TokenInvalid()
	}

	return claims.UserID, nil
}
