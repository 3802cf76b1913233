package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/stillpoint/wellness-server-go/internal/apperr"
	"github.com/stillpoint/wellness-server-go/internal/httputil"
	"github.com/stillpoint/wellness-server-go/internal/model"
	"github.com/stillpoint/wellness-server-go/internal/repository"
	"github.com/stillpoint/wellness-server-go/internal/token"
)

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the authenticated user attached by AuthMiddleware,
// or nil outside an authenticated request.
func GetUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(UserContextKey).(*model.User); ok {
		return user
	}
	return nil
}

type AuthMiddleware struct {
	userRepo repository.UserRepository
	tokens   *token.Service
}

func NewAuthMiddleware(userRepo repository.UserRepository, tokens *token.Service) *AuthMiddleware {
	return &AuthMiddleware{userRepo: userRepo, tokens: tokens}
}

// Handler gates owner-scoped routes: extract the bearer token, verify it,
// resolve the embedded user, and attach the identity to the request context.
// Stateless beyond the context attachment.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractBearer(r)
		if tokenString == "" {
			httputil.WriteError(w, apperr.MissingToken())
			return
		}

		userID, err := m.tokens.Verify(tokenString)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		user, err := m.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			log.Error().Err(err).Msg("auth middleware: database error")
			httputil.WriteError(w, apperr.StoreUnavailable(err))
			return
		}
		if user == nil {
			log.Warn().Str("userId", userID).Msg("auth middleware: token for deleted user")
			httputil.WriteError(w, apperr.UnknownUser())
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
