package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/stillpoint/wellness-server-go/internal/apperr"
	"github.com/stillpoint/wellness-server-go/internal/config"
	"github.com/stillpoint/wellness-server-go/internal/model"
	"github.com/stillpoint/wellness-server-go/internal/repository"
	"github.com/stillpoint/wellness-server-go/internal/token"
)

var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// pqUniqueViolation is the Postgres error code for a unique constraint hit.
const pqUniqueViolation = "23505"

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates a user with the normalized email and a bcrypt hash of
// password, and issues a token. The raw password is never stored.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !emailRegex.MatchString(email) {
		return nil, apperr.Validation("Please enter a valid email")
	}
	if len(password) < config.MinPasswordLength {
		return nil, apperr.WeakPassword()
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.StoreUnavailable(err)
	}
	if existing != nil {
		return nil, apperr.DuplicateEmail()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.BcryptCost)
	if err != nil {
		return nil, apperr.Internal("Failed to hash password").WithCause(err)
	}

	user, err := s.userRepo.Create(ctx, model.CreateUserParams{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		// Two concurrent registrations can both pass the existence check;
		// the unique index on lower(email) decides.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, apperr.DuplicateEmail()
		}
		return nil, apperr.StoreUnavailable(err)
	}

	tokenString, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal("Failed to issue token").WithCause(err)
	}

	log.Info().Str("userId", user.ID).Str("email", user.Email).Msg("user registered")

	return &AuthResult{Token: tokenString, User: user}, nil
}

// Login verifies the credentials and issues a fresh token. Unknown email and
// wrong password are distinct kinds internally but carry the same message.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.StoreUnavailable(err)
	}
	if user == nil {
		return nil, apperr.UserNotFound()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("failed login attempt")
		return nil, apperr.BadCredentials()
	}

	tokenString, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal("Failed to issue token").WithCause(err)
	}

	log.Info().Str("userId", user.ID).Msg("user logged in")

	return &AuthResult{Token: tokenString, User: user}, nil
}
