package service

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"todo-service/internal/apperror"
	"todo-service/internal/auth"
	"todo-service/internal/entity"
	"todo-service/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// FindUserByEmailFunc returns nil credentials, not an error, when no user has email.
type FindUserByEmailFunc func(ctx context.Context, email string) (*entity.Credentials, error)

// CreateUserFunc persists a user and returns repository.ErrDuplicateEmail on a taken email.
type CreateUserFunc func(ctx context.Context, user *entity.User, hash string) (*entity.Profile, error)

var errInvalidCredentials = errors.New("invalid email or password")

// AuthService registers users and issues tokens. Persistence is injected as two
// functions so the service does not depend on a repository type.
type AuthService struct {
	findUserByEmail FindUserByEmailFunc
	createUser      CreateUserFunc
	hasher          *auth.PasswordHasher
	codec           *auth.TokenCodec
	sessions        auth.SessionStore
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(findUserByEmail FindUserByEmailFunc, createUser CreateUserFunc, hasher *auth.PasswordHasher, codec *auth.TokenCodec, sessions auth.SessionStore) *AuthService {
	return &AuthService{
		findUserByEmail: findUserByEmail,
		createUser:      createUser,
		hasher:          hasher,
		codec:           codec,
		sessions:        sessions,
	}
}

type AuthResult struct {
	Token string          `json:"token"`
	User  *entity.Profile `json:"user,omitempty"`
}

// Signup creates the user and signs them in.
func (s *AuthService) Signup(ctx context.Context, user *entity.User) (*AuthResult, error) {
	if strings.TrimSpace(user.Email) == "" || user.Password == "" {
		return nil, apperror.Validation("email and password are required")
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password")
		return nil, apperror.Validation("password cannot be hashed: %v", err)
	}

	profile, err := s.createUser(ctx, user, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			logger.Warn().Msg("Signup with an already registered email")
			return nil, apperror.Conflict("email already registered", err)
		}
		logger.Error().Err(err).Msg("Error creating user")
		return nil, apperror.Persistence(err)
	}

	token, err := s.issue(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: profile}, nil
}

// Signin verifies credentials. Unknown email and wrong password fail identically,
// including the time spent in bcrypt.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperror.Validation("email and password are required")
	}

	creds, err := s.findUserByEmail(ctx, email)
	if err != nil {
		logger.Error().Err(err).Msg("Error looking up user by email")
		return nil, apperror.Persistence(err)
	}

	if creds == nil {
		s.hasher.CompareDummy(password)
		return nil, apperror.Auth(errInvalidCredentials)
	}

	if !s.hasher.Compare(creds.Hash, password) {
		return nil, apperror.Auth(errInvalidCredentials)
	}

	token, err := s.issue(ctx, creds.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token}, nil
}

// Signout revokes the session behind claims.
func (s *AuthService) Signout(ctx context.Context, claims *auth.Claims) error {
	if err := s.sessions.Revoke(ctx, claims); err != nil {
		logger.Error().Err(err).Msgf("Error revoking session for user %d", claims.UserID)
		return apperror.Persistence(err)
	}
	return nil
}

func (s *AuthService) issue(ctx context.Context, userID int) (string, error) {
	token, claims, err := s.codec.Issue(userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error signing token for user %d", userID)
		return "", apperror.Persistence(err)
	}

	if err := s.sessions.Save(ctx, claims); err != nil {
		logger.Error().Err(err).Msgf("Error storing session for user %d", userID)
		return "", apperror.Persistence(err)
	}

	return token, nil
}
