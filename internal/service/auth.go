package service

import (
	"context"
	"errors"
	"time"

	"github.com/periferia/periferia-social/internal/crypto"
	"github.com/periferia/periferia-social/internal/model"
	"github.com/periferia/periferia-social/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentifierRequired = errors.New("identifier is required")
	ErrPasswordRequired   = errors.New("password is required")
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService handles credential verification and token issuance.
type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Login verifies the identifier/password pair and returns a signed token
// plus the safe user projection. An unknown identifier and a wrong password
// both yield ErrInvalidCredentials, so callers cannot tell which was wrong.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	if req.Identifier == "" {
		return model.AuthResponse{}, ErrIdentifierRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}

	user, err := s.users.FindByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User:  model.SafeUser(user),
	}, nil
}

// GetUser retrieves the safe projection of a user by id. The not-found error
// from the store passes through: a valid token whose user row has vanished
// is a 404 at the boundary, not a server failure.
func (s *AuthService) GetUser(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return model.SafeUser(user), nil
}
