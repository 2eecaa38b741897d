package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jterhune/watchvault/internal/dependencies/clock"
	"github.com/jterhune/watchvault/internal/model"
	"github.com/jterhune/watchvault/internal/storage"
)

// Service handles registration, login and token verification
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	secret        []byte
	tokenDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	// TokenSecret signs and verifies session tokens (HS256)
	TokenSecret string
	// TokenDuration bounds token lifetime; zero means tokens never expire
	TokenDuration time.Duration
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	return &Service{
		storage:       storage,
		clock:         clock,
		secret:        []byte(cfg.TokenSecret),
		tokenDuration: cfg.TokenDuration,
	}
}

// Register creates a new user account. The password is stored only as a
// bcrypt hash.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, model.NewValidationError("username is required")
	}
	if password == "" {
		return nil, model.NewValidationError("password is required")
	}

	// Username uniqueness is case-sensitive
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a signed session token embedding
// the user's ID. The bcrypt comparison is constant-time.
func (s *Service) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", nil, model.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, model.ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// VerifyToken checks a token's signature and structure and returns the
// embedded user ID. The user's continued existence is not re-checked;
// tokens are stateless.
func (s *Service) VerifyToken(tokenString string) (model.UserID, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", model.ErrTokenExpired
		}
		return "", model.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", model.ErrInvalidToken
	}

	return model.UserID(claims.Subject), nil
}

func (s *Service) issueToken(userID model.UserID) (string, error) {
	now := s.clock.Now()

	claims := jwt.RegisteredClaims{
		Subject:  string(userID),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenDuration))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
