package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/transferhub/transferhub-go/internal/dependencies/clock"
	"github.com/transferhub/transferhub-go/internal/model"
	"github.com/transferhub/transferhub-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// dummyHash is compared against when the username is unknown, so the
// unknown-user and wrong-password paths do the same amount of work.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("transferhub-dummy"), bcrypt.DefaultCost)

// Config holds configuration for the auth service
type Config struct {
	// TokenSecret signs bearer tokens; immutable for the process lifetime
	TokenSecret []byte
	// TokenTTL is the validity window of issued tokens
	TokenTTL time.Duration
}

// DefaultTokenTTL is the issuance window used when none is configured
const DefaultTokenTTL = 30 * time.Minute

// Service authenticates staff accounts and gates every transfer operation.
// It registers accounts, exchanges credentials for bearer tokens, and
// resolves presented tokens back to stored accounts.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	tokens  *TokenIssuer
}

// New creates a new auth Service
func New(store storage.Storage, clk clock.Clock, cfg Config) *Service {
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{
		storage: store,
		clock:   clk,
		tokens:  NewTokenIssuer(cfg.TokenSecret, ttl, clk),
	}
}

// Register creates a staff account with a bcrypt-hashed password.
// Returns model.ErrUsernameTaken if the username is already registered.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.InsertUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and mints a bearer token for the account.
// Unknown username and wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Burn a hash comparison so this path costs the same
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Mint(user.Username)
}

// Authorize verifies a presented token and resolves it to a stored account.
// A token whose subject no longer exists is treated as invalid.
func (s *Service) Authorize(ctx context.Context, token string) (*model.User, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
