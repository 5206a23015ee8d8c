package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prperemyshlev/seller-portal/internal/domain"
	"go.uber.org/zap"
)

// Keys under which the session is persisted
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// Session is the signed-in vendor's token and cached profile
type Session struct {
	store  Store
	logger *zap.Logger
}

// New creates a session on top of store
func New(store Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{store: store, logger: logger}
}

// Token returns the stored bearer token, expired or not
func (s *Session) Token(ctx context.Context) (string, bool) {
	token, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("Failed to read session token", zap.Error(err))
		}
		return "", false
	}
	return token, token != ""
}

// User returns the cached vendor profile
func (s *Session) User(ctx context.Context) (*domain.Vendor, bool) {
	raw, err := s.store.Get(ctx, UserKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("Failed to read cached user", zap.Error(err))
		}
		return nil, false
	}

	var user domain.Vendor
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("Cached user is corrupt", zap.Error(err))
		return nil, false
	}
	return &user, true
}

// Save stores a freshly issued token together with the vendor it belongs to
func (s *Session) Save(ctx context.Context, token string, user domain.Vendor) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := s.store.Set(ctx, UserKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Authenticated reports whether a non-expired token is stored
func (s *Session) Authenticated(ctx context.Context) bool {
	token, ok := s.Token(ctx)
	return ok && !IsTokenExpired(token)
}

// Clear removes the token and cached user. Safe to call repeatedly; failures are logged, never returned.
func (s *Session) Clear(ctx context.Context) {
	for _, key := range []string{TokenKey, UserKey} {
		if err := s.store.Remove(ctx, key); err != nil {
			s.logger.Warn("Failed to clear session value", zap.String("key", key), zap.Error(err))
		}
	}
}
