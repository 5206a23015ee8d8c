package portal

import (
	"context"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/session"
	"go.uber.org/zap"
)

// Auth signs vendors in and out
type Auth struct {
	client  *apiclient.Client
	session *session.Session
	logger  *zap.Logger
}

// NewAuth creates the auth service
func NewAuth(client *apiclient.Client, sess *session.Session, logger *zap.Logger) *Auth {
	return &Auth{client: client, session: sess, logger: logger}
}

// Login exchanges credentials for a token and stores it with the vendor profile
func (a *Auth) Login(ctx context.Context, email, password string) (*domain.Vendor, error) {
	req := dto.LoginRequest{EmailAddress: email, Password: password}

	env, err := a.client.Post(ctx, "/auth/login", req, apiclient.WithoutAuth())
	if err != nil {
		return nil, err
	}

	auth, err := apiclient.DecodeData[dto.AuthData](env)
	if err != nil {
		return nil, err
	}
	if auth.Token == "" {
		return nil, &apiclient.Error{Kind: apiclient.KindUnknown, Message: apiclient.MsgRequestFailed, Status: env.Status}
	}

	if err := a.session.Save(ctx, auth.Token, auth.User); err != nil {
		a.logger.Error("Failed to persist session", zap.Error(err))
		return nil, err
	}

	a.logger.Info("Vendor logged in", zap.String("vendor_id", auth.User.ID))
	return &auth.User, nil
}

// Logout revokes the token server-side when possible. The local session is always cleared.
func (a *Auth) Logout(ctx context.Context) {
	if a.IsAuthenticated(ctx) {
		if _, err := a.client.Post(ctx, "/auth/logout", nil); err != nil {
			a.logger.Warn("Server logout failed", zap.Error(err))
		}
	}
	a.session.Clear(ctx)
}

// Me fetches the signed-in vendor and refreshes the cached profile
func (a *Auth) Me(ctx context.Context) (*domain.Vendor, error) {
	env, err := a.client.Get(ctx, "/auth/me")
	if err != nil {
		return nil, err
	}

	user, err := apiclient.DecodeData[domain.Vendor](env)
	if err != nil {
		return nil, err
	}

	if token, ok := a.session.Token(ctx); ok {
		if err := a.session.Save(ctx, token, user); err != nil {
			a.logger.Warn("Failed to refresh cached user", zap.Error(err))
		}
	}
	return &user, nil
}

// IsAuthenticated reports whether a non-expired token is stored
func (a *Auth) IsAuthenticated(ctx context.Context) bool {
	return a.session.Authenticated(ctx)
}

// CurrentUser returns the cached vendor profile without a network call
func (a *Auth) CurrentUser(ctx context.Context) (*domain.Vendor, bool) {
	return a.session.User(ctx)
}
