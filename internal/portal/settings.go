package portal

import (
	"context"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/registration"
	"github.com/prperemyshlev/seller-portal/internal/session"
	"go.uber.org/zap"
)

// Settings edits the vendor's account
type Settings struct {
	client  *apiclient.Client
	session *session.Session
	logger  *zap.Logger
}

func NewSettings(client *apiclient.Client, sess *session.Session, logger *zap.Logger) *Settings {
	return &Settings{client: client, session: sess, logger: logger}
}

// UpdateProfile saves profile fields and refreshes the cached user.
// The phone number is sent in canonical form.
func (s *Settings) UpdateProfile(ctx context.Context, req dto.ProfileRequest) (*domain.Vendor, error) {
	req.PhoneNumber = registration.CanonicalizePhone(req.PhoneNumber)

	env, err := s.client.Put(ctx, "/settings/profile", req)
	if err != nil {
		return nil, err
	}
	user, err := apiclient.DecodeData[domain.Vendor](env)
	if err != nil {
		return nil, err
	}

	if token, ok := s.session.Token(ctx); ok {
		if err := s.session.Save(ctx, token, user); err != nil {
			s.logger.Warn("Failed to refresh cached user", zap.Error(err))
		}
	}
	return &user, nil
}

func (s *Settings) ChangePassword(ctx context.Context, req dto.PasswordChangeRequest) error {
	_, err := s.client.Put(ctx, "/settings/password", req)
	return err
}

// Documents lists the verification documents uploaded at registration
func (s *Settings) Documents(ctx context.Context) ([]domain.Document, error) {
	env, err := s.client.Get(ctx, "/vendor/documents")
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeData[[]domain.Document](env)
}
