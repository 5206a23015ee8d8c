package acceptance

import (
	"net/http"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/registration"
	"github.com/prperemyshlev/seller-portal/internal/session"
)

func registrationData(email string) registration.CompleteRegistrationData {
	return registration.CompleteRegistrationData{
		EmailAddress:           email,
		Password:               "supersecret",
		FullName:               "Tunde Bakare",
		BusinessName:           "Bakare Gadgets",
		BusinessCategory:       2,
		PhoneNumber:            "+234 803 555 0101",
		StoreName:              "Bakare Gadgets Ikeja",
		BusinessAddress:        "4 Computer Village, Ikeja",
		IDDocument:             &registration.Attachment{Filename: "id.png", Content: []byte("\x89PNG\r\n\x1a\nid")},
		BusinessRegCertificate: &registration.Attachment{Filename: "cac.pdf", Content: []byte("%PDF-1.4 cac")},
	}
}

func (s *Suite) TestRegister_PersistsVendorAndDocuments() {
	vc := s.newClient("acceptance:register")
	s.Require().NoError(s.register(vc, "tunde@example.com"))

	var (
		phone    string
		category int
	)
	err := s.Postgres.DB.QueryRowContext(s.ctx,
		`SELECT phone_number, business_category FROM vendors WHERE email_address = $1`, "tunde@example.com",
	).Scan(&phone, &category)
	s.Require().NoError(err)
	s.Equal("2348035550101", phone)
	s.Equal(2, category)

	var documents int
	err = s.Postgres.DB.QueryRowContext(s.ctx, `SELECT COUNT(*) FROM vendor_documents`).Scan(&documents)
	s.Require().NoError(err)
	s.Equal(2, documents)

	docs, err := vc.portal.Settings.Documents(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal("image/png", docs[0].ContentType)

	token, err := s.Redis.Client.Get(s.ctx, "acceptance:register:"+session.TokenKey).Result()
	s.Require().NoError(err)
	s.NotEmpty(token)
}

func (s *Suite) TestRegister_DuplicateEmailAcrossSessions() {
	s.Require().NoError(s.register(s.newClient("acceptance:first"), "tunde@example.com"))

	second := s.newClient("acceptance:second")
	err := s.register(second, "Tunde@Example.com")

	var regErr *registration.RegistrationError
	s.Require().ErrorAs(err, &regErr)
	s.Equal("Email address is already registered", regErr.FieldErrors.Get(registration.FieldEmailAddress))
	s.False(second.portal.Auth.IsAuthenticated(s.ctx))
}

func (s *Suite) TestLogout_RevokesTokenInRedis() {
	vc := s.newClient("acceptance:logout")
	s.Require().NoError(s.register(vc, "tunde@example.com"))

	token, ok := vc.session.Token(s.ctx)
	s.Require().True(ok)
	user, ok := vc.session.User(s.ctx)
	s.Require().True(ok)

	vc.portal.Auth.Logout(s.ctx)
	s.False(vc.portal.Auth.IsAuthenticated(s.ctx))

	keys, err := s.Redis.Client.Keys(s.ctx, "blacklist:token:*").Result()
	s.Require().NoError(err)
	s.Len(keys, 1)

	replay := s.newClient("acceptance:replay")
	s.Require().NoError(replay.session.Save(s.ctx, token, *user))

	_, err = replay.portal.Auth.Me(s.ctx)
	s.ErrorIs(err, apiclient.ErrSessionExpired)
	s.False(replay.portal.Auth.IsAuthenticated(s.ctx))

	again, err := vc.portal.Auth.Login(s.ctx, "tunde@example.com", "supersecret")
	s.Require().NoError(err)
	s.Equal("Tunde Bakare", again.FullName)
}

func (s *Suite) TestLogin_RateLimitIsSharedThroughRedis() {
	vc := s.newClient("acceptance:limit")

	for range 3 {
		_, err := vc.portal.Auth.Login(s.ctx, "nobody@example.com", "whatever1")
		s.ErrorIs(err, apiclient.ErrCredentialsRejected)
	}

	_, err := vc.portal.Auth.Login(s.ctx, "nobody@example.com", "whatever1")
	apiErr, ok := apiclient.AsError(err)
	s.Require().True(ok)
	s.Equal(http.StatusTooManyRequests, apiErr.Status)

	keys, err := s.Redis.Client.Keys(s.ctx, "ratelimit:*").Result()
	s.Require().NoError(err)
	s.NotEmpty(keys)
}
