package registration

import (
	"context"
	"errors"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/session"
	"go.uber.org/zap"
)

// RegisterPath is the registration endpoint, relative to the API root
const RegisterPath = "/vendor/register"

// RegistrationError is returned by Pipeline.Submit for every failure.
// FieldErrors is empty unless the server rejected individual fields.
type RegistrationError struct {
	Message     string
	FieldErrors FieldErrors
	err         error
}

func (e *RegistrationError) Error() string {
	return e.Message
}

func (e *RegistrationError) Unwrap() error {
	return e.err
}

func newRegistrationError(err error) *RegistrationError {
	regErr := &RegistrationError{Message: err.Error(), FieldErrors: FieldErrors{}, err: err}

	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return regErr
	}
	regErr.Message = apiErr.Message
	if apiErr.Kind == apiclient.KindValidation {
		// the "error" summary entry stays out of FieldErrors; it is already the Message
		for name, message := range apiErr.FieldMessages() {
			regErr.FieldErrors[Field(name)] = message
		}
	}
	return regErr
}

// Pipeline submits completed registrations
type Pipeline struct {
	client  *apiclient.Client
	session *session.Session
	logger  *zap.Logger
}

// NewPipeline creates a pipeline. When sess is non-nil, a token returned by a successful
// registration is saved to it.
func NewPipeline(client *apiclient.Client, sess *session.Session, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{client: client, session: sess, logger: logger}
}

// Submit sends data as one multipart request without the bearer token.
// Any error is a *RegistrationError.
func (p *Pipeline) Submit(ctx context.Context, data CompleteRegistrationData) (*apiclient.Envelope, error) {
	form := BuildPayload(data, p.logger)

	env, err := p.client.Post(ctx, RegisterPath, form, apiclient.WithoutAuth(), apiclient.AsFormData())
	if err != nil {
		regErr := newRegistrationError(err)
		p.logger.Info("Registration rejected",
			zap.String("message", regErr.Message),
			zap.Int("field_errors", len(regErr.FieldErrors)),
		)
		return nil, regErr
	}

	p.remember(ctx, env)
	return env, nil
}

// remember stores the session issued with the registration, if any
func (p *Pipeline) remember(ctx context.Context, env *apiclient.Envelope) {
	if p.session == nil || len(env.Data) == 0 {
		return
	}
	auth, err := apiclient.DecodeData[dto.AuthData](env)
	if err != nil || auth.Token == "" {
		return
	}
	if err := p.session.Save(ctx, auth.Token, auth.User); err != nil {
		p.logger.Warn("Failed to save session after registration", zap.Error(err))
	}
}
