package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/prperemyshlev/seller-portal/internal/dto"
)

// Kind classifies a failed API call
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNetwork
	KindCredentialsRejected
	KindSessionExpired
	KindValidation
	KindForbidden
	KindNotFound
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindCredentialsRejected:
		return "credentials_rejected"
	case KindSessionExpired:
		return "session_expired"
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// User-facing messages for each failure class
const (
	MsgSessionExpired = "Session expired. Please login again."
	MsgValidation     = "Validation failed"
	MsgForbidden      = "Access forbidden"
	MsgNotFound       = "Resource not found"
	MsgServer         = "Internal server error"
	MsgNetwork        = "Network error. Please check your connection."
	MsgRequestFailed  = "Request failed"
)

// Sentinel errors matched by errors.Is against an *Error of the same kind
var (
	ErrUnknown             = errors.New("request failed")
	ErrNetwork             = errors.New("network error")
	ErrCredentialsRejected = errors.New("credentials rejected")
	ErrSessionExpired      = errors.New("session expired")
	ErrValidation          = errors.New("validation failed")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("resource not found")
	ErrServer              = errors.New("internal server error")
)

// credentialRejectionMarkers identify a 401 caused by a failed login rather than a stale session.
// Matched case-insensitively against the response message.
var credentialRejectionMarkers = []string{
	"invalid credentials",
	"invalid email or password",
}

// Error is the only error type returned by Client.
// Status is zero when no response was received. Data holds the raw response body, if any.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Data    json.RawMessage
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match the sentinel of the error's kind
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// IsAuth reports whether the error is one of the 401 kinds
func (e *Error) IsAuth() bool {
	return e.Kind == KindCredentialsRejected || e.Kind == KindSessionExpired
}

// FieldMessages returns the per-field messages carried by a validation response.
// The summary entry is not a field and is left out.
func (e *Error) FieldMessages() map[string]string {
	return fieldMessages(e.Data)
}

// AsError unwraps err into an *Error
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindCredentialsRejected:
		return ErrCredentialsRejected
	case KindSessionExpired:
		return ErrSessionExpired
	case KindValidation:
		return ErrValidation
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindServer:
		return ErrServer
	default:
		return ErrUnknown
	}
}

func newError(kind Kind, message string, status int, data []byte) *Error {
	return &Error{Kind: kind, Message: message, Status: status, Data: data}
}

// errorPayload covers both the error envelope and plain {"message": "..."} bodies
type errorPayload struct {
	Message  string         `json:"message"`
	Messages map[string]any `json:"messages"`
}

func decodeErrorPayload(body []byte) errorPayload {
	var p errorPayload
	if len(body) == 0 {
		return p
	}
	_ = json.Unmarshal(body, &p)
	return p
}

// summaryMessage returns messages.error, falling back to the top-level message
func summaryMessage(body []byte) string {
	p := decodeErrorPayload(body)
	if s, ok := p.Messages[dto.MessageKey].(string); ok && s != "" {
		return s
	}
	return p.Message
}

func fieldMessages(body []byte) map[string]string {
	p := decodeErrorPayload(body)
	fields := make(map[string]string, len(p.Messages))
	for key, value := range p.Messages {
		if key == dto.MessageKey {
			continue
		}
		switch v := value.(type) {
		case string:
			fields[key] = v
		case nil:
			fields[key] = ""
		default:
			fields[key] = fmt.Sprint(v)
		}
	}
	return fields
}

func isCredentialRejection(message string) bool {
	lower := strings.ToLower(message)
	for _, marker := range credentialRejectionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
