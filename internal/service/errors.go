package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/prperemyshlev/seller-portal/internal/registration"
	"github.com/prperemyshlev/seller-portal/internal/repository"
)

var (
	// ErrInvalidCredentials is returned by Login. Its text is what clients match to tell a
	// rejected login apart from an expired session.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized covers invalid, expired and revoked tokens
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when the resource does not exist or belongs to another vendor
	ErrNotFound = errors.New("resource not found")
)

// Field messages produced only by the server
const (
	MsgEmailTaken         = "Email address is already registered"
	MsgCategoryUnknown    = "Unknown business category"
	MsgCurrentPassword    = "Current password is incorrect"
	MsgOrderStatusInvalid = "Invalid order status"
	MsgPeriodInvalid      = "Period must be one of 7d, 30d, 90d"
	MsgImagesRequired     = "At least one product image is required"
)

// ValidationError carries per-field messages keyed by wire field name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func fromFieldErrors(errs registration.FieldErrors) *ValidationError {
	fields := make(map[string]string, len(errs))
	for f, msg := range errs {
		fields[string(f)] = msg
	}
	return &ValidationError{Fields: fields}
}

// notFound maps a repository miss onto ErrNotFound and wraps anything else
func notFound(err error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
