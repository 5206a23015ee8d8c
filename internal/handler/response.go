package handler

import (
	"errors"
	"fmt"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/service"
	"go.uber.org/zap"
)

// Summaries sent under messages.error
const (
	msgValidation         = "Validation failed"
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidToken       = "Invalid or expired token"
	msgNotFound           = "Resource not found"
	msgInternal           = "Internal server error"
	msgInvalidBody        = "Invalid request body"
)

func respond(c *gin.Context, status int, message string, data any) {
	env, err := dto.NewEnvelope(status, message, data)
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgInternal, nil)
		return
	}
	c.JSON(status, env)
}

func respondPage(c *gin.Context, message string, data any, pagination dto.Pagination) {
	env, err := dto.NewEnvelope(http.StatusOK, message, data)
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgInternal, nil)
		return
	}
	env.Pagination = &pagination
	c.JSON(http.StatusOK, env)
}

func respondError(c *gin.Context, status int, summary string, fields map[string]string) {
	c.AbortWithStatusJSON(status, dto.NewErrorEnvelope(status, summary, fields))
}

// respondServiceError maps service errors onto statuses. Unexpected errors are logged and hidden.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, msgValidation, verr.Fields)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, msgInvalidCredentials, nil)
	case errors.Is(err, service.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, msgInvalidToken, nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, msgNotFound, nil)
	default:
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, msgInternal, nil)
	}
}

// respondBindingError turns validator failures into per-field messages keyed by the JSON name
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(c, http.StatusBadRequest, msgInvalidBody, nil)
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[lowerFirst(fe.Field())] = fieldMessage(fe)
	}
	respondError(c, http.StatusBadRequest, msgValidation, fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return "Invalid value"
	}
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
