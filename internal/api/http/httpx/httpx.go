// Package httpx holds the response and request helpers shared by the portal
// handlers.
package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/protolab/prototype-portal/internal/datamode"
	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/generation"
	"github.com/protolab/prototype-portal/internal/store"
)

// ModeHeader overrides the persisted data mode for one request.
const ModeHeader = "X-Data-Mode"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string              `json:"error"`
	Details string              `json:"details,omitempty"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, generation.ErrDisabled), errors.Is(err, store.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, generation.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func message(status int) string {
	switch status {
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusUnauthorized:
		return "invalid credentials"
	case http.StatusForbidden:
		return "insufficient permissions"
	case http.StatusConflict:
		return "email already in use"
	case http.StatusNotImplemented:
		return "operation not supported by the active provider"
	case http.StatusServiceUnavailable:
		return "service unavailable"
	case http.StatusBadGateway:
		return "content generation failed"
	default:
		return "internal error"
	}
}

// Error writes err with the status Status picks. Validation errors list the
// failing fields.
func Error(c *gin.Context, err error) {
	status := Status(err)
	body := ErrorBody{Error: message(status), Details: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Errors
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// BadRequest writes a 400 for a request that could not be decoded.
func BadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Error: "invalid request body", Details: err.Error()})
}

// ModeOverride returns the per-request data mode from ?mode= or the
// X-Data-Mode header, or "" when neither is set.
func ModeOverride(c *gin.Context) string {
	if m := strings.TrimSpace(c.Query("mode")); m != "" {
		return m
	}
	return strings.TrimSpace(c.GetHeader(ModeHeader))
}

// UseMock resolves the data mode for c against state.
func UseMock(c *gin.Context, state *datamode.State) bool {
	return state.Resolve(ModeOverride(c)) == domain.ModeMock
}
