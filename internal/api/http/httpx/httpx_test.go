package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/protolab/prototype-portal/internal/datamode"
	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/generation"
	"github.com/protolab/prototype-portal/internal/store"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("prototype 9: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.NewValidationError("user", "email", "bad"), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrEmailInUse, http.StatusConflict},
		{domain.ErrNotImplemented, http.StatusNotImplemented},
		{domain.ErrForbidden, http.StatusForbidden},
		{&generation.GenerationError{Provider: "genai", Op: "complete", Err: errors.New("boom")}, http.StatusBadGateway},
		{generation.ErrDisabled, http.StatusServiceUnavailable},
		{store.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), tt.err.Error())
	}
}

func TestErrorBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, domain.NewValidationError("prototype", "title", "is required"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{
		"error": "invalid request",
		"details": "validation: prototype.title: is required",
		"fields": [{"field": "title", "message": "is required"}]
	}`, w.Body.String())
}

func TestUseMock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	state := datamode.Restore(context.Background(), datamode.NewMemoryStore(), nil)

	tests := []struct {
		target string
		header string
		want   bool
	}{
		{"/x", "", true},
		{"/x?mode=real", "", false},
		{"/x", "real", false},
		{"/x?mode=mock", "real", true},
		{"/x?mode=bogus", "", true},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, tt.target, nil)
		if tt.header != "" {
			c.Request.Header.Set(ModeHeader, tt.header)
		}
		assert.Equal(t, tt.want, UseMock(c, state), tt.target+" "+tt.header)
	}
}
