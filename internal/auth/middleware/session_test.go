package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protolab/prototype-portal/config"
	"github.com/protolab/prototype-portal/internal/auth"
	"github.com/protolab/prototype-portal/internal/domain"
)

type stubVerifier map[string]domain.User

func (s stubVerifier) Verify(_ context.Context, raw string) (domain.User, error) {
	if u, ok := s[raw]; ok {
		return u, nil
	}
	return domain.User{}, errors.New("unknown token")
}

func setup(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenManager(config.AuthConfig{
		JWTSecret:  "0123456789abcdef0123456789abcdef",
		JWTIssuer:  "portal-test",
		SessionTTL: time.Hour,
	})

	r := gin.New()
	r.Use(Session(tokens, stubVerifier{"firebase-token": {ID: "3", Role: domain.RoleReader}}, nil))
	r.GET("/public", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": auth.CurrentUser(c)})
	})
	r.GET("/admin", RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": auth.CurrentUser(c).ID})
	})
	r.GET("/signed-in", RequireRole(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, tokens
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoleAnonymous(t *testing.T) {
	r, _ := setup(t)

	w := get(r, "/admin", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/login", body["redirect"])

	assert.Equal(t, http.StatusUnauthorized, get(r, "/admin", "garbage").Code)
	assert.Equal(t, http.StatusOK, get(r, "/public", "garbage").Code)
}

func TestRequireRoleChecksRole(t *testing.T) {
	r, tokens := setup(t)

	admin, err := tokens.Issue(domain.User{ID: "1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	member, err := tokens.Issue(domain.User{ID: "2", Role: domain.RoleMember})
	require.NoError(t, err)

	w := get(r, "/admin", admin.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"1"}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", member.Token).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/signed-in", member.Token).Code)
}

func TestSessionFallsBackToVerifier(t *testing.T) {
	r, _ := setup(t)

	assert.Equal(t, http.StatusNoContent, get(r, "/signed-in", "firebase-token").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "firebase-token").Code)
}
