package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/auth"
	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/logging"
)

// LoginPath is where unauthenticated clients are sent.
const LoginPath = "/login"

// TokenVerifier resolves an externally issued ID token to a portal user.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (domain.User, error)
}

// Session resolves the bearer token to a user. Portal session tokens are tried
// first, then fallback (Firebase ID tokens) when it is set. Requests without a
// valid token continue anonymously; RequireRole decides whether that is enough.
func Session(tokens *auth.TokenManager, fallback TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		raw := auth.BearerToken(c)
		if raw == "" {
			c.Next()
			return
		}

		u, err := tokens.Parse(raw)
		if err != nil && fallback != nil {
			u, err = fallback.Verify(c.Request.Context(), raw)
		}
		if err != nil {
			logging.FromContext(c.Request.Context(), log).Debug("ignoring invalid session token", zap.Error(err))
			c.Next()
			return
		}

		auth.SetUser(c, u)
		c.Next()
	}
}

// RequireRole rejects anonymous requests with 401 and a login redirect, and
// users without one of roles with 403. No roles admits any signed-in user.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := auth.CurrentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": LoginPath,
			})
			return
		}
		if !domain.Authorize(u, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "insufficient permissions",
				"details": "role " + string(u.Role) + " may not access this resource",
			})
			return
		}
		c.Next()
	}
}
