package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/protolab/prototype-portal/internal/domain"
)

const (
	CtxUser = "portal_user"
)

// SetUser stores the signed-in user on the request.
func SetUser(c *gin.Context, u domain.User) {
	c.Set(CtxUser, u)
}

// CurrentUser returns the user set by the session middleware, or nil for an
// anonymous request.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, ok := v.(domain.User)
	if !ok {
		return nil
	}
	return &u
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
