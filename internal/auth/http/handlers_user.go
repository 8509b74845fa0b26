package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/api/http/httpx"
	"github.com/protolab/prototype-portal/internal/auth"
	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/logging"
)

func (h *Handler) provider(c *gin.Context) auth.Provider {
	if h.real == nil || httpx.UseMock(c, h.mode) {
		return h.mock
	}
	return h.real
}

// SignIn checks credentials and returns a session token.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	u, err := h.provider(c).SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logging.FromContext(c.Request.Context(), h.log).Info("sign in rejected", zap.String("email", req.Email), zap.Error(err))
		httpx.Error(c, err)
		return
	}
	h.respond(c, http.StatusOK, u)
}

// SignUp registers a user and signs them in.
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	u, err := h.provider(c).SignUp(c.Request.Context(), auth.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	h.respond(c, http.StatusCreated, u)
}

func (h *Handler) SignOut(c *gin.Context) {
	if err := h.provider(c).SignOut(c.Request.Context()); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me returns the user carried by the session token.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": auth.CurrentUser(c)})
}

func (h *Handler) respond(c *gin.Context, status int, u domain.User) {
	s, err := h.tokens.Issue(u)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(status, sessionResponse{User: u, Session: s})
}
