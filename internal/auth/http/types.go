package http

import (
	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/auth"
	"github.com/protolab/prototype-portal/internal/datamode"
	"github.com/protolab/prototype-portal/internal/domain"
)

type Handler struct {
	mock   auth.Provider
	real   auth.Provider
	tokens *auth.TokenManager
	mode   *datamode.State
	log    *zap.Logger
}

// New builds the auth handler. The provider is picked per request from the
// data mode: mock mode signs in against fixtures, real mode uses real.
func New(mock, real auth.Provider, tokens *auth.TokenManager, mode *datamode.State, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{mock: mock, real: real, tokens: tokens, mode: mode, log: log}
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signUpRequest struct {
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Name     string      `json:"name" binding:"required"`
	Role     domain.Role `json:"role"`
}

type sessionResponse struct {
	User    domain.User  `json:"user"`
	Session auth.Session `json:"session"`
}
