// Package portal serves the prototype portal's JSON API.
package portal

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/api/http/httpx"
	"github.com/protolab/prototype-portal/internal/datamode"
	"github.com/protolab/prototype-portal/internal/service"
)

type Handler struct {
	svc  *service.Services
	mode *datamode.State
	log  *zap.Logger
}

func New(svc *service.Services, mode *datamode.State, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, mode: mode, log: log}
}

func (h *Handler) useMock(c *gin.Context) bool {
	return httpx.UseMock(c, h.mode)
}
