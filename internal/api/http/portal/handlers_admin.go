package portal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/api/http/httpx"
	"github.com/protolab/prototype-portal/internal/auth"
	"github.com/protolab/prototype-portal/internal/logging"
)

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard(c.Request.Context(), h.useMock(c), auth.CurrentUser(c)))
}

// DataSource reports how reads were served since startup.
func (h *Handler) DataSource(c *gin.Context) {
	s := h.svc.Stats.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"mode":         h.mode.Mode(),
		"stats":        s,
		"fallbackRate": s.FallbackRate(),
	})
}

// AnalyzePrototype serves the PMF page of one prototype.
func (h *Handler) AnalyzePrototype(c *gin.Context) {
	ctx := c.Request.Context()
	report, err := h.svc.AnalyzePrototype(ctx, h.useMock(c), auth.CurrentUser(c), c.Param("id"))
	if err != nil {
		logging.FromContext(ctx, h.log).Warn("pmf analysis failed", zap.String("prototype_id", c.Param("id")), zap.Error(err))
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) GetDataMode(c *gin.Context) {
	c.JSON(http.StatusOK, modeResponse{Mode: h.mode.Mode()})
}

func (h *Handler) SetDataMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	if err := h.mode.Set(c.Request.Context(), req.Mode); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, modeResponse{Mode: h.mode.Mode()})
}
