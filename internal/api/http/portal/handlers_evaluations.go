package portal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protolab/prototype-portal/internal/api/http/httpx"
	"github.com/protolab/prototype-portal/internal/auth"
)

// CreateEvaluation stores a portal evaluation for the signed-in user. The
// sentiment is always derived server side.
func (h *Handler) CreateEvaluation(c *gin.Context) {
	var req evaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	e, err := h.svc.Evaluations.Create(c.Request.Context(), h.useMock(c), req.toDomain(auth.CurrentUser(c).ID))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"evaluation": e})
}

func (h *Handler) ListEvaluations(c *gin.Context) {
	out := h.svc.Evaluations.List(c.Request.Context(), h.useMock(c))
	c.JSON(http.StatusOK, gin.H{"evaluations": out, "count": len(out)})
}

func (h *Handler) AnalyzeEvaluations(c *gin.Context) {
	a, err := h.svc.AnalyzeEvaluations(c.Request.Context(), h.useMock(c))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": a})
}
