package portal

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/protolab/prototype-portal/internal/api/http/httpx"
	"github.com/protolab/prototype-portal/internal/auth"
	"github.com/protolab/prototype-portal/internal/service"
)

func filterFrom(c *gin.Context) service.PrototypeFilter {
	var tags []string
	for _, raw := range c.QueryArray("tag") {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return service.PrototypeFilter{Query: c.Query("q"), Tags: tags}
}

// ListPrototypes serves GET /prototypes?q=&tag=. Repeated or comma-separated
// tags must all match.
func (h *Handler) ListPrototypes(c *gin.Context) {
	out := h.svc.Prototypes.List(c.Request.Context(), h.useMock(c), auth.CurrentUser(c), filterFrom(c))
	c.JSON(http.StatusOK, gin.H{"prototypes": out, "count": len(out)})
}

func (h *Handler) ListTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": h.svc.Prototypes.Tags(c.Request.Context(), h.useMock(c), auth.CurrentUser(c))})
}

func (h *Handler) GetPrototype(c *gin.Context) {
	p, err := h.svc.Prototypes.Get(c.Request.Context(), h.useMock(c), auth.CurrentUser(c), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prototype": p})
}

func (h *Handler) CreatePrototype(c *gin.Context) {
	var req prototypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	p, err := h.svc.Prototypes.Create(c.Request.Context(), h.useMock(c), req.toDomain(authoredBy(auth.CurrentUser(c))))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"prototype": p})
}

// UpdatePrototype replaces the mutable fields of a prototype the caller can
// see.
func (h *Handler) UpdatePrototype(c *gin.Context) {
	var req prototypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	useMock := h.useMock(c)
	viewer := auth.CurrentUser(c)
	id := c.Param("id")
	cur, err := h.svc.Prototypes.Get(ctx, useMock, viewer, id)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	p, err := h.svc.Prototypes.Update(ctx, useMock, id, req.toDomain(cur))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prototype": p})
}

func (h *Handler) DeletePrototype(c *gin.Context) {
	ctx := c.Request.Context()
	useMock := h.useMock(c)
	id := c.Param("id")
	if _, err := h.svc.Prototypes.Get(ctx, useMock, auth.CurrentUser(c), id); err != nil {
		httpx.Error(c, err)
		return
	}
	if err := h.svc.Prototypes.Delete(ctx, useMock, id); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
