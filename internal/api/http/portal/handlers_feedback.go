package portal

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protolab/prototype-portal/internal/api/http/httpx"
	"github.com/protolab/prototype-portal/internal/auth"
	"github.com/protolab/prototype-portal/internal/domain"
)

const anonymousUserID = "anonymous"

// ListPrototypeFeedback serves GET /prototypes/:id/feedback.
func (h *Handler) ListPrototypeFeedback(c *gin.Context) {
	ctx := c.Request.Context()
	useMock := h.useMock(c)
	id := c.Param("id")
	if _, err := h.svc.Prototypes.Get(ctx, useMock, auth.CurrentUser(c), id); err != nil {
		httpx.Error(c, err)
		return
	}
	out := h.svc.Feedback.ListByPrototype(ctx, useMock, id)
	c.JSON(http.StatusOK, gin.H{"feedback": out, "count": len(out)})
}

// CreateFeedback records feedback on a visible prototype. Signed-in users
// are credited by id; anonymous feedback keeps the userId from the body.
func (h *Handler) CreateFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	useMock := h.useMock(c)
	viewer := auth.CurrentUser(c)
	f := req.toDomain()
	switch {
	case viewer != nil:
		f.UserID = viewer.ID
	case f.UserID == "":
		f.UserID = anonymousUserID
	}

	if f.PrototypeID != "" {
		if _, err := h.svc.Prototypes.Get(ctx, useMock, viewer, f.PrototypeID); err != nil {
			httpx.Error(c, err)
			return
		}
	}

	out, err := h.svc.Feedback.Create(ctx, useMock, f)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": out})
}

// visibleFeedback loads feedback whose prototype the caller can see. Feedback
// on a hidden prototype is reported as missing.
func (h *Handler) visibleFeedback(c *gin.Context, useMock bool) (domain.Feedback, bool) {
	ctx := c.Request.Context()
	f, err := h.svc.Feedback.Get(ctx, useMock, c.Param("id"))
	if err == nil {
		_, err = h.svc.Prototypes.Get(ctx, useMock, auth.CurrentUser(c), f.PrototypeID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = fmt.Errorf("feedback %s: %w", c.Param("id"), domain.ErrNotFound)
		}
		httpx.Error(c, err)
		return domain.Feedback{}, false
	}
	return f, true
}

// UpdateFeedback keeps the stored author and prototype when the body leaves
// them blank. Moving feedback requires the target prototype to be visible.
func (h *Handler) UpdateFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}

	useMock := h.useMock(c)
	cur, ok := h.visibleFeedback(c, useMock)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	f := req.toDomain()
	if f.UserID == "" {
		f.UserID = cur.UserID
	}
	switch f.PrototypeID {
	case "":
		f.PrototypeID = cur.PrototypeID
	case cur.PrototypeID:
	default:
		if _, err := h.svc.Prototypes.Get(ctx, useMock, auth.CurrentUser(c), f.PrototypeID); err != nil {
			httpx.Error(c, err)
			return
		}
	}

	out, err := h.svc.Feedback.Update(ctx, useMock, cur.ID, f)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": out})
}

func (h *Handler) DeleteFeedback(c *gin.Context) {
	useMock := h.useMock(c)
	cur, ok := h.visibleFeedback(c, useMock)
	if !ok {
		return
	}
	if err := h.svc.Feedback.Delete(c.Request.Context(), useMock, cur.ID); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
