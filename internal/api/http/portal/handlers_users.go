package portal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protolab/prototype-portal/internal/api/http/httpx"
)

func (h *Handler) ListUsers(c *gin.Context) {
	out := h.svc.Users.List(c.Request.Context(), h.useMock(c))
	c.JSON(http.StatusOK, gin.H{"users": out, "count": len(out)})
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.svc.Users.Get(c.Request.Context(), h.useMock(c), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	u, err := h.svc.Users.Create(c.Request.Context(), h.useMock(c), req.toDomain())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	u, err := h.svc.Users.Update(c.Request.Context(), h.useMock(c), c.Param("id"), req.toDomain())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.svc.Users.Delete(c.Request.Context(), h.useMock(c), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
