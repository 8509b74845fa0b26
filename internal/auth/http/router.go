package http

import (
	"github.com/gin-gonic/gin"

	"github.com/protolab/prototype-portal/internal/auth/middleware"
)

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/login", h.SignIn)
	rg.POST("/signup", h.SignUp)
	rg.POST("/logout", h.SignOut)
	rg.GET("/me", middleware.RequireRole(), h.Me)
}
