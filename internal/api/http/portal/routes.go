package portal

import (
	"github.com/gin-gonic/gin"

	"github.com/protolab/prototype-portal/internal/auth/middleware"
	"github.com/protolab/prototype-portal/internal/domain"
)

// Register mounts the portal routes on api. Session resolution must already
// be installed on api.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/data-mode", h.GetDataMode)
	api.PUT("/data-mode", middleware.RequireRole(domain.RoleAdmin), h.SetDataMode)

	protos := api.Group("/prototypes")
	protos.GET("", h.ListPrototypes)
	protos.GET("/tags", h.ListTags)
	protos.GET("/:id", h.GetPrototype)
	protos.GET("/:id/feedback", h.ListPrototypeFeedback)

	api.POST("/feedback", h.CreateFeedback)
	api.POST("/evaluations", middleware.RequireRole(), h.CreateEvaluation)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleMember))

	admin.GET("/prototypes", h.ListPrototypes)
	admin.GET("/prototypes/:id", h.GetPrototype)
	admin.POST("/prototypes", h.CreatePrototype)
	admin.PUT("/prototypes/:id", h.UpdatePrototype)
	admin.DELETE("/prototypes/:id", h.DeletePrototype)
	admin.PUT("/feedback/:id", h.UpdateFeedback)
	admin.DELETE("/feedback/:id", h.DeleteFeedback)
	admin.GET("/pmf/:id", h.AnalyzePrototype)

	adminOnly := admin.Group("", middleware.RequireRole(domain.RoleAdmin))
	adminOnly.GET("/dashboard", h.Dashboard)
	adminOnly.GET("/datasource", h.DataSource)
	adminOnly.GET("/users", h.ListUsers)
	adminOnly.GET("/users/:id", h.GetUser)
	adminOnly.POST("/users", h.CreateUser)
	adminOnly.PUT("/users/:id", h.UpdateUser)
	adminOnly.DELETE("/users/:id", h.DeleteUser)
	adminOnly.GET("/evaluations", h.ListEvaluations)
	adminOnly.POST("/evaluations/analysis", h.AnalyzeEvaluations)
}
