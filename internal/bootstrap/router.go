package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/protolab/prototype-portal/internal/api/http"
	"github.com/protolab/prototype-portal/internal/api/http/httpx"
	"github.com/protolab/prototype-portal/internal/api/http/middleware"
	"github.com/protolab/prototype-portal/internal/api/http/routes"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Origins     []string
	App         *App
	Log         *zap.Logger
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpx.ModeHeader, middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		MaxAge:           12 * time.Hour,
		AllowCredentials: true,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Log))
	r.Use(cors.New(corsConfig(dep.Origins)))

	a := dep.App
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, a.Executor, a.Mode, a.Generation.Provider())
	healthHandler.RegisterRoutes(r)
	healthHandler.RegisterRoutes(r.Group("/api/v1"))

	routes.RegisterV1(r, routes.V1Deps{
		Services:      a.Services,
		Mode:          a.Mode,
		Tokens:        a.Tokens,
		MockAuth:      a.MockAuth,
		RealAuth:      a.RealAuth,
		TokenFallback: a.TokenFallback,
		Log:           dep.Log,
	})

	return r
}
