package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/api/http/portal"
	"github.com/protolab/prototype-portal/internal/auth"
	authhttp "github.com/protolab/prototype-portal/internal/auth/http"
	"github.com/protolab/prototype-portal/internal/auth/middleware"
	"github.com/protolab/prototype-portal/internal/datamode"
	"github.com/protolab/prototype-portal/internal/service"
)

type V1Deps struct {
	Services      *service.Services
	Mode          *datamode.State
	Tokens        *auth.TokenManager
	MockAuth      auth.Provider
	RealAuth      auth.Provider
	TokenFallback middleware.TokenVerifier
	Log           *zap.Logger
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(middleware.Session(dep.Tokens, dep.TokenFallback, dep.Log))

	authhttp.New(dep.MockAuth, dep.RealAuth, dep.Tokens, dep.Mode, dep.Log).Register(api.Group("/auth"))
	portal.New(dep.Services, dep.Mode, dep.Log).Register(api)
}
