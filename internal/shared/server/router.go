package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "eventvault-backend/internal/auth"
	"eventvault-backend/internal/bugs"
	"eventvault-backend/internal/contracts"
	"eventvault-backend/internal/events"
	"eventvault-backend/internal/shared/config"
	"eventvault-backend/internal/shared/metrics"
	"eventvault-backend/internal/shared/server/middleware"
	"eventvault-backend/internal/shared/server/respond"
	"eventvault-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	UserHandler     *users.Handler
	EventHandler    *events.Handler
	ContractHandler *contracts.Handler
	BugHandler      *bugs.Handler
	GoogleAuth      *googleauth.GoogleService
}

const uploadRateGroup = "CONTRACT_UPLOAD"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				uploadRateGroup: {Rate: 0.5, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && isContractUploadPath(c.FullPath()) {
					return uploadRateGroup
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.EventHandler != nil {
		deps.EventHandler.RegisterRoutes(api)
	}
	if deps.ContractHandler != nil {
		deps.ContractHandler.RegisterRoutes(api)
	}
	if deps.BugHandler != nil {
		deps.BugHandler.RegisterRoutes(api)
	}

	if deps.Config.Env == "dev" || deps.Config.Env == "local" {
		r.GET("/metrics", metrics.Handler())
	}

	return r
}

func isContractUploadPath(fullPath string) bool {
	return fullPath == "/api/v1/events/:id/contracts"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
