package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/ryjtoh/mydevduck-api/internal/container"
	handlers "github.com/ryjtoh/mydevduck-api/internal/interface/http"
	"github.com/ryjtoh/mydevduck-api/internal/interface/middleware"
	"github.com/ryjtoh/mydevduck-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()

	// Public endpoints with IP-based rate limits
	limiter := middleware.RateLimit(container.GetRedis(), cfg.AuthRateLimit, cfg.AuthRateWindow, middleware.KeyByIPAndPath())

	v1 := rg.Group("/v1")
	v1.POST("/auth/register", limiter, m.Handler.Register)
	v1.POST("/auth/login", limiter, m.Handler.Login)
	v1.POST("/auth/refresh", limiter, m.Handler.Refresh)
	v1.POST("/auth/validate", m.Handler.Validate)

	// Claims-based endpoints behind the JWT middleware
	auth := v1.Group("/")
	auth.Use(middleware.JWTAuth(m.JWT))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
