// Package api wires the HTTP surface of the SmartPick backend
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	chat_module "github.com/smartpick/smartpick/internal/api/modules/chat"
	health_module "github.com/smartpick/smartpick/internal/api/modules/health"
	"github.com/smartpick/smartpick/internal/orchestrator"
	"github.com/smartpick/smartpick/pkg/session"
	"github.com/smartpick/smartpick/pkg/utils"
)

// NewEngine builds the gin engine with all routes registered
func NewEngine(cfg *utils.Config, orch *orchestrator.Orchestrator, store *session.Store) *gin.Engine {
	engine := gin.Default()

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)

	chat_module.Init(orch, store)
	chat_module.RegisterRoutes(baseGroup, cfg)

	return engine
}

// Start builds the engine and serves it on the configured port
func Start(cfg *utils.Config, orch *orchestrator.Orchestrator, store *session.Store) error {
	port := cfg.GetWithDefault("API_PORT", "8080")
	return NewEngine(cfg, orch, store).Run(":" + port)
}
