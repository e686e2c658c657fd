package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartpick/smartpick/pkg/sdk"
	"github.com/smartpick/smartpick/pkg/utils"
)

// RegisterRoutes registers routes for the chat module
func RegisterRoutes(g *gin.RouterGroup, cfg *utils.Config) {
	group := g.Group("/chat")

	// Require the configured API key when one is set
	if apiKey := cfg.Get("API_KEY"); apiKey != "" {
		group.Use(apiKeyMiddleware(apiKey))
	}

	group.POST("/message", PostMessage)          // Submit one utterance, run a full turn
	group.GET("/sessions", ListSessions)         // List session summaries
	group.GET("/sessions/:index", GetTranscript) // Snapshot one session's messages
	group.DELETE("/history", ClearHistory)       // Drop all stored sessions
}

// apiKeyMiddleware rejects requests without the expected X-API-KEY header
func apiKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-API-KEY") != apiKey {
			c.AbortWithStatusJSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid API key", nil).AsGinResponse())
			return
		}
		c.Next()
	}
}
