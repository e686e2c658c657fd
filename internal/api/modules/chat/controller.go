package chat

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartpick/smartpick/internal/orchestrator"
	"github.com/smartpick/smartpick/internal/render"
	"github.com/smartpick/smartpick/pkg/sdk"
	"github.com/smartpick/smartpick/pkg/session"
)

var (
	orch  *orchestrator.Orchestrator
	store *session.Store
)

// Init provides the module with its collaborators before routes are served
func Init(o *orchestrator.Orchestrator, s *session.Store) {
	orch = o
	store = s
}

// PostMessage handles POST requests that submit one user utterance
func PostMessage(c *gin.Context) {
	// Parse request body
	var req sdk.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Message text is required", nil).AsGinResponse())
		return
	}

	result, ok := orch.Submit(c.Request.Context(), req.Text)
	if !ok {
		// The single-flight guard dropped the submission
		c.JSON(sdk.NewErrorResponse(http.StatusConflict, "Another message is being processed", nil).AsGinResponse())
		return
	}

	html, err := render.HTML(result.Reply)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to render reply", err.Error()).AsGinResponse())
		return
	}

	resp := sdk.PostMessageResponse{
		Reply:     result.Reply,
		HTML:      html,
		SessionID: result.SessionID,
		Failed:    result.Failed,
	}
	c.JSON(sdk.NewSuccessResponse("Message processed successfully", resp).AsGinResponse())
}

// ListSessions handles GET requests for the session history listing
func ListSessions(c *gin.Context) {
	summaries := store.Sessions()

	out := make([]sdk.SessionSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, sdk.SessionSummary{
			ID:        s.ID,
			Timestamp: s.CreatedAt,
			Turns:     s.Turns,
		})
	}

	c.JSON(sdk.NewSuccessResponse("Sessions retrieved successfully", out).AsGinResponse())
}

// GetTranscript handles GET requests for one session's message snapshot
func GetTranscript(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid session index", err.Error()).AsGinResponse())
		return
	}

	messages := orch.SelectForViewing(index)
	if messages == nil {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", nil).AsGinResponse())
		return
	}

	out := make([]sdk.TranscriptMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, sdk.TranscriptMessage{
			Text:   m.Text,
			Sender: string(m.Sender),
		})
	}

	c.JSON(sdk.NewSuccessResponse("Transcript retrieved successfully", out).AsGinResponse())
}

// ClearHistory handles DELETE requests that drop all stored sessions
func ClearHistory(c *gin.Context) {
	if !orch.ClearHistory() {
		c.JSON(sdk.NewErrorResponse(http.StatusConflict, "Cannot clear history while a message is being processed", nil).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse[any]("Chat history cleared", nil).AsGinResponse())
}
