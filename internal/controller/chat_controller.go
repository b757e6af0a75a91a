package controller

import (
	"log/slog"
	"net/http"
	"strings"

	"agriintel/internal/assistant"

	"github.com/gin-gonic/gin"
)

// ChatController handles conversational assistant HTTP requests
type ChatController struct {
	assistant *assistant.Assistant
	logger    *slog.Logger
}

// NewChatController creates a new chat controller
func NewChatController(a *assistant.Assistant, logger *slog.Logger) *ChatController {
	return &ChatController{assistant: a, logger: logger}
}

// chatRequest is the submission body
type chatRequest struct {
	Text string `json:"text"`
}

// GetTranscript handles GET /v1/chat
func (c *ChatController) GetTranscript(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"messages":  c.assistant.Transcript(),
		"composing": c.assistant.Composing(),
	})
}

// Submit handles POST /v1/chat
func (c *ChatController) Submit(ctx *gin.Context) {
	var req chatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	// Empty or whitespace-only submissions are dropped without a turn.
	if strings.TrimSpace(req.Text) == "" {
		ctx.Status(http.StatusNoContent)
		return
	}

	if !c.assistant.Submit(req.Text) {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Assistant busy",
			"message": "too many pending messages, retry shortly",
		})
		return
	}

	ctx.JSON(http.StatusAccepted, gin.H{"composing": true})
}
