package chat

import (
	"net/http"
	"strings"

	"perform-assistant/internal/interaction"
	"perform-assistant/internal/logger"
	"perform-assistant/internal/middleware"

	"github.com/gin-gonic/gin"
)

const (
	msgNotInitialized = "Perform Assistant is not initialized. Please check your environment variables and restart the app."
	msgUploadDisabled = "File upload is currently disabled."
)

// Handler serves the chat API for authenticated users.
type Handler struct {
	assistant *Assistant // nil when no LLM is configured
	recorder  interaction.Recorder
}

func NewHandler(assistant *Assistant, recorder interaction.Recorder) *Handler {
	return &Handler{assistant: assistant, recorder: recorder}
}

// RegisterRoutes mounts the chat routes on a group that already requires
// authentication.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/me", h.me)
	api.POST("/chat", h.chat)
}

type chatRequest struct {
	Message     string   `json:"message"`
	Attachments []string `json:"attachments"`
}

type chatResponse struct {
	Content string `json:"content"`
}

func (h *Handler) me(c *gin.Context) {
	user, ok := middleware.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if h.assistant == nil {
		c.JSON(http.StatusOK, chatResponse{Content: msgNotInitialized})
		return
	}

	if len(req.Attachments) > 0 {
		c.JSON(http.StatusOK, chatResponse{Content: msgUploadDisabled})
		return
	}

	var userID string
	if user, ok := middleware.UserFromContext(c.Request.Context()); ok {
		userID = user.Identifier
	}

	entry := interaction.NewEntry(userID, c.ClientIP(), req.Message)
	if err := h.recorder.Record(c.Request.Context(), entry); err != nil {
		logger.Error("failed to record interaction", map[string]any{
			"error": err.Error(),
		})
	}

	c.JSON(http.StatusOK, chatResponse{
		Content: h.assistant.Respond(c.Request.Context(), req.Message),
	})
}
