package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appplatform "github.com/ofauto/backend/internal/application/platform"
)

// MessageHandler handles direct message endpoints
type MessageHandler struct {
	BaseHandler
	orchestration *appplatform.OrchestrationService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(orchestration *appplatform.OrchestrationService) *MessageHandler {
	return &MessageHandler{orchestration: orchestration}
}

// SendMessageRequest is the payload for sending a direct message
type SendMessageRequest struct {
	RecipientID   string `json:"recipient_id" binding:"required"`
	Body          string `json:"body" binding:"required"`
	AttachmentURL string `json:"attachment_url"`
	AIGenerated   bool   `json:"ai_generated"`
	Prompt        string `json:"prompt"`
}

// SyncMessages pulls one page of direct messages from the platform and
// reconciles it into local storage
func (h *MessageHandler) SyncMessages(c *gin.Context) {
	id, ok := h.messageAccountID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}
	cursor := c.Query("cursor")

	result, err := h.orchestration.SyncDirectMessages(c.Request.Context(), id, limit, cursor)
	if err != nil {
		h.PlatformError(c, err)
		return
	}
	h.Success(c, result)
}

// SendMessage sends a direct message through the account's platform
func (h *MessageHandler) SendMessage(c *gin.Context) {
	id, ok := h.messageAccountID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orchestration.SendDirectMessage(c.Request.Context(), id, appplatform.SendMessageRequest{
		RecipientID:   req.RecipientID,
		Body:          req.Body,
		AttachmentURL: req.AttachmentURL,
		AIGenerated:   req.AIGenerated,
		Prompt:        req.Prompt,
	})
	if err != nil {
		h.PlatformError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *MessageHandler) messageAccountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid account ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers message routes on the API group
func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("/:id/messages/sync", h.SyncMessages)
		accounts.POST("/:id/messages", h.SendMessage)
	}
}
