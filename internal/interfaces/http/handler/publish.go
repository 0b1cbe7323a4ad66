package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appplatform "github.com/ofauto/backend/internal/application/platform"
)

// PublishHandler handles content publishing endpoints
type PublishHandler struct {
	BaseHandler
	orchestration *appplatform.OrchestrationService
}

// NewPublishHandler creates a new PublishHandler
func NewPublishHandler(orchestration *appplatform.OrchestrationService) *PublishHandler {
	return &PublishHandler{orchestration: orchestration}
}

// PublishBody is the shared content payload
type PublishBody struct {
	Body        string     `json:"body"`
	MediaRefs   []string   `json:"media_refs"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// FanOutRequest is the payload for publishing to several accounts
type FanOutRequest struct {
	PublishBody
	AccountIDs []uuid.UUID `json:"account_ids" binding:"required"`
	Policy     string      `json:"policy"`
}

// PublishToAccount publishes content through a single account
func (h *PublishHandler) PublishToAccount(c *gin.Context) {
	id, ok := h.publishAccountID(c)
	if !ok {
		return
	}

	var req PublishBody
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orchestration.PublishToAccount(c.Request.Context(), id, appplatform.PublishRequest{
		Body:        req.Body,
		MediaRefs:   req.MediaRefs,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		h.PlatformError(c, err)
		return
	}
	h.Success(c, result)
}

// Publish fans content out to several accounts
func (h *PublishHandler) Publish(c *gin.Context) {
	var req FanOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orchestration.PublishToAccounts(c.Request.Context(), req.AccountIDs, appplatform.PublishRequest{
		Body:        req.Body,
		MediaRefs:   req.MediaRefs,
		ScheduledAt: req.ScheduledAt,
	}, appplatform.AggregationPolicy(req.Policy))
	if err != nil {
		h.PlatformError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *PublishHandler) publishAccountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid account ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers publishing routes on the API group
func (h *PublishHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/publish", h.Publish)
	rg.POST("/accounts/:id/publish", h.PublishToAccount)
}
