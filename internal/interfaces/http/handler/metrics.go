package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appplatform "github.com/ofauto/backend/internal/application/platform"
	"github.com/ofauto/backend/internal/domain/platform"
)

// MetricsHandler handles engagement metrics and analytics endpoints
type MetricsHandler struct {
	BaseHandler
	orchestration *appplatform.OrchestrationService
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(orchestration *appplatform.OrchestrationService) *MetricsHandler {
	return &MetricsHandler{orchestration: orchestration}
}

// SyncMetrics refreshes engagement snapshots for the account's published
// content
func (h *MetricsHandler) SyncMetrics(c *gin.Context) {
	id, ok := h.metricsAccountID(c)
	if !ok {
		return
	}

	result, err := h.orchestration.SyncMetrics(c.Request.Context(), id)
	if err != nil {
		h.PlatformError(c, err)
		return
	}
	h.Success(c, result)
}

// GetAnalytics returns account-level analytics for a date range given as
// start and end query parameters (RFC 3339)
func (h *MetricsHandler) GetAnalytics(c *gin.Context) {
	id, ok := h.metricsAccountID(c)
	if !ok {
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		h.BadRequest(c, "invalid start time")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		h.BadRequest(c, "invalid end time")
		return
	}

	analytics, err := h.orchestration.GetAccountAnalytics(c.Request.Context(), id, platform.DateRange{
		Start: start,
		End:   end,
	})
	if err != nil {
		h.PlatformError(c, err)
		return
	}
	h.Success(c, analytics)
}

// GetStatus reports the account's platform API health
func (h *MetricsHandler) GetStatus(c *gin.Context) {
	id, ok := h.metricsAccountID(c)
	if !ok {
		return
	}

	status, err := h.orchestration.CheckAccountStatus(c.Request.Context(), id)
	if err != nil {
		h.PlatformError(c, err)
		return
	}
	h.Success(c, status)
}

func (h *MetricsHandler) metricsAccountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid account ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers metrics routes on the API group
func (h *MetricsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("/:id/metrics/sync", h.SyncMetrics)
		accounts.GET("/:id/analytics", h.GetAnalytics)
		accounts.GET("/:id/status", h.GetStatus)
	}
}
