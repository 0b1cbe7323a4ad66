package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ofauto/backend/internal/domain/platform"
)

// PlatformHandler exposes platform capability metadata
type PlatformHandler struct {
	BaseHandler
}

// NewPlatformHandler creates a new PlatformHandler
func NewPlatformHandler() *PlatformHandler {
	return &PlatformHandler{}
}

// PlatformResponse describes one supported platform
type PlatformResponse struct {
	Kind         platform.Kind               `json:"kind"`
	DisplayName  string                      `json:"display_name"`
	Capabilities platform.CapabilityMetadata `json:"capabilities"`
}

// ListPlatforms returns every supported platform kind with its
// capability metadata
func (h *PlatformHandler) ListPlatforms(c *gin.Context) {
	kinds := platform.AllKinds()
	out := make([]PlatformResponse, 0, len(kinds))
	for _, kind := range kinds {
		meta, ok := platform.Capabilities(kind)
		if !ok {
			continue
		}
		out = append(out, PlatformResponse{
			Kind:         kind,
			DisplayName:  kind.DisplayName(),
			Capabilities: meta,
		})
	}
	h.Success(c, out)
}

// GetPlatform returns capability metadata for one platform kind
func (h *PlatformHandler) GetPlatform(c *gin.Context) {
	kind := platform.Kind(c.Param("kind"))
	meta, ok := platform.Capabilities(kind)
	if !ok {
		h.NotFound(c, "unknown platform kind")
		return
	}
	h.Success(c, PlatformResponse{
		Kind:         kind,
		DisplayName:  kind.DisplayName(),
		Capabilities: meta,
	})
}

// RegisterRoutes registers platform metadata routes on the API group
func (h *PlatformHandler) RegisterRoutes(rg *gin.RouterGroup) {
	platforms := rg.Group("/platforms")
	{
		platforms.GET("", h.ListPlatforms)
		platforms.GET("/:kind", h.GetPlatform)
	}
}
