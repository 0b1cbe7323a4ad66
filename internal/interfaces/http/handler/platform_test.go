package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/interfaces/http/dto"
)

func platformTestRouter() *gin.Engine {
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewPlatformHandler().RegisterRoutes(api)
	return engine
}

func TestListPlatforms(t *testing.T) {
	engine := platformTestRouter()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/platforms", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    []PlatformResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, len(platform.AllKinds()))

	byKind := make(map[platform.Kind]PlatformResponse, len(resp.Data))
	for _, p := range resp.Data {
		byKind[p.Kind] = p
	}

	assert.True(t, byKind[platform.KindOnlyFans].Capabilities.SupportsDMs)
	assert.True(t, byKind[platform.KindFansly].Capabilities.SupportsDMs)
	assert.False(t, byKind[platform.KindPatreon].Capabilities.SupportsDMs)
	assert.False(t, byKind[platform.KindKoFi].Capabilities.SupportsDMs)
	assert.Equal(t, platform.AutomationNone, byKind[platform.KindKoFi].Capabilities.AutomationLevel)
	assert.Equal(t, platform.AutomationFull, byKind[platform.KindGumroad].Capabilities.AutomationLevel)
}

func TestGetPlatform(t *testing.T) {
	engine := platformTestRouter()

	t.Run("known kind", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/platforms/PATREON", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data PlatformResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, platform.KindPatreon, resp.Data.Kind)
		assert.Contains(t, resp.Data.Capabilities.SupportedFeatures, platform.FeatureComments)
	})

	t.Run("unknown kind", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/platforms/MYSPACE", nil))

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}
