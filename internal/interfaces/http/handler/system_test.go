package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping() error { return s.err }

func TestHealth(t *testing.T) {
	t.Run("healthy with database", func(t *testing.T) {
		h := NewSystemHandler(stubPinger{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/healthz", nil)

		h.Health(c)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data HealthResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Data.Status)
		assert.Equal(t, "ok", resp.Data.Database)
	})

	t.Run("degraded when database unreachable", func(t *testing.T) {
		h := NewSystemHandler(stubPinger{err: errors.New("connection refused")})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/healthz", nil)

		h.Health(c)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp struct {
			Data HealthResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "degraded", resp.Data.Status)
		assert.Equal(t, "unreachable", resp.Data.Database)
	})

	t.Run("no database wired", func(t *testing.T) {
		h := NewSystemHandler(nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/healthz", nil)

		h.Health(c)

		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetSystemInfo(t *testing.T) {
	h := NewSystemHandler(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/system/info", nil)

	h.GetSystemInfo(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data SystemInfoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OFAuto Backend API", resp.Data.Name)
	assert.NotEmpty(t, resp.Data.GoVersion)
}
