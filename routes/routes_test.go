package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/rag-gateway/app"
	"github.com/upb/rag-gateway/config"
	"go.uber.org/zap/zaptest"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.New()
	require.NoError(t, err)
	deps := app.NewDependencies(cfg, zaptest.NewLogger(t))
	return SetupRoutes(deps)
}

func TestSetupRoutes(t *testing.T) {
	router := testRouter(t)

	t.Run("health endpoint is registered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("unknown path returns structured 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"endpoint not found"}`, w.Body.String())
	})

	t.Run("search only accepts POST", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("ask rejects malformed bodies before touching upstreams", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ask", nil)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
