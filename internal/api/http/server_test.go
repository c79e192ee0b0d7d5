package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
)

type pingController struct{}

func (pingController) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/v1/sessions/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func newTestServer() *Server {
	s := NewServer(ServerConfig{Host: "127.0.0.1", Port: "0", CORSOrigins: " http://localhost:5173 , ,http://example.test"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.AddController(pingController{})
	return s
}

func TestServerConfig_Origins(t *testing.T) {
	cfg := ServerConfig{CORSOrigins: " http://localhost:5173 , ,http://example.test"}
	assert.Equal(t, []string{"http://localhost:5173", "http://example.test"}, cfg.origins())
	assert.Equal(t, "127.0.0.1:8080", ServerConfig{Host: "127.0.0.1", Port: "8080"}.Addr())
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestServer().Router()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sessions/s1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CountsRequestsByRoute(t *testing.T) {
	r := newTestServer().Router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/abc", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `keypad_http_requests_total{method="GET",route="/api/v1/sessions/:id",status="200"}`)
	assert.NotContains(t, body, "abc")
}
