package chiapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mikey/email-classifier/internal/adapters/api"
	"github.com/mikey/email-classifier/internal/adapters/api/apitest"
	"github.com/mikey/email-classifier/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer() *Server {
	handlers := api.NewHandlers(apitest.NewService(), apitest.Meta, zap.NewNop())
	return NewServer(handlers, zap.NewNop(), config.HTTPConfig{
		Framework:       "chi",
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		AllowedOrigins:  []string{"*"},
	})
}

func TestChiConformance(t *testing.T) {
	apitest.Run(t, newTestServer().Handler())
}

func TestChiUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChiWrongMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/batch", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestChiStartStop(t *testing.T) {
	srv := newTestServer()
	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop() })

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy","service":"email-verification-api"}`, string(body))

	require.NoError(t, srv.Stop())
}

func TestChiStopBeforeStart(t *testing.T) {
	assert.NoError(t, newTestServer().Stop())
}
