package echoapi

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
		Framework:       "echo",
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		AllowedOrigins:  []string{"*"},
	})
}

func TestEchoConformance(t *testing.T) {
	apitest.Run(t, newTestServer().Handler())
}

func TestEchoUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEchoStartStop(t *testing.T) {
	srv := newTestServer()
	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop() })

	resp, err := http.Get("http://" + srv.Addr() + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"total_disposable_domains":12`)

	require.NoError(t, srv.Stop())
}
