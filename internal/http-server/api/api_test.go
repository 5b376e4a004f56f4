package api

import (
	"SchoolQL/impl/core"
	"SchoolQL/internal/config"
	repository "SchoolQL/internal/database"
	"SchoolQL/internal/lib/metrics"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, key string) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	conf := &config.Config{}
	conf.Listen.Timeout = 5
	conf.Metrics.Enabled = true

	m := metrics.New()
	c := core.New(log)
	c.SetRepository(repository.NewInstrumented(repository.NewMemory(), m))
	c.SetMetrics(m)
	c.SetAuthKey(key)

	return NewRouter(conf, log, c, nil, m)
}

func serve(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutesWithoutAuth(t *testing.T) {
	h := newTestRouter(t, "")

	rec := serve(h, http.MethodPost, "/api/v1/schools", `{"school_name": "Codavatar Academy", "school_population": 10}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(h, http.MethodGet, "/api/v1/schools", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Codavatar Academy")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = serve(h, http.MethodPost, "/api/v1/operation", `{"operation": "delete", "args": {"id": 1}}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"INACTIVE"`)

	rec = serve(h, http.MethodPost, "/graphql", `{"query": "{ getSchoolById(id: 1) { status } }"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data": {"getSchoolById": {"status": "INACTIVE"}}}`, rec.Body.String())
}

func TestRoutesRequireKey(t *testing.T) {
	h := newTestRouter(t, "secret-key")

	rec := serve(h, http.MethodGet, "/api/v1/schools", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, http.MethodGet, "/api/v1/schools", "", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, http.MethodPost, "/graphql", `{"query": "{ allSchools { id } }"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, http.MethodGet, "/api/v1/schools", "", "secret-key")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsAndFallbacks(t *testing.T) {
	h := newTestRouter(t, "")
	serve(h, http.MethodGet, "/api/v1/schools/1", "", "")

	rec := serve(h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "schoolql_operations_total")
	assert.Contains(t, rec.Body.String(), `result="not_found"`)

	rec = serve(h, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, http.MethodPut, "/api/v1/schools/1", "{}", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFeedTicket(t *testing.T) {
	h := newTestRouter(t, "secret-key")

	rec := serve(h, http.MethodGet, "/api/v1/feed/ticket", "", "secret-key")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"url":"/ws/schools?token=feed.`)

	rec = serve(h, http.MethodGet, "/api/v1/feed/ticket", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewStopsOnContextCancel(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	conf := &config.Config{}
	conf.Listen.BindIP = "127.0.0.1"
	conf.Listen.Port = "0"

	c := core.New(log)
	c.SetRepository(repository.NewMemory())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(ctx, conf, log, c, nil, nil)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
