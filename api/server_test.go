package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"presskit/config"
	"presskit/gateway"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, backendURL string, d Deps) *gin.Engine {
	t.Helper()
	cfg := config.Default()
	cfg.BackendBase = backendURL
	d.Gateway = gateway.New(cfg, nil)
	return NewRouter(d)
}

func postProcess(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body must be JSON: %q", w.Body.String())
	return out
}

func TestProcessRelaysBackendResponse(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true,"press_release":"Acme launches widget","title_options":["Acme Launches Widget","Widget Debut"]}`))
	}))
	defer backend.Close()

	w := postProcess(newRouter(t, backend.URL, Deps{}), `{"url":"https://youtube.com/watch?v=abc","user_prompt":""}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `{"ok":true,"press_release":"Acme launches widget","title_options":["Acme Launches Widget","Widget Debut"]}`, w.Body.String())
}

func TestProcessRelaysNonJSONAsEmptyObject(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer backend.Close()

	w := postProcess(newRouter(t, backend.URL, Deps{}), `{"url":"x"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestProcessUnreachableBackend(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()

	w := postProcess(newRouter(t, url, Deps{}), `{"url":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env["ok"])
	msg, _ := env["error"].(string)
	assert.NotEmpty(t, msg)
}

func TestProcessBodylessBackendStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer backend.Close()

	w := postProcess(newRouter(t, backend.URL, Deps{}), `{"url":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env["ok"])
	assert.Contains(t, env["error"], "204")
}

func TestProcessInvalidInboundJSON(t *testing.T) {
	w := postProcess(newRouter(t, "http://127.0.0.1:1", Deps{}), `{"url":`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env["ok"])
	assert.Contains(t, env["error"], "invalid JSON body")
}

func TestRespondProxyErrorFallback(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondProxyError(c, errors.New(""))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Proxy error"}`, w.Body.String())
}

func TestHealthWithoutProber(t *testing.T) {
	r := newRouter(t, "http://127.0.0.1:1", Deps{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthWithProber(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	defer backend.Close()

	prober := gateway.NewProber(backend.URL, nil)
	prober.Check(context.Background())

	r := newRouter(t, backend.URL, Deps{Prober: prober})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	backendHealth, ok := env["backend"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, backendHealth["reachable"])
}

type staticCounters struct {
	counters map[string]int64
	err      error
}

func (s staticCounters) Counters(context.Context) (map[string]int64, error) {
	return s.counters, s.err
}

func TestStats(t *testing.T) {
	tests := []struct {
		name     string
		src      CounterSource
		wantCode int
		wantBody string
	}{
		{name: "no source", src: nil, wantCode: http.StatusOK, wantBody: `{}`},
		{name: "counters", src: staticCounters{counters: map[string]int64{"total": 3, "status_200": 2}}, wantCode: http.StatusOK, wantBody: `{"total":3,"status_200":2}`},
		{name: "store down", src: staticCounters{err: errors.New("redis down")}, wantCode: http.StatusServiceUnavailable, wantBody: `{"error":"redis down"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(t, "http://127.0.0.1:1", Deps{Stats: tt.src})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
