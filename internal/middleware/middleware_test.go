package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Middleware(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/habits", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	other := httptest.NewRequest(http.MethodGet, "/api/habits", nil)
	other.RemoteAddr = "10.0.0.2:5555"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiterPrune(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.getLimiter("10.0.0.1")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.getLimiter("10.0.0.2")

	rl.prune(3 * time.Minute)

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
	assert.Equal(t, "1.2.3.4", clientIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "5.6.7.8:1234"
	assert.Equal(t, "5.6.7.8", clientIP(req))
}

func TestMonitorUsesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Monitor)
	r.HandleFunc("/api/habits/{id:[0-9]+}", okHandler)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/api/habits/{id:[0-9]+}", "GET", "200"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/habits/7", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/api/habits/{id:[0-9]+}", "GET", "200"))
	assert.Equal(t, before+1, after)
}

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	assert.NotPanics(t, func() { Register(reg) })
}

func TestBasicAuth(t *testing.T) {
	open := BasicAuth("", "", http.HandlerFunc(okHandler))
	rr := httptest.NewRecorder()
	open.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	guarded := BasicAuth("admin", "secret", http.HandlerFunc(okHandler))
	rr = httptest.NewRecorder()
	guarded.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("admin", "secret")
	rr = httptest.NewRecorder()
	guarded.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	h := RequestLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/habits", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), "status=201")

	req := httptest.NewRequest(http.MethodGet, "/api/habits", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc", rr.Header().Get(RequestIDHeader))
}
