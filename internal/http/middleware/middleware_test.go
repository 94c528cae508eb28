package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndLogs(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	rr := testutil.Serve(handler, http.MethodGet, "/teams/BOS", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if rec.ProviderCalls("http") != 0 {
		t.Fatalf("expected provider metrics untouched")
	}
	out := buf.String()
	if !strings.Contains(out, "request complete") || !strings.Contains(out, "status_code=418") {
		t.Fatalf("expected completion log with status, got %s", out)
	}
}

func TestLoggingMiddlewareKeepsValidIncomingRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected incoming id, got %s", got)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %s", got)
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenMissing(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := testutil.Serve(LoggingMiddleware(logger, metrics.NewRecorder(), next), http.MethodGet, "/teams?foo=bar", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("X-Request-ID"); got == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func TestLoggingMiddlewareUsesForwardedFor(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	if !strings.Contains(buf.String(), "client_ip=198.51.100.1") {
		t.Fatalf("expected forwarded client ip in logs, got %s", buf.String())
	}
}

func TestLoggingMiddlewareDefaultsLogger(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	rr := testutil.Serve(LoggingMiddleware(nil, nil, next), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestResponseWriterDefaultsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	if w.status != 0 {
		t.Fatalf("expected zero status before write, got %d", w.status)
	}
	w.WriteHeader(http.StatusAccepted)
	if w.status != http.StatusAccepted {
		t.Fatalf("expected status set to 202, got %d", w.status)
	}
}

func TestRoutePatternUsesMuxTemplate(t *testing.T) {
	var got string
	r := mux.NewRouter()
	r.HandleFunc("/teams/{short}", func(w http.ResponseWriter, req *http.Request) {
		got = routePattern(req)
	})

	testutil.Serve(r, http.MethodGet, "/teams/BOS", nil)
	if got != "/teams/{short}" {
		t.Fatalf("expected route template, got %s", got)
	}

	if pattern := routePattern(httptest.NewRequest(http.MethodGet, "/nowhere", nil)); pattern != "unmatched" {
		t.Fatalf("expected unmatched label outside a router, got %s", pattern)
	}
}

func TestRequireBearer(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name     string
		token    string
		header   string
		expected int
	}{
		{name: "missing header", token: "secret", expected: http.StatusUnauthorized},
		{name: "wrong token", token: "secret", header: "wrong", expected: http.StatusUnauthorized},
		{name: "valid token", token: "secret", header: "secret", expected: http.StatusNoContent},
		{name: "no configured token", token: "", header: "", expected: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		handler := RequireBearer(tc.token, logger)(next)
		rr := testutil.ServeRequest(handler, testutil.BearerRequest(http.MethodPost, "/admin/teams/BOS/export", tc.header))
		if rr.Code != tc.expected {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.expected, rr.Code)
		}
		if tc.expected == http.StatusUnauthorized && rr.Header().Get("WWW-Authenticate") == "" {
			t.Fatalf("%s: expected WWW-Authenticate header", tc.name)
		}
	}
}

func TestRequireBearerIncludesRequestID(t *testing.T) {
	handler := LoggingMiddleware(testutil.NewTestLogger(), nil, RequireBearer("secret", nil)(http.NotFoundHandler()))
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("X-Request-ID", "req-1")

	rr := testutil.ServeRequest(handler, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	if !strings.Contains(rr.Body.String(), "req-1") {
		t.Fatalf("expected request id in body, got %s", rr.Body.String())
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}

	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
	//nolint:staticcheck // nil context is handled explicitly
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/teams/BOS", nil)
		handler.ServeHTTP(rr, req)
	}
}
