package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New("articlehub")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/articles/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	for _, path := range []string{"/articles/1", "/articles/2", "/users"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/articles/{id}", "404")); got != 2 {
		t.Errorf("article requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/users", "200")); got != 1 {
		t.Errorf("user requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.inflight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
}

func TestHandler_Exposition(t *testing.T) {
	m := New("articlehub")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/users", func(w http.ResponseWriter, r *http.Request) {})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`articlehub_http_requests_total{method="GET",route="/users",status="200"} 1`,
		"articlehub_http_request_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	// Registering twice must not panic with duplicate collectors.
	a, b := New("articlehub"), New("articlehub")
	if a.Registry() == b.Registry() {
		t.Error("expected separate registries")
	}
}
