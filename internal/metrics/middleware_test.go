package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/query", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/docs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/query", "200"))
	if rr := serve(r, http.MethodPost, "/query"); rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/query", "200")); got != before+1 {
		t.Errorf("requests_total = %v, want %v", got, before+1)
	}

	serve(r, http.MethodGet, "/docs/faq_1")
	serve(r, http.MethodGet, "/docs/faq_2")
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/docs/{id}", "404")); got < 2 {
		t.Errorf("requests_total for pattern = %v, want >= 2", got)
	}

	if testutil.CollectAndCount(HTTPRequestDuration) == 0 {
		t.Error("expected request_duration_seconds observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.WriteHeader(http.StatusOK) // ignored, first status wins
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	tests := []struct {
		path   string
		status string
	}{
		{"/stats", "503"},
		{"/boom", "500"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			serve(r, http.MethodGet, tc.path)
			if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", tc.path, tc.status)); got < 1 {
				t.Errorf("requests_total{%s,%s} = %v, want >= 1", tc.path, tc.status, got)
			}
		})
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {})

	if rr := serve(r, http.MethodGet, "/missing"); rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")); got < 1 {
		t.Errorf("requests_total for unmatched route = %v, want >= 1", got)
	}
}

func TestMiddleware_InFlight(t *testing.T) {
	var during float64
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/slow", func(w http.ResponseWriter, _ *http.Request) {
		during = testutil.ToFloat64(HTTPRequestsInFlight)
	})

	before := testutil.ToFloat64(HTTPRequestsInFlight)
	serve(r, http.MethodGet, "/slow")

	if during != before+1 {
		t.Errorf("in flight during request = %v, want %v", during, before+1)
	}
	if after := testutil.ToFloat64(HTTPRequestsInFlight); after != before {
		t.Errorf("in flight after request = %v, want %v", after, before)
	}
}
