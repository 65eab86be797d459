package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/v1/products", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"count":0,"items":[]}`))
	})
	r.Post("/v1/search", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	r.Post("/v1/products/filter", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"validation_failed"}`))
	})
	return r
}

func TestMiddleware_CountsByRouteAndStatus(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method string
		path   string
		route  string
		status string
	}{
		{http.MethodGet, "/v1/products?category=Books", "/v1/products", "200"},
		{http.MethodPost, "/v1/search", "/v1/search", "502"},
		{http.MethodPost, "/v1/products/filter", "/v1/products/filter", "400"},
		{http.MethodGet, "/v1/nope", unmatchedRoute, "404"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			counter := HTTPRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status)
			before := testutil.ToFloat64(counter)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, http.NoBody))

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("requests_total{%s,%s,%s} delta = %v, want 1", tc.method, tc.route, tc.status, got)
			}
		})
	}
}

func TestMiddleware_ObservesDurationAndBytes(t *testing.T) {
	r := newTestRouter()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/products", http.NoBody))

	if testutil.CollectAndCount(HTTPRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
	if testutil.CollectAndCount(HTTPResponseBytes) == 0 {
		t.Error("expected response size observations")
	}
	if got := testutil.ToFloat64(HTTPInFlight); got != 0 {
		t.Errorf("in-flight gauge = %v after request, want 0", got)
	}
}

func TestMiddleware_SkipsProbeRoutes(t *testing.T) {
	r := newTestRouter()
	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200")
	before := testutil.ToFloat64(counter)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if after := testutil.ToFloat64(counter); after != before {
		t.Errorf("/health recorded: counter moved from %v to %v", before, after)
	}
}

func TestRouteLabel(t *testing.T) {
	if got := routeLabel(nil); got != unmatchedRoute {
		t.Errorf("routeLabel(nil) = %q", got)
	}
	if got := routeLabel(chi.NewRouteContext()); got != unmatchedRoute {
		t.Errorf("routeLabel(empty) = %q", got)
	}
	rctx := chi.NewRouteContext()
	rctx.RoutePatterns = []string{"/v1/products"}
	if got := routeLabel(rctx); got != "/v1/products" {
		t.Errorf("routeLabel = %q, want /v1/products", got)
	}
}

func TestResponseRecorder_KeepsFirstStatus(t *testing.T) {
	rec := &responseRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.WriteHeader(http.StatusTeapot)
	rec.WriteHeader(http.StatusInternalServerError)
	n, err := rec.Write([]byte("abc"))
	if err != nil || n != 3 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if rec.status != http.StatusTeapot || rec.bytes != 3 {
		t.Errorf("status=%d bytes=%d, want 418 and 3", rec.status, rec.bytes)
	}
}

func TestRegisterMetrics_Idempotent(t *testing.T) {
	RegisterHTTPMetrics()
	RegisterHTTPMetrics()
	RegisterIntentMetrics()
	RegisterIntentMetrics()
	RegisterSearchMetrics()
	RegisterSearchMetrics()
}
