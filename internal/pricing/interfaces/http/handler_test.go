package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wyfcoding/blackscholes/internal/pricing/application"
	"github.com/wyfcoding/blackscholes/pkg/config"
	"github.com/wyfcoding/blackscholes/pkg/metrics"
	"github.com/wyfcoding/blackscholes/pkg/ratelimit"
)

const atmBody = `{"s":100,"k":100,"time_to_exp":1,"discount_rate":0.05,"und_rate":0.05,"vol":0.2,"call_or_put":"C"}`

func newTestRouter(deps RouterDeps) http.Handler {
	return NewRouter(deps, NewPricingHandler(application.NewPricingService(nil), 2))
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode body %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func TestHello(t *testing.T) {
	w, out := do(t, newTestRouter(RouterDeps{}), http.MethodPost, "/api/v1/pricing/hello", `{"name":"Mom"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if out["message"] != "Hello, Mom!" {
		t.Errorf("message = %v", out["message"])
	}
}

func TestComputePrice(t *testing.T) {
	w, out := do(t, newTestRouter(RouterDeps{}), http.MethodPost, "/api/v1/pricing/option/price", atmBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	price, ok := out["price"].(float64)
	if !ok || price < 10.4 || price > 10.5 {
		t.Errorf("price = %v", out["price"])
	}
	if out["display"] != "10.46" {
		t.Errorf("display = %v, want 10.46", out["display"])
	}
}

func TestComputePriceValidationFailure(t *testing.T) {
	body := strings.Replace(atmBody, `"s":100`, `"s":-5`, 1)
	w, out := do(t, newTestRouter(RouterDeps{}), http.MethodPost, "/api/v1/pricing/option/price", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	e, _ := out["error"].(map[string]any)
	if e["kind"] != "NegativeUndPrice" || e["value"] != -5.0 {
		t.Errorf("error = %v", out["error"])
	}
}

func TestComputePriceBadRequests(t *testing.T) {
	router := newTestRouter(RouterDeps{})
	tests := []struct {
		name string
		body string
	}{
		{"missing vol", `{"s":100,"k":100,"time_to_exp":1,"discount_rate":0.05,"und_rate":0.05,"call_or_put":"C"}`},
		{"bad token", strings.Replace(atmBody, `"C"`, `"X"`, 1)},
		{"malformed", `{"s":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, router, http.MethodPost, "/api/v1/pricing/option/price", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestComputePriceZeroValuesAccepted(t *testing.T) {
	body := `{"s":0,"k":0,"time_to_exp":0,"discount_rate":0,"und_rate":0,"vol":0,"call_or_put":"P"}`
	w, out := do(t, newTestRouter(RouterDeps{}), http.MethodPost, "/api/v1/pricing/option/price", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if out["non_finite"] != "NaN" {
		t.Errorf("non_finite = %v, want NaN", out["non_finite"])
	}
}

func TestHealthAndMetrics(t *testing.T) {
	m := metrics.New("pricing-http-test")
	router := newTestRouter(RouterDeps{
		ServiceName: "pricing",
		Metrics:     m,
		MetricsCfg:  config.MetricsConfig{Enabled: true, Path: "/metrics"},
	})

	w, out := do(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || out["status"] != "ok" {
		t.Fatalf("health = %d %v", w.Code, out)
	}

	do(t, router, http.MethodPost, "/api/v1/pricing/option/price", atmBody)

	w, _ = do(t, router, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "trading_pricing_http_test_http_requests_total") {
		t.Errorf("metrics output missing http counter")
	}
}

func TestRateLimitedRoutes(t *testing.T) {
	router := newTestRouter(RouterDeps{
		Limiter:   ratelimit.NewLocalRateLimiter(),
		RateLimit: config.RateLimitConfig{Enabled: true, Backend: "local", QPS: 1, Burst: 1},
	})

	if w, _ := do(t, router, http.MethodPost, "/api/v1/pricing/hello", `{"name":"a"}`); w.Code != http.StatusOK {
		t.Fatalf("first status = %d", w.Code)
	}
	if w, _ := do(t, router, http.MethodPost, "/api/v1/pricing/hello", `{"name":"b"}`); w.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", w.Code)
	}
	if w, _ := do(t, router, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health should bypass the limiter, got %d", w.Code)
	}
}
