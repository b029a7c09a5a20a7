package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/wyfcoding/blackscholes/pkg/config"
	"github.com/wyfcoding/blackscholes/pkg/logger"
	"github.com/wyfcoding/blackscholes/pkg/metrics"
	"github.com/wyfcoding/blackscholes/pkg/ratelimit"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var helloInfo = &grpc.UnaryServerInfo{FullMethod: "/blackscholes.pricing.v1.PricingService/Hello"}

func TestGRPCRecoveryInterceptor(t *testing.T) {
	interceptor := GRPCRecoveryInterceptor()
	_, err := interceptor(context.Background(), nil, helloInfo, func(ctx context.Context, req any) (any, error) {
		panic("boom")
	})
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestGRPCLoggingInterceptorInjectsIDs(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-trace-id", "trace-42"))
	var seenTrace, seenRequest string
	_, err := GRPCLoggingInterceptor()(ctx, nil, helloInfo, func(ctx context.Context, req any) (any, error) {
		seenTrace, seenRequest = logger.TraceID(ctx), logger.RequestID(ctx)
		return "ok", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if seenTrace != "trace-42" {
		t.Fatalf("trace id %q", seenTrace)
	}
	if seenRequest == "" {
		t.Fatal("request id not generated")
	}
}

func TestGRPCMetricsInterceptor(t *testing.T) {
	m := metrics.New("pricing")
	interceptor := GRPCMetricsInterceptor(m)
	_, _ = interceptor(context.Background(), nil, helloInfo, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.InvalidArgument, "bad")
	})
	if got := testutil.ToFloat64(m.GRPCRequestsTotal.WithLabelValues(helloInfo.FullMethod, "InvalidArgument")); got != 1 {
		t.Fatalf("counter = %v", got)
	}
}

func TestGRPCRateLimitInterceptor(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Backend: "local", QPS: 1, Burst: 1}
	interceptor := GRPCRateLimitInterceptor(ratelimit.NewLocalRateLimiter(), cfg)
	ok := func(ctx context.Context, req any) (any, error) { return "ok", nil }

	if _, err := interceptor(context.Background(), nil, helloInfo, ok); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := interceptor(context.Background(), nil, helloInfo, ok); status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("second call should be limited, got %v", err)
	}
}

func TestGinMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New("pricing")
	cfg := config.RateLimitConfig{Enabled: true, Backend: "local", QPS: 1, Burst: 1}

	r := gin.New()
	r.Use(GinRecoveryMiddleware(), GinLoggingMiddleware(), GinMetricsMiddleware(m), RateLimitMiddleware(ratelimit.NewLocalRateLimiter(), cfg))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if rec.Code != http.StatusOK || rec.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("ok: code=%d headers=%v", rec.Code, rec.Header())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/ok", "429")); got != 1 {
		t.Fatalf("429 counter = %v", got)
	}
}

func TestGinRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinRecoveryMiddleware(), GinLoggingMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
