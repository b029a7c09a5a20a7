package grpc

import (
	v1 "github.com/wyfcoding/blackscholes/go-api/pricing/v1"
	"github.com/wyfcoding/blackscholes/pkg/config"
	"github.com/wyfcoding/blackscholes/pkg/metrics"
	"github.com/wyfcoding/blackscholes/pkg/middleware"
	"github.com/wyfcoding/blackscholes/pkg/ratelimit"
	"google.golang.org/grpc"
)

// ServerDeps 构建 gRPC 服务器所需的依赖，Metrics 与 Limiter 可以为空
type ServerDeps struct {
	Config    config.GRPCConfig
	RateLimit config.RateLimitConfig
	Metrics   *metrics.Metrics
	Limiter   ratelimit.RateLimiter
}

// NewServer 创建 gRPC 服务器并注册定价服务
// 拦截器顺序：recover、日志、指标、限流
func NewServer(deps ServerDeps, handler *GRPCHandler, extra ...grpc.ServerOption) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{
		middleware.GRPCRecoveryInterceptor(),
		middleware.GRPCLoggingInterceptor(),
	}
	if deps.Metrics != nil {
		interceptors = append(interceptors, middleware.GRPCMetricsInterceptor(deps.Metrics))
	}
	if deps.Limiter != nil && deps.RateLimit.Enabled {
		interceptors = append(interceptors, middleware.GRPCRateLimitInterceptor(deps.Limiter, deps.RateLimit))
	}

	opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}
	if deps.Config.MaxConcurrentStreams > 0 {
		opts = append(opts, grpc.MaxConcurrentStreams(deps.Config.MaxConcurrentStreams))
	}
	opts = append(opts, extra...)

	s := grpc.NewServer(opts...)
	v1.RegisterPricingServiceServer(s, handler)
	return s
}
