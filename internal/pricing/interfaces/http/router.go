// Package http 定价服务的 HTTP 网关
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/blackscholes/pkg/config"
	"github.com/wyfcoding/blackscholes/pkg/metrics"
	"github.com/wyfcoding/blackscholes/pkg/middleware"
	"github.com/wyfcoding/blackscholes/pkg/ratelimit"
)

// RouterDeps 构建路由所需的依赖，Metrics 与 Limiter 可以为空
type RouterDeps struct {
	ServiceName string
	Metrics     *metrics.Metrics
	MetricsCfg  config.MetricsConfig
	Limiter     ratelimit.RateLimiter
	RateLimit   config.RateLimitConfig
}

// NewRouter 创建 gin 引擎，挂载健康检查、指标与定价路由
func NewRouter(deps RouterDeps, handler *PricingHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.GinRecoveryMiddleware(), middleware.GinLoggingMiddleware())
	if deps.Metrics != nil {
		r.Use(middleware.GinMetricsMiddleware(deps.Metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil && deps.MetricsCfg.Enabled {
		r.GET(deps.MetricsCfg.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("")
	if deps.Limiter != nil && deps.RateLimit.Enabled {
		api.Use(middleware.RateLimitMiddleware(deps.Limiter, deps.RateLimit))
	}
	handler.RegisterRoutes(api)
	return r
}
