package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"github.com/wyfcoding/blackscholes/internal/pricing/application"
	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
	"github.com/wyfcoding/blackscholes/internal/pricing/infrastructure/messaging"
	grpchandler "github.com/wyfcoding/blackscholes/internal/pricing/interfaces/grpc"
	httphandler "github.com/wyfcoding/blackscholes/internal/pricing/interfaces/http"
	"github.com/wyfcoding/blackscholes/pkg/cache"
	"github.com/wyfcoding/blackscholes/pkg/config"
	"github.com/wyfcoding/blackscholes/pkg/logger"
	"github.com/wyfcoding/blackscholes/pkg/metrics"
	"github.com/wyfcoding/blackscholes/pkg/mq"
	"github.com/wyfcoding/blackscholes/pkg/ratelimit"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const BootstrapName = "pricing"

// AppContext 进程内共享的依赖
type AppContext struct {
	Config     *config.Config
	Metrics    *metrics.Metrics
	AppService *application.PricingService
	Limiter    ratelimit.RateLimiter
	cleanups   []func() error
}

func main() {
	configPath := pflag.StringP("config", "f", "configs/pricing.toml", "path to the TOML config file")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(loggerConfig(cfg.Logger)); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Server.RunFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Server.RunFor)
		defer cancel()
	}

	app, err := initService(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	grpcLis, err := net.Listen("tcp", cfg.GRPC.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GRPC.Addr(), err)
	}
	var httpLis net.Listener
	if cfg.HTTP.Enabled {
		httpLis, err = net.Listen("tcp", cfg.HTTP.Addr())
		if err != nil {
			_ = grpcLis.Close()
			return fmt.Errorf("failed to listen on %s: %w", cfg.HTTP.Addr(), err)
		}
	}
	return app.serve(ctx, grpcLis, httpLis)
}

func loggerConfig(c config.LoggerConfig) logger.Config {
	return logger.Config{
		Level:      c.Level,
		Format:     c.Format,
		Output:     c.Output,
		FilePath:   c.FilePath,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
		WithCaller: c.WithCaller,
	}
}

func initService(cfg *config.Config) (*AppContext, error) {
	ctx := context.Background()
	logger.Info(ctx, "initializing service dependencies...", "service", cfg.ServiceName, "version", cfg.Version)

	cdf, err := domain.CDFByName(cfg.Pricing.CDF)
	if err != nil {
		return nil, err
	}

	app := &AppContext{
		Config:  cfg,
		Metrics: metrics.New(cfg.ServiceName),
	}
	opts := []application.Option{application.WithOutcomeRecorder(app.Metrics)}

	if cfg.RateLimit.Enabled {
		switch cfg.RateLimit.Backend {
		case "redis":
			redisCache, err := cache.NewRedisCache(cfg.Redis)
			if err != nil {
				return nil, err
			}
			app.cleanups = append(app.cleanups, redisCache.Close)
			app.Limiter = ratelimit.NewRedisRateLimiter(redisCache.GetClient())
		default:
			app.Limiter = ratelimit.NewLocalRateLimiter()
		}
	}

	if cfg.Kafka.Enabled {
		producer, err := mq.NewProducer(cfg.Kafka)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.cleanups = append(app.cleanups, producer.Close)
		opts = append(opts, application.WithEventPublisher(messaging.NewKafkaEventPublisher(producer, cfg.Kafka.AuditTopic)))
	}

	app.AppService = application.NewPricingService(domain.NewPricer(domain.WithCDF(cdf)), opts...)
	return app, nil
}

// Close 按注册的逆序释放资源
func (a *AppContext) Close() {
	logger.Info(context.Background(), "cleaning up resources...")
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if err := a.cleanups[i](); err != nil {
			logger.Warn(context.Background(), "cleanup failed", "error", err)
		}
	}
	a.cleanups = nil
}

func registerGRPC(a *AppContext) *grpc.Server {
	s := grpchandler.NewServer(grpchandler.ServerDeps{
		Config:    a.Config.GRPC,
		RateLimit: a.Config.RateLimit,
		Metrics:   a.Metrics,
		Limiter:   a.Limiter,
	}, grpchandler.NewGRPCHandler(a.AppService))
	logger.Info(context.Background(), "gRPC server registered", "service", BootstrapName)
	return s
}

func registerGin(a *AppContext) *gin.Engine {
	e := httphandler.NewRouter(httphandler.RouterDeps{
		ServiceName: a.Config.ServiceName,
		Metrics:     a.Metrics,
		MetricsCfg:  a.Config.Metrics,
		Limiter:     a.Limiter,
		RateLimit:   a.Config.RateLimit,
	}, httphandler.NewPricingHandler(a.AppService, a.Config.Pricing.Precision))
	logger.Info(context.Background(), "HTTP routes registered", "service", BootstrapName)
	return e
}

// serve 运行 gRPC 与 HTTP 服务直到 ctx 结束，然后优雅退出
// httpLis 为 nil 时不启动 HTTP 网关
func (a *AppContext) serve(ctx context.Context, grpcLis, httpLis net.Listener) error {
	grpcSrv := registerGRPC(a)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(ctx, "gRPC server listening", "addr", grpcLis.Addr().String())
		if err := grpcSrv.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC server failed: %w", err)
		}
		return nil
	})

	var httpSrv *http.Server
	if httpLis != nil {
		httpSrv = &http.Server{
			Handler:      registerGin(a),
			ReadTimeout:  a.Config.HTTP.ReadTimeout,
			WriteTimeout: a.Config.HTTP.WriteTimeout,
		}
		g.Go(func() error {
			logger.Info(ctx, "HTTP server listening", "addr", httpLis.Addr().String())
			if err := httpSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server failed: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info(ctx, "shutting down servers...")
		timeout := a.Config.GRPC.ShutdownTimeout
		if httpSrv != nil {
			shutdownCtx, cancel := shutdownContext(timeout)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "HTTP server shutdown incomplete", "error", err)
			}
		}
		gracefulStop(ctx, grpcSrv, timeout)
		return nil
	})

	return g.Wait()
}

func shutdownContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// gracefulStop 等待进行中的调用完成，超时后强制关闭
func gracefulStop(ctx context.Context, s *grpc.Server, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()
	if timeout <= 0 {
		<-done
		return
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		logger.Warn(ctx, "graceful stop timed out, forcing shutdown", "timeout", timeout)
		s.Stop()
		<-done
	}
}
