// Package application 定价应用服务，编排校验、定价、日志、指标与审计
package application

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
	"github.com/wyfcoding/blackscholes/pkg/logger"
)

// 定价结果分类，用作指标标签
const (
	OutcomeOK        = "ok"
	OutcomeNonFinite = "non_finite"
	OutcomeError     = "error"
)

// OutcomeRecorder 记录定价结果
type OutcomeRecorder interface {
	RecordPricing(outcome string)
}

// PricingService 定价应用服务
// 无状态，可被多个 goroutine 并发调用
type PricingService struct {
	pricer    *domain.Pricer
	recorder  OutcomeRecorder
	publisher domain.EventPublisher
}

var _ domain.PricingAPI = (*PricingService)(nil)

// Option 应用服务选项
type Option func(*PricingService)

// WithOutcomeRecorder 注入指标
func WithOutcomeRecorder(r OutcomeRecorder) Option {
	return func(s *PricingService) {
		s.recorder = r
	}
}

// WithEventPublisher 注入审计事件发布者
func WithEventPublisher(p domain.EventPublisher) Option {
	return func(s *PricingService) {
		s.publisher = p
	}
}

// NewPricingService 创建定价应用服务，pricer 为 nil 时使用默认定价器
func NewPricingService(pricer *domain.Pricer, opts ...Option) *PricingService {
	if pricer == nil {
		pricer = domain.NewPricer()
	}
	s := &PricingService{pricer: pricer}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hello 回显问候语
func (s *PricingService) Hello(ctx context.Context, name string) (string, error) {
	logger.Info(ctx, "hello request", "name", name)
	msg := "Hello, " + name + "!"
	logger.Info(ctx, "hello response", "message", msg)
	return msg, nil
}

// ComputePrice 校验并计算期权价格
// 校验失败返回 *domain.ValidationError，t 或 v 为零时返回非有限值
func (s *PricingService) ComputePrice(ctx context.Context, in domain.PricingInput) (float64, error) {
	defer logger.LogDuration(ctx, "compute_price completed", "call_or_put", in.CallOrPut.String())()

	logger.Info(ctx, "compute_price request",
		"s", in.S,
		"k", in.K,
		"time_to_exp", in.TimeToExp.Float64(),
		"discount_rate", in.DiscountRate,
		"und_rate", in.UndRate,
		"vol", in.Vol,
		"call_or_put", in.CallOrPut.String(),
	)

	price, err := s.pricer.Price(in)
	outcome := Outcome(price, err)
	if s.recorder != nil {
		s.recorder.RecordPricing(outcome)
	}

	if err != nil {
		logger.Warn(ctx, "compute_price rejected", "outcome", outcome, "error", err)
	} else {
		logger.Info(ctx, "compute_price response", "outcome", outcome, "price", price)
	}

	if s.publisher != nil {
		if pubErr := s.publisher.PublishOptionPriced(ctx, NewOptionPricedEvent(in, price, err)); pubErr != nil {
			logger.Error(ctx, "failed to publish pricing audit event", "error", pubErr)
		}
	}
	return price, err
}

// Outcome 定价结果分类：ok、非有限值或校验失败类型
func Outcome(price float64, err error) string {
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return string(ve.Kind)
		}
		return OutcomeError
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return OutcomeNonFinite
	}
	return OutcomeOK
}

// NewOptionPricedEvent 由一次定价调用构造审计事件
func NewOptionPricedEvent(in domain.PricingInput, price float64, err error) domain.OptionPricedEvent {
	event := domain.OptionPricedEvent{
		EventID:      uuid.NewString(),
		EventType:    domain.OptionPricedEventType,
		CallOrPut:    in.CallOrPut,
		S:            formatFloat(in.S),
		K:            formatFloat(in.K),
		TimeToExp:    formatFloat(in.TimeToExp.Float64()),
		DiscountRate: formatFloat(in.DiscountRate),
		UndRate:      formatFloat(in.UndRate),
		Vol:          formatFloat(in.Vol),
		OccurredOn:   time.Now().UTC(),
	}
	if err != nil {
		event.EventType = domain.PricingErrorEventType
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			event.ErrorKind = string(ve.Kind)
			event.ErrorValue = formatFloat(ve.Value)
		} else {
			event.ErrorKind = err.Error()
		}
		return event
	}
	event.Price = formatFloat(price)
	return event
}

// formatFloat 最短十进制表示，NaN 与 ±Inf 输出为 "NaN"、"+Inf"、"-Inf"
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
