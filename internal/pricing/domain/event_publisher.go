package domain

import "context"

// EventPublisher 事件发布者接口
type EventPublisher interface {
	// PublishOptionPriced 发布定价审计事件
	PublishOptionPriced(ctx context.Context, event OptionPricedEvent) error
}
