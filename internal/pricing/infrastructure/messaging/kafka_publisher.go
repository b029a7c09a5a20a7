package messaging

import (
	"context"
	"fmt"

	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
)

// MessageSender 消息发送接口，由 mq.KafkaProducer 实现
type MessageSender interface {
	SendMessage(ctx context.Context, topic string, key string, value any) error
}

// KafkaEventPublisher 实现 EventPublisher 接口，将审计事件写入 Kafka
type KafkaEventPublisher struct {
	sender MessageSender
	topic  string
}

var _ domain.EventPublisher = (*KafkaEventPublisher)(nil)

// NewKafkaEventPublisher 创建审计事件发布者
func NewKafkaEventPublisher(sender MessageSender, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{sender: sender, topic: topic}
}

// PublishOptionPriced 发布定价审计事件，以期权方向作为分区键
func (p *KafkaEventPublisher) PublishOptionPriced(ctx context.Context, event domain.OptionPricedEvent) error {
	if err := p.sender.SendMessage(ctx, p.topic, event.CallOrPut.String(), event); err != nil {
		return fmt.Errorf("publish %s event %s: %w", event.EventType, event.EventID, err)
	}
	return nil
}
