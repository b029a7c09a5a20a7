package mq

import (
	"context"
	"math"
	"testing"

	"github.com/wyfcoding/blackscholes/pkg/config"
)

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(config.KafkaConfig{}); err == nil {
		t.Fatal("expected error without brokers")
	}
}

func TestSendMessageRejectsUnencodableValue(t *testing.T) {
	p, err := NewProducer(config.KafkaConfig{Brokers: []string{"127.0.0.1:1"}, MaxRetries: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	// JSON 无法表示 NaN，在写出之前就应失败
	if err := p.SendMessage(context.Background(), "pricing.audit", "k", math.NaN()); err == nil {
		t.Fatal("expected marshal error")
	}
}
