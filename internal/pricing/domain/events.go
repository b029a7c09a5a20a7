package domain

import "time"

const (
	OptionPricedEventType = "OptionPriced"
	PricingErrorEventType = "PricingError"
)

// OptionPricedEvent 一次 compute_price 调用的审计事件
// 数值字段以字符串保存，输入或结果为 NaN 与 Inf 时也能以 JSON 序列化
type OptionPricedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	CallOrPut    CallOrPut `json:"call_or_put"`
	S            string    `json:"s"`
	K            string    `json:"k"`
	TimeToExp    string    `json:"time_to_exp"`
	DiscountRate string    `json:"discount_rate"`
	UndRate      string    `json:"und_rate"`
	Vol          string    `json:"vol"`
	Price        string    `json:"price,omitempty"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	ErrorValue   string    `json:"error_value,omitempty"`
	OccurredOn   time.Time `json:"occurred_on"`
}
