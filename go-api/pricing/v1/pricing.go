// Package v1 定价服务的 RPC 契约：消息、服务描述与客户端
package v1

// HelloRequest hello 请求
type HelloRequest struct {
	Name string `codec:"name" json:"name"`
}

// HelloReply hello 响应
type HelloReply struct {
	Message string `codec:"message" json:"message"`
}

// PricingInput 定价输入，CallOrPut 取值 "C" 或 "P"
type PricingInput struct {
	S            float64 `codec:"s" json:"s"`
	K            float64 `codec:"k" json:"k"`
	TimeToExp    float64 `codec:"time_to_exp" json:"time_to_exp"`
	DiscountRate float64 `codec:"discount_rate" json:"discount_rate"`
	UndRate      float64 `codec:"und_rate" json:"und_rate"`
	Vol          float64 `codec:"vol" json:"vol"`
	CallOrPut    string  `codec:"call_or_put" json:"call_or_put"`
}

// ComputePriceRequest compute_price 请求
type ComputePriceRequest struct {
	Input *PricingInput `codec:"input" json:"input"`
}

// ValidationError 校验失败分支，Kind 为 NegativeUndPrice 或 NegativeStrikePrice
type ValidationError struct {
	Kind  string  `codec:"kind" json:"kind"`
	Value float64 `codec:"value" json:"value"`
}

// ComputePriceResponse compute_price 响应
// Error 非空时为失败分支，Price 无意义
type ComputePriceResponse struct {
	Price float64          `codec:"price" json:"price"`
	Error *ValidationError `codec:"error,omitempty" json:"error,omitempty"`
}

// GetInput 空安全访问
func (x *ComputePriceRequest) GetInput() *PricingInput {
	if x == nil {
		return nil
	}
	return x.Input
}

// GetName 空安全访问
func (x *HelloRequest) GetName() string {
	if x == nil {
		return ""
	}
	return x.Name
}

// IsOk 是否为成功分支
func (x *ComputePriceResponse) IsOk() bool {
	return x != nil && x.Error == nil
}
