package domain

// PricingInput 定价输入
// 所有字段都已解析完毕，值对象不可变
type PricingInput struct {
	S            float64   `json:"s"`             // 标的资产价格
	K            float64   `json:"k"`             // 执行价格
	TimeToExp    Years     `json:"time_to_exp"`   // 到期时间 (年)
	DiscountRate float64   `json:"discount_rate"` // 无风险折现率，例如 0.01 表示 1%
	UndRate      float64   `json:"und_rate"`      // 标的漂移率 (r-q)
	Vol          float64   `json:"vol"`           // 波动率，例如 0.2 表示 20 vol
	CallOrPut    CallOrPut `json:"call_or_put"`   // 期权方向
}

// Validate 按顺序校验标的价格与行权价，第一个失败即返回
func (in PricingInput) Validate() (PricingInput, error) {
	if in.S < 0 {
		return in, &ValidationError{Kind: NegativeUndPrice, Value: in.S}
	}
	if in.K < 0 {
		return in, &ValidationError{Kind: NegativeStrikePrice, Value: in.K}
	}
	return in, nil
}
