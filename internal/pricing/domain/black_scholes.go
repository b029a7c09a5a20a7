package domain

import "math"

// Pricer Black-Scholes-Merton 定价器
type Pricer struct {
	cdf CDF
}

// PricerOption 定价器选项
type PricerOption func(*Pricer)

// WithCDF 替换正态分布累积分布函数
func WithCDF(cdf CDF) PricerOption {
	return func(p *Pricer) {
		if cdf != nil {
			p.cdf = cdf
		}
	}
}

// NewPricer 创建定价器，默认使用近似 CDF
func NewPricer(opts ...PricerOption) *Pricer {
	p := &Pricer{cdf: ApproxNormCDF}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultPricer = NewPricer()

// Price 使用默认定价器计算期权价格
func Price(in PricingInput) (float64, error) {
	return defaultPricer.Price(in)
}

// Price 先校验输入，再计算期权价格
// t = 0 或 v = 0 时 d1 的分母为零，结果为非有限值而不是错误
// 期权方向不是 Call 或 Put 时返回 *ParseCallOrPutError，标的价格与行权价的校验优先
func (p *Pricer) Price(in PricingInput) (float64, error) {
	valid, err := in.Validate()
	if err != nil {
		return 0, err
	}

	t := valid.TimeToExp.Float64()
	fwd := Forward(valid)
	d1, d2 := D1D2(valid)
	df := math.Exp(-valid.DiscountRate * t)

	switch valid.CallOrPut {
	case Call:
		return df * (fwd*p.cdf(d1) - valid.K*p.cdf(d2)), nil
	case Put:
		return df * (valid.K*p.cdf(-d2) - fwd*p.cdf(-d1)), nil
	default:
		return 0, &ParseCallOrPutError{Token: string(valid.CallOrPut)}
	}
}

// Forward 远期价格 s * exp(u * t)
func Forward(in PricingInput) float64 {
	return in.S * math.Exp(in.UndRate*in.TimeToExp.Float64())
}

// D1D2 计算 d1 与 d2
func D1D2(in PricingInput) (d1, d2 float64) {
	t := in.TimeToExp.Float64()
	volSqrtT := in.Vol * math.Sqrt(t)
	d1 = (math.Log(in.S/in.K) + (in.UndRate+in.Vol*in.Vol/2)*t) / volSqrtT
	d2 = d1 - volSqrtT
	return d1, d2
}
