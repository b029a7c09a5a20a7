package grpc

import (
	"errors"
	"fmt"

	v1 "github.com/wyfcoding/blackscholes/go-api/pricing/v1"
	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
)

// ErrMissingInput 请求中缺少定价输入
var ErrMissingInput = errors.New("missing pricing input")

// ToDomainInput 将线上消息转换为领域输入
func ToDomainInput(in *v1.PricingInput) (domain.PricingInput, error) {
	if in == nil {
		return domain.PricingInput{}, ErrMissingInput
	}
	cp, err := domain.ParseCallOrPut(in.CallOrPut)
	if err != nil {
		return domain.PricingInput{}, fmt.Errorf("call_or_put %q: %w", in.CallOrPut, err)
	}
	return domain.PricingInput{
		S:            in.S,
		K:            in.K,
		TimeToExp:    domain.Years(in.TimeToExp),
		DiscountRate: in.DiscountRate,
		UndRate:      in.UndRate,
		Vol:          in.Vol,
		CallOrPut:    cp,
	}, nil
}

// FromDomainInput 将领域输入转换为线上消息
func FromDomainInput(in domain.PricingInput) *v1.PricingInput {
	return &v1.PricingInput{
		S:            in.S,
		K:            in.K,
		TimeToExp:    in.TimeToExp.Float64(),
		DiscountRate: in.DiscountRate,
		UndRate:      in.UndRate,
		Vol:          in.Vol,
		CallOrPut:    in.CallOrPut.String(),
	}
}

// ToResponse 将定价结果转换为响应，校验失败放入错误分支
// 非校验错误原样返回，由调用方转换为状态码
func ToResponse(price float64, err error) (*v1.ComputePriceResponse, error) {
	if err == nil {
		return &v1.ComputePriceResponse{Price: price}, nil
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return &v1.ComputePriceResponse{
			Error: &v1.ValidationError{Kind: string(ve.Kind), Value: ve.Value},
		}, nil
	}
	return nil, err
}

// FromResponse 还原定价结果，错误分支返回 *domain.ValidationError
func FromResponse(resp *v1.ComputePriceResponse) (float64, error) {
	if resp == nil {
		return 0, errors.New("empty compute_price response")
	}
	if resp.Error == nil {
		return resp.Price, nil
	}
	kind, err := domain.ParseValidationKind(resp.Error.Kind)
	if err != nil {
		return 0, fmt.Errorf("decode compute_price response: %w", err)
	}
	return 0, &domain.ValidationError{Kind: kind, Value: resp.Error.Value}
}
