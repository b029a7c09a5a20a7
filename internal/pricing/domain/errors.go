package domain

import "fmt"

// ValidationKind 校验失败类型
type ValidationKind string

const (
	NegativeUndPrice    ValidationKind = "NegativeUndPrice"    // 标的价格为负
	NegativeStrikePrice ValidationKind = "NegativeStrikePrice" // 行权价为负
)

// ParseValidationKind 按名称还原校验失败类型
func ParseValidationKind(s string) (ValidationKind, error) {
	switch k := ValidationKind(s); k {
	case NegativeUndPrice, NegativeStrikePrice:
		return k, nil
	default:
		return "", fmt.Errorf("unknown validation kind %q", s)
	}
}

// ValidationError 定价输入校验失败，携带触发失败的数值
type ValidationError struct {
	Kind  ValidationKind
	Value float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s(%v)", e.Kind, e.Value)
}
