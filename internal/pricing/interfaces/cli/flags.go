// Package cli 命令行边界：注册定价参数并解析为领域输入
// 解析在构造 domain.PricingInput 之前完成，任何错误都以 *InputError 返回
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
)

// Field 定价输入的逻辑字段
type Field string

const (
	FieldStock        Field = "stock"
	FieldStrike       Field = "strike"
	FieldTimeToExp    Field = "time_to_exp"
	FieldDiscountRate Field = "discount_rate"
	FieldUndRate      Field = "und_rate"
	FieldVol          Field = "vol"
	FieldCallOrPut    Field = "call_or_put"
)

// Fields 解析顺序
var Fields = []Field{
	FieldStock,
	FieldStrike,
	FieldTimeToExp,
	FieldDiscountRate,
	FieldUndRate,
	FieldVol,
	FieldCallOrPut,
}

// Flag 一个字段对应的长短参数名
type Flag struct {
	Long  string
	Short string
	Usage string
}

// FlagNames 逻辑字段到参数名的映射
type FlagNames map[Field]Flag

// DefaultFlagNames 默认参数名
func DefaultFlagNames() FlagNames {
	return FlagNames{
		FieldStock:        {Long: "stock", Short: "s", Usage: "underlying price"},
		FieldStrike:       {Long: "strike", Short: "k", Usage: "strike price"},
		FieldTimeToExp:    {Long: "time-to-exp", Short: "t", Usage: "time to expiry in years"},
		FieldDiscountRate: {Long: "risk-free-rate", Short: "r", Usage: "discount rate, e.g. 0.01 for 1%"},
		FieldUndRate:      {Long: "und-rate", Short: "u", Usage: "underlying drift rate (r - q)"},
		FieldVol:          {Long: "vol", Short: "v", Usage: "volatility, e.g. 0.2 for 20 vol"},
		FieldCallOrPut:    {Long: "call-or-put", Short: "c", Usage: "option side, C or P"},
	}
}

// Inputs 注册在 FlagSet 上的原始参数
type Inputs struct {
	fs     *pflag.FlagSet
	names  FlagNames
	values map[Field]*string
}

// AddFlags 在 fs 上注册定价参数，names 中缺失的字段使用默认参数名
func AddFlags(fs *pflag.FlagSet, names FlagNames) *Inputs {
	defaults := DefaultFlagNames()
	in := &Inputs{fs: fs, names: FlagNames{}, values: make(map[Field]*string, len(Fields))}
	for _, f := range Fields {
		flag, ok := names[f]
		if !ok {
			flag = defaults[f]
		}
		if flag.Usage == "" {
			flag.Usage = defaults[f].Usage
		}
		in.names[f] = flag
		in.values[f] = fs.StringP(flag.Long, flag.Short, "", flag.Usage)
	}
	return in
}

// Parse 按顺序解析所有字段，第一个错误即返回
func (in *Inputs) Parse() (domain.PricingInput, error) {
	var nums [6]float64
	for i, f := range Fields[:6] {
		raw, err := in.raw(f)
		if err != nil {
			return domain.PricingInput{}, err
		}
		if f == FieldTimeToExp {
			y, err := domain.ParseYears(raw)
			if err != nil {
				return domain.PricingInput{}, in.malformed(f, raw, err)
			}
			nums[i] = y.Float64()
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.PricingInput{}, in.malformed(f, raw, err)
		}
		nums[i] = v
	}

	raw, err := in.raw(FieldCallOrPut)
	if err != nil {
		return domain.PricingInput{}, err
	}
	cp, err := domain.ParseCallOrPut(raw)
	if err != nil {
		return domain.PricingInput{}, in.malformed(FieldCallOrPut, raw, err)
	}

	return domain.PricingInput{
		S:            nums[0],
		K:            nums[1],
		TimeToExp:    domain.Years(nums[2]),
		DiscountRate: nums[3],
		UndRate:      nums[4],
		Vol:          nums[5],
		CallOrPut:    cp,
	}, nil
}

func (in *Inputs) raw(f Field) (string, error) {
	flag := in.names[f]
	if !in.fs.Changed(flag.Long) {
		return "", &InputError{Kind: MissingField, Field: f, Flag: flag.Long}
	}
	return *in.values[f], nil
}

func (in *Inputs) malformed(f Field, raw string, err error) error {
	return &InputError{Kind: MalformedValue, Field: f, Flag: in.names[f].Long, Value: raw, Err: err}
}

// InputErrorKind 参数错误类型
type InputErrorKind int

const (
	MissingField InputErrorKind = iota + 1
	MalformedValue
)

func (k InputErrorKind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case MalformedValue:
		return "MalformedValue"
	default:
		return "Unknown"
	}
}

// InputError 命令行参数缺失或无法解析
type InputError struct {
	Kind  InputErrorKind
	Field Field
	Flag  string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	if e.Kind == MissingField {
		return fmt.Sprintf("missing required option --%s", e.Flag)
	}
	return fmt.Sprintf("invalid value %q for --%s: %v", e.Value, e.Flag, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
