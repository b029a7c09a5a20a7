package domain

import "strconv"

// Years 到期时间 (年)
type Years float64

// ParseYears 从十进制字符串解析到期时间
// 解析失败时原样返回 strconv 的错误
func ParseYears(s string) (Years, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return Years(f), nil
}

// Float64 返回年数
func (y Years) Float64() float64 {
	return float64(y)
}
