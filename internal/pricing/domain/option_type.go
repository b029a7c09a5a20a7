package domain

// CallOrPut 期权方向
type CallOrPut string

const (
	Call CallOrPut = "C" // 看涨期权
	Put  CallOrPut = "P" // 看跌期权
)

// ParseCallOrPutError 期权方向标记无法识别
type ParseCallOrPutError struct {
	Token string
}

func (e *ParseCallOrPutError) Error() string {
	return "Invalid"
}

// ParseCallOrPut 只接受 "C" 与 "P"，不区分大小写的写法和别名都视为无效
func ParseCallOrPut(s string) (CallOrPut, error) {
	switch s {
	case "C":
		return Call, nil
	case "P":
		return Put, nil
	default:
		return "", &ParseCallOrPutError{Token: s}
	}
}

// Valid 是否为合法的期权方向
func (c CallOrPut) Valid() bool {
	return c == Call || c == Put
}

func (c CallOrPut) String() string {
	return string(c)
}
