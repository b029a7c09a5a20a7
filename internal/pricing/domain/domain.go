// 包 期权定价服务的领域模型
package domain

import "context"

// PricingAPI 定价服务对外暴露的两个远程过程
// 本地应用服务与远程客户端都实现该接口
type PricingAPI interface {
	// Hello 回显问候语
	Hello(ctx context.Context, name string) (string, error)
	// ComputePrice 计算期权价格，校验失败时返回 *ValidationError
	ComputePrice(ctx context.Context, input PricingInput) (float64, error)
}
