// 包 gRPC 处理器实现
package grpc

import (
	"context"
	"errors"

	v1 "github.com/wyfcoding/blackscholes/go-api/pricing/v1"
	"github.com/wyfcoding/blackscholes/internal/pricing/application"
	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCHandler gRPC 处理器
// 负责处理与定价相关的 gRPC 请求，自身无状态
type GRPCHandler struct {
	v1.UnimplementedPricingServiceServer
	app *application.PricingService // 定价应用服务
}

// NewGRPCHandler 创建 gRPC 处理器实例
func NewGRPCHandler(app *application.PricingService) *GRPCHandler {
	return &GRPCHandler{app: app}
}

// Hello 回显问候语
func (h *GRPCHandler) Hello(ctx context.Context, req *v1.HelloRequest) (*v1.HelloReply, error) {
	msg, err := h.app.Hello(ctx, req.GetName())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &v1.HelloReply{Message: msg}, nil
}

// ComputePrice 计算期权价格
// 校验失败通过响应的错误分支返回，不是 gRPC 错误
func (h *GRPCHandler) ComputePrice(ctx context.Context, req *v1.ComputePriceRequest) (*v1.ComputePriceResponse, error) {
	input, err := ToDomainInput(req.GetInput())
	if err != nil {
		if errors.Is(err, ErrMissingInput) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.InvalidArgument, "invalid input: %v", err)
	}

	resp, err := ToResponse(h.app.ComputePrice(ctx, input))
	if err != nil {
		var pe *domain.ParseCallOrPutError
		if errors.As(err, &pe) {
			return nil, status.Errorf(codes.InvalidArgument, "invalid call_or_put %q", pe.Token)
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}
