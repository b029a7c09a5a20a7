package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	PricingService_ServiceName                 = "blackscholes.pricing.v1.PricingService"
	PricingService_Hello_FullMethodName        = "/" + PricingService_ServiceName + "/Hello"
	PricingService_ComputePrice_FullMethodName = "/" + PricingService_ServiceName + "/ComputePrice"
)

// PricingServiceClient 定价服务客户端接口
type PricingServiceClient interface {
	Hello(ctx context.Context, in *HelloRequest, opts ...grpc.CallOption) (*HelloReply, error)
	ComputePrice(ctx context.Context, in *ComputePriceRequest, opts ...grpc.CallOption) (*ComputePriceResponse, error)
}

type pricingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPricingServiceClient 创建客户端，所有调用使用 msgpack 编码
func NewPricingServiceClient(cc grpc.ClientConnInterface) PricingServiceClient {
	return &pricingServiceClient{cc: cc}
}

func (c *pricingServiceClient) Hello(ctx context.Context, in *HelloRequest, opts ...grpc.CallOption) (*HelloReply, error) {
	out := new(HelloReply)
	if err := c.cc.Invoke(ctx, PricingService_Hello_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pricingServiceClient) ComputePrice(ctx context.Context, in *ComputePriceRequest, opts ...grpc.CallOption) (*ComputePriceResponse, error) {
	out := new(ComputePriceResponse)
	if err := c.cc.Invoke(ctx, PricingService_ComputePrice_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

// PricingServiceServer 定价服务端接口
type PricingServiceServer interface {
	Hello(context.Context, *HelloRequest) (*HelloReply, error)
	ComputePrice(context.Context, *ComputePriceRequest) (*ComputePriceResponse, error)
	mustEmbedUnimplementedPricingServiceServer()
}

// UnimplementedPricingServiceServer 需嵌入到服务端实现中
type UnimplementedPricingServiceServer struct{}

func (UnimplementedPricingServiceServer) Hello(context.Context, *HelloRequest) (*HelloReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Hello not implemented")
}

func (UnimplementedPricingServiceServer) ComputePrice(context.Context, *ComputePriceRequest) (*ComputePriceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ComputePrice not implemented")
}

func (UnimplementedPricingServiceServer) mustEmbedUnimplementedPricingServiceServer() {}

// RegisterPricingServiceServer 注册服务实现
func RegisterPricingServiceServer(s grpc.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&PricingService_ServiceDesc, srv)
}

func _PricingService_Hello_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(HelloRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PricingServiceServer).Hello(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PricingService_Hello_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PricingServiceServer).Hello(ctx, req.(*HelloRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PricingService_ComputePrice_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ComputePriceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PricingServiceServer).ComputePrice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PricingService_ComputePrice_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PricingServiceServer).ComputePrice(ctx, req.(*ComputePriceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// PricingService_ServiceDesc 定价服务描述
var PricingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PricingService_ServiceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Hello",
			Handler:    _PricingService_Hello_Handler,
		},
		{
			MethodName: "ComputePrice",
			Handler:    _PricingService_ComputePrice_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricing/v1/pricing.msgpack",
}
