package client

import (
	"context"
	"fmt"

	v1 "github.com/wyfcoding/blackscholes/go-api/pricing/v1"
	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
	pricinggrpc "github.com/wyfcoding/blackscholes/internal/pricing/interfaces/grpc"
	"github.com/wyfcoding/blackscholes/pkg/grpcclient"
	"google.golang.org/grpc"
)

// PricingClient 定价服务远程客户端
// 同步调用，不重试；传输失败以 gRPC status 错误返回，校验失败以 *domain.ValidationError 返回
type PricingClient struct {
	conn   *grpc.ClientConn
	client v1.PricingServiceClient
}

var _ domain.PricingAPI = (*PricingClient)(nil)

// NewPricingClient 连接定价服务
func NewPricingClient(cfg grpcclient.ClientConfig, opts ...grpc.DialOption) (*PricingClient, error) {
	conn, err := grpcclient.NewClient(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pricing service client: %w", err)
	}
	return &PricingClient{
		conn:   conn,
		client: v1.NewPricingServiceClient(conn),
	}, nil
}

// NewPricingClientFromConn 从现有连接创建客户端，连接由调用方关闭
func NewPricingClientFromConn(conn grpc.ClientConnInterface) *PricingClient {
	return &PricingClient{client: v1.NewPricingServiceClient(conn)}
}

// Hello 远程回显
func (c *PricingClient) Hello(ctx context.Context, name string) (string, error) {
	reply, err := c.client.Hello(ctx, &v1.HelloRequest{Name: name})
	if err != nil {
		return "", err
	}
	return reply.Message, nil
}

// ComputePrice 远程定价
func (c *PricingClient) ComputePrice(ctx context.Context, input domain.PricingInput) (float64, error) {
	resp, err := c.client.ComputePrice(ctx, &v1.ComputePriceRequest{Input: pricinggrpc.FromDomainInput(input)})
	if err != nil {
		return 0, err
	}
	return pricinggrpc.FromResponse(resp)
}

// Close 关闭自有连接
func (c *PricingClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
