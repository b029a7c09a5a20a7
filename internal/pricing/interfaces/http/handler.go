package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/blackscholes/internal/pricing/application"
	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
	"github.com/wyfcoding/blackscholes/pkg/logger"
)

// PricingHandler HTTP 处理器
// 以 JSON 暴露与 gRPC 相同的两个操作
type PricingHandler struct {
	app       *application.PricingService
	precision int32
}

// NewPricingHandler 创建 HTTP 处理器实例，precision 为展示价格保留的小数位
func NewPricingHandler(app *application.PricingService, precision int32) *PricingHandler {
	return &PricingHandler{app: app, precision: precision}
}

// RegisterRoutes 注册路由
func (h *PricingHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/hello", h.Hello)
		api.POST("/option/price", h.ComputePrice)
	}
}

// HelloRequest hello 请求
type HelloRequest struct {
	Name string `json:"name"`
}

// PricingRequest 定价请求，数值字段必须显式给出
type PricingRequest struct {
	S            *float64 `json:"s" binding:"required"`
	K            *float64 `json:"k" binding:"required"`
	TimeToExp    *float64 `json:"time_to_exp" binding:"required"`
	DiscountRate *float64 `json:"discount_rate" binding:"required"`
	UndRate      *float64 `json:"und_rate" binding:"required"`
	Vol          *float64 `json:"vol" binding:"required"`
	CallOrPut    string   `json:"call_or_put" binding:"required"`
}

// Hello 回显问候语
func (h *PricingHandler) Hello(c *gin.Context) {
	var req HelloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.app.Hello(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// ComputePrice 计算期权价格
// 校验失败返回 422 与失败类型；NaN 与 Inf 无法以 JSON 数值表示，放在 non_finite 字段
func (h *PricingHandler) ComputePrice(c *gin.Context) {
	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cp, err := domain.ParseCallOrPut(req.CallOrPut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "call_or_put: " + err.Error()})
		return
	}

	input := domain.PricingInput{
		S:            *req.S,
		K:            *req.K,
		TimeToExp:    domain.Years(*req.TimeToExp),
		DiscountRate: *req.DiscountRate,
		UndRate:      *req.UndRate,
		Vol:          *req.Vol,
		CallOrPut:    cp,
	}

	price, err := h.app.ComputePrice(c.Request.Context(), input)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": gin.H{"kind": ve.Kind, "value": ve.Value},
			})
			return
		}
		logger.Error(c.Request.Context(), "Failed to calculate option price", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		c.JSON(http.StatusOK, gin.H{"non_finite": strconv.FormatFloat(price, 'g', -1, 64)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"price":   price,
		"display": decimal.NewFromFloat(price).Round(h.precision).StringFixed(h.precision),
	})
}
