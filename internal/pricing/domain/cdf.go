package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// CDF 标准正态分布累积分布函数
type CDF func(x float64) float64

const (
	CDFApprox = "approx"
	CDFExact  = "exact"
)

// ApproxNormCDF 闭式近似
// Φ(x) = 0.5 * (1 + sign(x) * sqrt(1 - exp(-(2/π) * x²)))，绝对误差在千分之几以内
func ApproxNormCDF(x float64) float64 {
	return 0.5 * (1 + sign(x)*math.Sqrt(1-math.Exp(-(2/math.Pi)*x*x)))
}

// ExactNormCDF 基于误差函数的精确实现
func ExactNormCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// CDFByName 按配置名称选择 CDF 实现，空字符串使用近似实现
func CDFByName(name string) (CDF, error) {
	switch name {
	case "", CDFApprox:
		return ApproxNormCDF, nil
	case CDFExact:
		return ExactNormCDF, nil
	default:
		return nil, fmt.Errorf("unknown cdf %q", name)
	}
}

// sign(0) = 0，NaN 原样传播
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}
