package acf

import (
	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
	"gasmethod/pkg/utils/myTools"
)

// AutoCorr 单序列样本自相关, 返回 lag 0..maxLag
//
//	r(k) = Σ(xt - μ)(xt+k - μ) / Σ(xt - μ)²
func AutoCorr(series []float64, maxLag int) ([]float64, error) {
	n := len(series)
	if n == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "input series empty")
	}
	if maxLag <= 0 {
		return nil, errorx.New(errCode.INVALID_VALUE, "maxLag must be > 0")
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	mean := myTools.ArrMean(series)
	u := make([]float64, n)
	for i := range series {
		u[i] = series[i] - mean
	}

	var denom float64
	for _, x := range u {
		denom += x * x
	}
	if denom == 0 {
		return nil, errorx.New(errCode.INVALID_VALUE, "variance is zero")
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		// 去掉重复的边界检查
		u0 := u[:n-k]
		uk := u[k:]
		var num float64
		for i := range u0 {
			num += u0[i] * uk[i]
		}
		acf[k] = num / denom
	}
	return acf, nil
}
