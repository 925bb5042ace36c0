package acf

import (
	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"

	"gonum.org/v1/gonum/stat/distuv"
)

type LjungBoxResult struct {
	Q      float64
	PValue float64
	Lags   int
	Reject bool // 拒绝原假设(白噪声), 即残差存在自相关
}

// LjungBoxTest Ljung-Box检验
// 样本自相关系数: rk = Σ((rt - rmean)(rt-k - rmean)) / Σ((rt - rmean)^2)
// Ljung-Box统计量: Q = n(n+2)Σ(rk^2/(n-k))  k=1~lags
// Q服从自由度为lags的卡方分布
func LjungBoxTest(resid []float64, lags int, alpha float64) (LjungBoxResult, error) {
	n := len(resid)
	if lags <= 0 {
		return LjungBoxResult{}, errorx.New(errCode.INVALID_VALUE, "lags must be > 0")
	}
	if n <= lags {
		return LjungBoxResult{}, errorx.Newf(errCode.INVALID_VALUE, "样本量过小, 无法进行Ljung-Box检验: n=%d lags=%d", n, lags)
	}

	r, err := AutoCorr(resid, lags)
	if err != nil {
		return LjungBoxResult{}, err
	}

	nf := float64(n)
	var q float64
	for k := 1; k <= lags; k++ {
		q += r[k] * r[k] / (nf - float64(k))
	}
	q = nf * (nf + 2) * q

	chi2 := distuv.ChiSquared{K: float64(lags)}
	p := chi2.Survival(q)
	return LjungBoxResult{Q: q, PValue: p, Lags: lags, Reject: p < alpha}, nil
}
