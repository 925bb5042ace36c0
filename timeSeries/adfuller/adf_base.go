// adf单位根检验, H0: 非平稳(存在单位根); H1: 序列平稳(无单位根)
//
//	Δy_t = γ·y_{t-1} [+ c] [+ τ·t] + Σ_{j=1..lag} φ_j·Δy_{t-j} + ε_t
//
// 所有候选 lag 共用同一段样本 (去掉前 maxLag 个差分), 便于比较信息准则
package adfuller

import (
	"math"

	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
	"gasmethod/ml/ols"

	"github.com/gonum/stat"
	"gonum.org/v1/gonum/mat"
)

type ADFResult struct {
	Gamma     float64            // 单位根系数
	TStat     float64            // ADF统计量 (t值)
	PValue    float64            // t分布近似的p值, 判定以 Criticals 为准
	UsedLag   int                // 选用的滞后阶数
	NObs      int                // 有效样本量
	AIC       float64            // Akaike信息准则
	BIC       float64            // 贝叶斯信息准则
	Method    LagMode            // autolag选择方法
	Trend     string             // 趋势类型 ("n"、"c"、"ct")
	Criticals map[string]float64 // 临界值（1%, 5%, 10%）
	Tail      string             // 左尾or右尾
	Resid     []float64          // 残差
	Coeffs    []float64          // 回归系数
}

func diff(x []float64) []float64 {
	d := make([]float64, len(x)-1)
	for i := 1; i < len(x); i++ {
		d[i-1] = x[i] - x[i-1]
	}
	return d
}

// DefaultMaxLag Schwert 规则 12·(n/100)^(1/4)
func DefaultMaxLag(n int) int {
	return int(12 * math.Pow(float64(n)/100, 0.25))
}

// 构造回归矩阵, 行 i 对应差分下标 t = maxLag + i
func buildADFData(series, dy []float64, regr string, lag, maxLag int) (*mat.Dense, *mat.VecDense) {
	nRow := len(dy) - maxLag
	nCol := lag + 1
	switch regr {
	case "c":
		nCol++
	case "ct":
		nCol += 2
	}

	X := mat.NewDense(nRow, nCol, nil)
	Y := mat.NewVecDense(nRow, nil)
	for i := 0; i < nRow; i++ {
		t := maxLag + i
		col := 0
		X.Set(i, col, series[t]) // y_{t-1} 相对 Δy_t = y_{t+1} - y_t
		col++
		if regr != "n" {
			X.Set(i, col, 1)
			col++
		}
		if regr == "ct" {
			X.Set(i, col, float64(i+1))
			col++
		}
		for j := 1; j <= lag; j++ {
			X.Set(i, col, dy[t-j])
			col++
		}
		Y.SetVec(i, dy[t])
	}
	return X, Y
}

// 按 autolag 判断 model 是否优于当前结果
func better(autolag LagMode, model ols.MultiLinearModel, cur ADFResult, first bool) bool {
	if first {
		return true
	}
	switch autolag {
	case LAG_MODE_AIC:
		return model.AIC < cur.AIC
	case LAG_MODE_BIC:
		return model.BIC < cur.BIC
	case LAG_MODE_TSTAT:
		return model.TStats[0] < cur.TStat
	}
	return false
}

// AdfTest ADF检验主函数
// regr: 趋势类型 "n"、"c"、"ct"; maxLag: 最大滞后阶数; autolag: 滞后阶数选择方法; tail: LEFT_TAIL or RIGHT_TAIL
func AdfTest(series []float64, regr string, maxLag int, autolag LagMode, tail string) (ADFResult, error) {
	var crits map[string]float64
	switch tail {
	case LEFT_TAIL:
		crits = adfLeftTailCriticalValues[regr]
	case RIGHT_TAIL:
		crits = adfRightTailCriticalValues[regr]
	default:
		return ADFResult{}, errorx.Newf(errCode.INVALID_VALUE, "未知的检验方向 %q", tail)
	}
	if crits == nil {
		return ADFResult{}, errorx.Newf(errCode.INVALID_VALUE, "未知的趋势类型 %q", regr)
	}
	if autolag == LAG_MODE_ERROR || maxLag < 0 {
		return ADFResult{}, errorx.Newf(errCode.INVALID_VALUE, "非法参数 autolag=%s maxLag=%d", autolag, maxLag)
	}
	if len(series)-1-maxLag < ADF_MIN_OBS {
		return ADFResult{}, errorx.Newf(errCode.INVALID_VALUE, "样本量过小: n=%d maxLag=%d", len(series), maxLag)
	}

	result := ADFResult{
		AIC:       math.Inf(1),
		BIC:       math.Inf(1),
		Method:    autolag,
		Trend:     regr,
		Criticals: crits,
		Tail:      tail,
	}
	dy := diff(series)
	found := false
	for lag := 0; lag <= maxLag; lag++ {
		X, Y := buildADFData(series, dy, regr, lag, maxLag)
		model, err := ols.MultiRegressionMat(X, Y)
		if err != nil {
			continue
		}
		if !better(autolag, model, result, !found) {
			continue
		}
		found = true
		result.Gamma = model.Coeffs[0]
		result.TStat = model.TStats[0]
		result.PValue = model.PValues[0]
		result.AIC = model.AIC
		result.BIC = model.BIC
		result.UsedLag = lag
		result.NObs = Y.Len()
		result.Resid = model.Resids
		result.Coeffs = model.Coeffs
	}

	if !found || math.IsNaN(result.TStat) || math.IsInf(result.TStat, 0) {
		return result, errorx.New(errCode.INVALID_VALUE, "ADF检验失败, 可能样本量过小或数据异常")
	}
	return result, nil
}

// Reject 在 level ("1%", "5%", "10%") 下是否拒绝原假设
// 左尾: 序列平稳; 右尾: 存在爆炸性
func (f ADFResult) Reject(level string) bool {
	c, ok := f.Criticals[level]
	if !ok {
		return false
	}
	if f.Tail == RIGHT_TAIL {
		return f.TStat > c
	}
	return f.TStat < c
}

type ARResult struct {
	P       int
	Coeffs  []float64 // AR 系数在前, 常数项在最后
	AIC     float64
	BIC     float64
	PValues []float64
}

// DetectAR 检验残差是否存在AR(p)结构，按 AIC 选出最佳p
// pMax>=1 但没有任何 AR(p) 拟合成功时返回错误
func DetectAR(resid []float64, pMax int) (bestP int, info []ARResult, err error) {
	n := len(resid)
	if n < 2 {
		return 0, nil, errorx.Newf(errCode.INVALID_VALUE, "样本量过小: n=%d", n)
	}

	// AR(0) 基准模型（白噪声）
	mean := stat.Mean(resid, nil)
	var ss float64
	for _, v := range resid {
		d := v - mean
		ss += d * d
	}
	sigma2 := ss / float64(n)
	// 与 ols 的 AIC 同一口径: -2·loglik + 2k
	logLik := -0.5 * float64(n) * (1 + math.Log(2*math.Pi*sigma2))
	info = append(info, ARResult{
		P:      0,
		Coeffs: []float64{mean},
		AIC:    -2*logLik + 2,
		BIC:    -2*logLik + math.Log(float64(n)),
	})

	bestAIC := info[0].AIC
	for p := 1; p <= pMax; p++ {
		T := n - p
		if T <= p+1 {
			break
		}
		matX := mat.NewDense(T, p+1, nil)
		matY := mat.NewVecDense(T, nil)
		for t := p; t < n; t++ {
			for j := 0; j < p; j++ {
				matX.Set(t-p, j, resid[t-j-1])
			}
			matX.Set(t-p, p, 1) // 常数项
			matY.SetVec(t-p, resid[t])
		}

		model, fitErr := ols.MultiRegressionMat(matX, matY)
		if fitErr != nil {
			err = fitErr
			continue
		}
		info = append(info, ARResult{
			P:       p,
			Coeffs:  model.Coeffs,
			AIC:     model.AIC,
			BIC:     model.BIC,
			PValues: model.PValues,
		})
		if model.AIC < bestAIC {
			bestAIC = model.AIC
			bestP = p
		}
	}
	if pMax >= 1 && len(info) == 1 {
		if err == nil {
			err = errorx.Newf(errCode.INVALID_VALUE, "样本量过小, 无法拟合 AR(1): n=%d", n)
		}
		return 0, info, err
	}
	return bestP, info, nil
}
