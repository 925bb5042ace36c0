package gas

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// SafeLn 对数, d 非正、NaN 或 +Inf 时返回 LOG_SENTINEL
func SafeLn(d float64) float64 {
	if !(d > 0) || math.IsInf(d, 1) {
		return LOG_SENTINEL
	}
	return math.Log(d)
}

// 高斯密度 N(loc, scale^2) 在 x 处的值, scale<=0 时为 NaN 或 0
func Density(x, loc, scale float64) float64 {
	return distuv.Normal{Mu: loc, Sigma: scale}.Prob(x)
}

// 固定参数下逐点密度
func DensityVec(series []float64, p Params) []float64 {
	out := make([]float64, len(series))
	norm := distuv.Normal{Mu: p.Loc, Sigma: p.Scale}
	for i, x := range series {
		out[i] = norm.Prob(x)
	}
	return out
}

// 时变参数下逐点密度, locs/scales 与 series 等长
func DensityPath(series, locs, scales []float64) []float64 {
	out := make([]float64, len(series))
	for i, x := range series {
		out[i] = Density(x, locs[i], scales[i])
	}
	return out
}

// 对数似然: Σ SafeLn(density)
func LogLik(density []float64) float64 {
	sum := 0.0
	for _, d := range density {
		sum += SafeLn(d)
	}
	return sum
}

func LogLikelihood(series []float64, p Params) float64 {
	return LogLik(DensityVec(series, p))
}
