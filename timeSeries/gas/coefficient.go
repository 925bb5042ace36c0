package gas

import (
	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
	"gasmethod/infra/observe/log/staticLog"
	"gasmethod/ml/nmOptim"
)

type AdjustmentResult struct {
	Adjustment
	LogLik     float64 // 时变参数下的对数似然
	Converged  bool
	Status     string
	Iterations int
	FuncEvals  int
}

// 负对数似然, x = [adjLoc, adjScale]
// 递推 score 用 density (基准密度), 似然用时变参数重新计算的密度
func negLogLikAdjust(series, density []float64, seed Params, dm DensityMode) func(x []float64) float64 {
	return func(x []float64) float64 {
		r := recurse(series, density, seed, Adjustment{Loc: x[0], Scale: x[1]}, 1, FIT_MODE, dm)
		return -LogLik(DensityPath(series, r.Loc, r.Scale))
	}
}

// EstimateAdjustment 从 (0,0) 出发搜索使时变似然最大的反馈系数
func EstimateAdjustment(series, density []float64, seed Params, opts Options) (AdjustmentResult, error) {
	if err := validateSeries(series); err != nil {
		return AdjustmentResult{}, err
	}
	if opts.Density != UPDATED_DENSITY && len(density) != len(series) {
		return AdjustmentResult{}, errorx.Newf(errCode.INVALID_VALUE,
			"density length %d != series length %d", len(density), len(series))
	}

	fn := negLogLikAdjust(series, density, seed, opts.Density)
	res, err := nmOptim.Minimize(fn, []float64{0, 0}, opts.nmSettings())
	if err != nil {
		return AdjustmentResult{}, err
	}

	out := AdjustmentResult{
		Adjustment: Adjustment{Loc: res.X[0], Scale: res.X[1]},
		LogLik:     -res.F,
		Converged:  res.Converged,
		Status:     res.Status.String(),
		Iterations: res.MajorIterations,
		FuncEvals:  res.FuncEvaluations,
	}
	staticLog.Log.Debugf("gas adjustment: adjLoc=%.6g adjScale=%.6g loglik=%.6f status=%s iter=%d",
		out.Loc, out.Scale, out.LogLik, out.Status, out.Iterations)

	if !out.Converged {
		staticLog.Log.Warnf("gas adjustment: nelder-mead stopped with %s, using best point", out.Status)
		if opts.Strict {
			return out, errorx.Newf(errCode.DID_NOT_CONVERGE, "adjustment estimation stopped with %s", out.Status)
		}
	}
	return out, nil
}
