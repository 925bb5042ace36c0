package gas

import (
	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
	"gasmethod/infra/observe/log/staticLog"
	"gasmethod/ml/nmOptim"
	"gasmethod/pkg/utils/myTools"
)

// 静态(不随时间变化)极大似然估计结果
type BaselineResult struct {
	Params
	LogLik     float64
	Converged  bool
	Status     string
	Iterations int
	FuncEvals  int
}

func validateSeries(series []float64) error {
	if len(series) < MIN_SERIES_LEN {
		return errorx.Newf(errCode.INVALID_INPUT, "series length %d < %d", len(series), MIN_SERIES_LEN)
	}
	if !myTools.AllFinite(series) {
		return errorx.New(errCode.INVALID_INPUT, "series contains NaN or Inf")
	}
	return nil
}

// 负对数似然, x = [loc, scale]
func negLogLikStatic(series []float64) func(x []float64) float64 {
	return func(x []float64) float64 {
		return -LogLikelihood(series, Params{Loc: x[0], Scale: x[1]})
	}
}

// EstimateLocScale 以 Nelder-Mead 求 (loc, scale) 的极大似然估计
// 未收敛时返回当前最优点; scale 不保证为正
func EstimateLocScale(series []float64, opts Options) (BaselineResult, error) {
	if err := validateSeries(series); err != nil {
		return BaselineResult{}, err
	}

	x0 := []float64{opts.Seed.Loc, opts.Seed.Scale}
	res, err := nmOptim.Minimize(negLogLikStatic(series), x0, opts.nmSettings())
	if err != nil {
		return BaselineResult{}, err
	}

	out := BaselineResult{
		Params:     Params{Loc: res.X[0], Scale: res.X[1]},
		LogLik:     -res.F,
		Converged:  res.Converged,
		Status:     res.Status.String(),
		Iterations: res.MajorIterations,
		FuncEvals:  res.FuncEvaluations,
	}
	staticLog.Log.Debugf("gas baseline: loc=%.8f scale=%.8f loglik=%.6f status=%s iter=%d",
		out.Loc, out.Scale, out.LogLik, out.Status, out.Iterations)

	if !out.Converged {
		staticLog.Log.Warnf("gas baseline: nelder-mead stopped with %s, using best point", out.Status)
		if opts.Strict {
			return out, errorx.Newf(errCode.DID_NOT_CONVERGE, "baseline estimation stopped with %s", out.Status)
		}
	}
	if !out.Params.Valid() {
		staticLog.Log.Warnf("gas baseline: degenerate scale %.8f", out.Scale)
	}
	return out, nil
}
