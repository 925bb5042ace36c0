// GAS(1,1)式 score驱动时变参数估计
//
//	收益序列 → 静态极大似然 (loc*, scale*) → 基准密度
//	        → 搜索反馈系数 (adjLoc, adjScale)
//	        → final递推 → 时变 (loc, scale) 路径
package gas

import (
	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
	"gasmethod/infra/observe/log/staticLog"
)

type GASResult struct {
	Baseline    BaselineResult
	BaseDensity []float64 // 基准参数下的逐点密度
	Adjustment  AdjustmentResult
	Final       *Recursion // 含 seed 的完整递推
	Path        ParamPath  // 去掉 seed, 长度 n-1
	Diagnostics Diagnostics
}

// EstimateBaseline 只做静态拟合
func EstimateBaseline(series []float64, opts ...Option) (BaselineResult, error) {
	o := NewOptions(opts...)
	return EstimateLocScale(append([]float64(nil), series...), o)
}

// GasModel 完整流程, 不修改入参
func GasModel(series []float64, opts ...Option) (*GASResult, error) {
	o := NewOptions(opts...)
	if o.Scaling == SCALING_ERROR {
		return nil, errorx.New(errCode.INVALID_VALUE, "unknown scaling mode")
	}
	if o.Density == DENSITY_ERROR {
		return nil, errorx.New(errCode.INVALID_VALUE, "unknown density mode")
	}
	ret := append([]float64(nil), series...)
	if err := validateSeries(ret); err != nil {
		return nil, err
	}

	base, err := EstimateLocScale(ret, o)
	if err != nil {
		return nil, err
	}
	seed := base.Params
	density := DensityVec(ret, seed)

	adj, err := EstimateAdjustment(ret, density, seed, o)
	if err != nil {
		return nil, err
	}

	mode := FINAL_MODE
	if o.Scaling == SCALING_CONSISTENT {
		mode = FIT_MODE
	}
	final, err := Recurse(ret, density, seed, adj.Adjustment, mode, o.Density)
	if err != nil {
		return nil, err
	}

	res := &GASResult{
		Baseline:    base,
		BaseDensity: density,
		Adjustment:  adj,
		Final:       final,
		Path:        final.Path(),
	}

	res.Diagnostics, err = Diagnose(ret, res.Path, o.Lags, o.Bins)
	if err != nil {
		return nil, err
	}
	if cnt := res.Diagnostics.Degenerate.Count(); cnt > 0 {
		staticLog.Log.Warnf("gas: %d of %d path points have non-positive or non-finite scale", cnt, len(res.Path))
		if o.Strict {
			return res, errorx.Newf(errCode.DEGENERATE_PATH, "%d degenerate path points", cnt)
		}
	}
	staticLog.Log.Debugf("gas: n=%d scaling=%s density=%s path=%d", len(ret), o.Scaling, o.Density, len(res.Path))
	return res, nil
}
