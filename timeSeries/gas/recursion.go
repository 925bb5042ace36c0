// score驱动的参数递推
//
//	loc[i+1]   = loc[i]   + adjLoc   · gradLoc[i]   / D
//	scale[i+1] = scale[i] + adjScale · gradScale[i] / D
//
// FIT_MODE 下 D = 1, FINAL_MODE 下 D = FINAL_SCORE_DIVISOR
// 状态 0 固定为 seed, 状态 i 只依赖下标 < i 的观测与密度
package gas

import (
	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
)

type Recursion struct {
	Mode      RecursionMode
	Density   DensityMode
	Loc       []float64
	Scale     []float64
	GradLoc   []float64
	GradScale []float64
	StepDens  []float64 // 每一步计算score所用的密度
}

// Recurse 从 seed 出发逐步递推
// density 为基准参数下的逐点密度, UPDATED_DENSITY 模式下可为 nil
func Recurse(series, density []float64, seed Params, adj Adjustment, mode RecursionMode, dm DensityMode) (*Recursion, error) {
	n := len(series)
	if n < MIN_SERIES_LEN {
		return nil, errorx.Newf(errCode.INVALID_INPUT, "series length %d < %d", n, MIN_SERIES_LEN)
	}
	switch dm {
	case BASELINE_DENSITY:
		if len(density) != n {
			return nil, errorx.Newf(errCode.INVALID_VALUE, "density length %d != series length %d", len(density), n)
		}
	case UPDATED_DENSITY:
	default:
		return nil, errorx.Newf(errCode.INVALID_VALUE, "unknown density mode %d", dm)
	}
	divisor, err := modeDivisor(mode)
	if err != nil {
		return nil, err
	}
	return recurse(series, density, seed, adj, divisor, mode, dm), nil
}

func modeDivisor(mode RecursionMode) (float64, error) {
	switch mode {
	case FIT_MODE:
		return 1, nil
	case FINAL_MODE:
		return FINAL_SCORE_DIVISOR, nil
	default:
		return 0, errorx.Newf(errCode.INVALID_VALUE, "unknown recursion mode %d", mode)
	}
}

// 不做校验, 供优化目标函数反复调用
func recurse(series, density []float64, seed Params, adj Adjustment, divisor float64, mode RecursionMode, dm DensityMode) *Recursion {
	n := len(series)
	r := &Recursion{
		Mode:      mode,
		Density:   dm,
		Loc:       make([]float64, n),
		Scale:     make([]float64, n),
		GradLoc:   make([]float64, n),
		GradScale: make([]float64, n),
		StepDens:  make([]float64, n),
	}
	r.Loc[0] = seed.Loc
	r.Scale[0] = seed.Scale

	for i := 0; i < n; i++ {
		var d float64
		if dm == UPDATED_DENSITY {
			d = Density(series[i], r.Loc[i], r.Scale[i])
		} else {
			d = density[i]
		}
		r.StepDens[i] = d

		gl, gs := Score(series[i], r.Loc[i], r.Scale[i], d)
		r.GradLoc[i] = gl / divisor
		r.GradScale[i] = gs / divisor

		if i != n-1 {
			r.Loc[i+1] = r.Loc[i] + adj.Loc*r.GradLoc[i]
			r.Scale[i+1] = r.Scale[i] + adj.Scale*r.GradScale[i]
		}
	}
	return r
}

// Path 去掉 seed 行, 长度 n-1, 对应观测下标 1..n-1
func (r *Recursion) Path() ParamPath {
	if len(r.Loc) == 0 {
		return ParamPath{}
	}
	out := make(ParamPath, len(r.Loc)-1)
	for i := 1; i < len(r.Loc); i++ {
		out[i-1] = Params{Loc: r.Loc[i], Scale: r.Scale[i]}
	}
	return out
}

// Full 含 seed 的完整路径, 长度 n
func (r *Recursion) Full() ParamPath {
	out := make(ParamPath, len(r.Loc))
	for i := range r.Loc {
		out[i] = Params{Loc: r.Loc[i], Scale: r.Scale[i]}
	}
	return out
}
