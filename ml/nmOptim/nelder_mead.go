// Nelder-Mead 单纯形法, 无导数优化
// 在 gonum optimize 框架内运行, 初始单纯形按坐标尺度构造:
//
//	v0 = x0
//	vk = x0, 第k维 x0[k]*(1+0.05), x0[k]==0 时取 0.00025
//
// 收敛判据: 所有顶点与最优顶点的坐标差和函数值差都不超过 Tol
// 只看最优值是否改善会在单纯形收缩阶段误判收敛
package nmOptim

import (
	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"

	"gonum.org/v1/gonum/optimize"
)

type Settings struct {
	Tol     float64 // 函数值收敛容差
	MaxIter int     // 最大迭代次数与函数调用次数, 0 取 200*dim
}

type Result struct {
	X               []float64
	F               float64
	Status          optimize.Status
	Converged       bool // 单纯形收缩到容差以内而停止
	MajorIterations int
	FuncEvaluations int
}

func DefaultSettings() Settings {
	return Settings{Tol: DEFAULT_TOL}
}

// 初始单纯形, dim+1 个顶点
func InitialSimplex(x0 []float64) [][]float64 {
	dim := len(x0)
	sim := make([][]float64, dim+1)
	sim[0] = append([]float64(nil), x0...)
	for k := 0; k < dim; k++ {
		v := append([]float64(nil), x0...)
		if v[k] != 0 {
			v[k] = (1 + NONZERO_SIMPLEX_STEP) * v[k]
		} else {
			v[k] = ZERO_SIMPLEX_STEP
		}
		sim[k+1] = v
	}
	return sim
}

// Minimize 最小化 fn, 未收敛时返回迄今最优点, 不报错
// fn 不得持有入参切片
func Minimize(fn func(x []float64) float64, x0 []float64, s Settings) (Result, error) {
	dim := len(x0)
	if dim == 0 {
		return Result{}, errorx.New(errCode.EMPTY_VALUE, "nelder-mead: x0 is empty")
	}
	if fn == nil {
		return Result{}, errorx.New(errCode.INVALID_VALUE, "nelder-mead: objective is nil")
	}
	if s.Tol <= 0 {
		s.Tol = DEFAULT_TOL
	}
	if s.MaxIter <= 0 {
		s.MaxIter = ITER_PER_DIM * dim
	}

	method := newSimplexMethod(x0, s.Tol)
	problem := optimize.Problem{Func: fn}
	settings := &optimize.Settings{
		Converger:       optimize.NeverTerminate{},
		MajorIterations: s.MaxIter,
		FuncEvaluations: s.MaxIter,
	}

	res, err := optimize.Minimize(problem, x0, settings, method)
	if res == nil {
		return Result{}, errorx.Wrap(errCode.INVALID_VALUE, err, "nelder-mead: optimization not started")
	}

	out := Result{
		X:               append([]float64(nil), res.X...),
		F:               res.F,
		Status:          res.Status,
		Converged:       err == nil && res.Status == optimize.MethodConverge,
		MajorIterations: res.MajorIterations,
		FuncEvaluations: res.FuncEvaluations,
	}
	// 达到上限时 gonum 只记录最近一次 MajorIteration, 以单纯形当前最优点为准
	if x, f := method.best(); f < out.F {
		out.X, out.F = x, f
	}
	return out, nil
}
