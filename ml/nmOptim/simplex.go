package nmOptim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

var (
	_ optimize.Method   = (*simplexMethod)(nil)
	_ optimize.Statuser = (*simplexMethod)(nil)
)

// simplexMethod 以 gonum optimize.Method 的反向通信方式运行 Nelder-Mead
// 停止条件: 顶点坐标离散度 <= tol 且 函数值离散度 <= tol
// 迭代次数与函数调用次数上限由 optimize.Settings 控制
type simplexMethod struct {
	tol      float64
	vertices [][]float64 // 按函数值升序
	values   []float64

	status optimize.Status
	err    error
}

func newSimplexMethod(x0 []float64, tol float64) *simplexMethod {
	m := &simplexMethod{
		tol:      tol,
		vertices: InitialSimplex(x0),
		values:   make([]float64, len(x0)+1),
	}
	for i := range m.values {
		m.values[i] = math.Inf(1)
	}
	return m
}

func (m *simplexMethod) Status() (optimize.Status, error) {
	return m.status, m.err
}

func (*simplexMethod) Uses(has optimize.Available) (optimize.Available, error) {
	return optimize.Available{}, nil
}

func (m *simplexMethod) Init(dim, tasks int) int {
	m.status = optimize.NotTerminated
	m.err = nil
	return 1
}

func (m *simplexMethod) Run(operation chan<- optimize.Task, result <-chan optimize.Task, tasks []optimize.Task) {
	m.status, m.err = m.run(operation, result, tasks[0])
	// result 关闭后再关闭 operation
	for range result {
	}
	close(operation)
}

// 当前最优顶点, 未评估时 f 为 +Inf
func (m *simplexMethod) best() ([]float64, float64) {
	i := floats.MinIdx(m.values)
	return append([]float64(nil), m.vertices[i]...), m.values[i]
}

func (m *simplexMethod) converged() bool {
	for i := 1; i < len(m.vertices); i++ {
		if math.Abs(m.values[i]-m.values[0]) > m.tol {
			return false
		}
		if floats.Distance(m.vertices[i], m.vertices[0], math.Inf(1)) > m.tol {
			return false
		}
	}
	return true
}

func (m *simplexMethod) sort() {
	sort.Stable(vertexSorter{m.vertices, m.values})
}

// x = xbar + coef*(xbar - worst)
func stepFrom(xbar, worst []float64, coef float64) []float64 {
	x := make([]float64, len(xbar))
	floats.SubTo(x, xbar, worst)
	floats.Scale(coef, x)
	floats.Add(x, xbar)
	return x
}

func (m *simplexMethod) run(operation chan<- optimize.Task, result <-chan optimize.Task, task optimize.Task) (optimize.Status, error) {
	loc := task.Location
	dim := len(loc.X)

	// 返回 false 表示 Minimize 已终止
	eval := func(x []float64) (float64, bool) {
		copy(loc.X, x)
		task.Op = optimize.FuncEvaluation
		operation <- task
		r := <-result
		if r.Op == optimize.PostIteration {
			return 0, false
		}
		if math.IsNaN(r.F) {
			return math.Inf(1), true
		}
		return r.F, true
	}
	major := func() bool {
		copy(loc.X, m.vertices[0])
		loc.F = m.values[0]
		task.Op = optimize.MajorIteration
		operation <- task
		return (<-result).Op != optimize.PostIteration
	}

	for i, v := range m.vertices {
		f, ok := eval(v)
		if !ok {
			return optimize.NotTerminated, nil
		}
		m.values[i] = f
	}
	m.sort()
	if !major() {
		return optimize.NotTerminated, nil
	}

	xbar := make([]float64, dim)
	for {
		if m.converged() {
			task.Op = optimize.MethodDone
			operation <- task
			return optimize.MethodConverge, nil
		}

		// 除最差点外的质心
		for j := range xbar {
			xbar[j] = 0
		}
		for i := 0; i < dim; i++ {
			floats.Add(xbar, m.vertices[i])
		}
		floats.Scale(1/float64(dim), xbar)
		worst := m.vertices[dim]

		xr := stepFrom(xbar, worst, NM_REFLECT)
		fr, ok := eval(xr)
		if !ok {
			return optimize.NotTerminated, nil
		}

		shrink := false
		switch {
		case fr < m.values[0]:
			xe := stepFrom(xbar, worst, NM_REFLECT*NM_EXPAND)
			fe, ok := eval(xe)
			if !ok {
				return optimize.NotTerminated, nil
			}
			if fe < fr {
				m.vertices[dim], m.values[dim] = xe, fe
			} else {
				m.vertices[dim], m.values[dim] = xr, fr
			}
		case fr < m.values[dim-1]:
			m.vertices[dim], m.values[dim] = xr, fr
		case fr < m.values[dim]:
			// 外收缩
			xc := stepFrom(xbar, worst, NM_REFLECT*NM_CONTRACT)
			fc, ok := eval(xc)
			if !ok {
				return optimize.NotTerminated, nil
			}
			if fc <= fr {
				m.vertices[dim], m.values[dim] = xc, fc
			} else {
				shrink = true
			}
		default:
			// 内收缩
			xcc := stepFrom(xbar, worst, -NM_CONTRACT)
			fcc, ok := eval(xcc)
			if !ok {
				return optimize.NotTerminated, nil
			}
			if fcc < m.values[dim] {
				m.vertices[dim], m.values[dim] = xcc, fcc
			} else {
				shrink = true
			}
		}

		if shrink {
			for i := 1; i <= dim; i++ {
				x := make([]float64, dim)
				floats.SubTo(x, m.vertices[i], m.vertices[0])
				floats.Scale(NM_SHRINK, x)
				floats.Add(x, m.vertices[0])
				f, ok := eval(x)
				if !ok {
					return optimize.NotTerminated, nil
				}
				m.vertices[i], m.values[i] = x, f
			}
		}

		m.sort()
		if !major() {
			return optimize.NotTerminated, nil
		}
	}
}

type vertexSorter struct {
	vertices [][]float64
	values   []float64
}

func (s vertexSorter) Len() int           { return len(s.values) }
func (s vertexSorter) Less(i, j int) bool { return s.values[i] < s.values[j] }
func (s vertexSorter) Swap(i, j int) {
	s.values[i], s.values[j] = s.values[j], s.values[i]
	s.vertices[i], s.vertices[j] = s.vertices[j], s.vertices[i]
}
