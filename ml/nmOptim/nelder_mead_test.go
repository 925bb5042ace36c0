package nmOptim

import (
	"math"
	"testing"

	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"
)

func TestInitialSimplex(t *testing.T) {
	sim := InitialSimplex([]float64{0.0, 0.01})
	require.Len(t, sim, 3)
	assert.Equal(t, []float64{0.0, 0.01}, sim[0])
	assert.Equal(t, []float64{0.00025, 0.01}, sim[1])
	assert.InDelta(t, 0.0105, sim[2][1], 1e-15)
	assert.Equal(t, 0.0, sim[2][0])

	sim = InitialSimplex([]float64{0, 0})
	assert.Equal(t, [][]float64{{0, 0}, {0.00025, 0}, {0, 0.00025}}, sim)
}

func TestMinimizeQuadratic(t *testing.T) {
	fn := func(x []float64) float64 {
		return (x[0]-1)*(x[0]-1) + 3*(x[1]+2)*(x[1]+2)
	}
	res, err := Minimize(fn, []float64{0, 0}, Settings{Tol: 1e-12, MaxIter: 2000})
	require.NoError(t, err)
	t.Log("quadratic:", res.X, res.F, res.Status, res.MajorIterations)
	assert.InDelta(t, 1, res.X[0], 1e-4)
	assert.InDelta(t, -2, res.X[1], 1e-4)
	assert.True(t, res.Converged)
}

func TestMinimizeRosenbrock(t *testing.T) {
	fn := func(x []float64) float64 {
		a := 1 - x[0]
		b := x[1] - x[0]*x[0]
		return a*a + 100*b*b
	}
	res, err := Minimize(fn, []float64{-1.2, 1}, Settings{Tol: 1e-10, MaxIter: 5000})
	require.NoError(t, err)
	t.Log("rosenbrock:", res.X, res.F, res.Status, res.MajorIterations)
	assert.InDelta(t, 1, res.X[0], 1e-3)
	assert.InDelta(t, 1, res.X[1], 1e-3)
	assert.True(t, res.Converged)
	assert.Equal(t, optimize.MethodConverge, res.Status)
}

// 极小点紧贴起点且初始顶点远差于起点:
// 单纯形先向起点收缩, 最优值多次迭代不变, 不能据此判定收敛
func TestMinimizeEscapesStartWhenMinimumIsClose(t *testing.T) {
	fn := func(x []float64) float64 {
		a := x[0] + 3e-6
		b := x[1] - 1e-6
		return 1e12 * (a*a + b*b)
	}
	res, err := Minimize(fn, []float64{0, 0}, DefaultSettings())
	require.NoError(t, err)
	t.Log("close minimum:", res.X, res.F, res.Status, res.MajorIterations, res.FuncEvaluations)

	assert.True(t, res.Converged)
	assert.NotEqual(t, []float64{0, 0}, res.X)
	assert.InDelta(t, -3e-6, res.X[0], 1e-8)
	assert.InDelta(t, 1e-6, res.X[1], 1e-8)
	assert.Less(t, res.F, fn([]float64{0, 0})*1e-3)
}

func TestSimplexConvergedRule(t *testing.T) {
	m := newSimplexMethod([]float64{0, 0}, 1e-6)
	m.vertices = [][]float64{{0, 0}, {5e-7, 0}, {0, 5e-7}}
	m.values = []float64{1, 1 + 5e-7, 1 + 9e-7}
	assert.True(t, m.converged())

	// 函数值已平但单纯形仍大
	m.vertices = [][]float64{{0, 0}, {1e-3, 0}, {0, 5e-7}}
	assert.False(t, m.converged())

	// 单纯形已小但函数值差大
	m.vertices = [][]float64{{0, 0}, {5e-7, 0}, {0, 5e-7}}
	m.values = []float64{1, 1.1, 1}
	assert.False(t, m.converged())
}

func TestMinimizeIterationLimitReturnsBest(t *testing.T) {
	fn := func(x []float64) float64 {
		return math.Abs(x[0]-100) + math.Abs(x[1]+100)
	}
	start := fn([]float64{0, 0})
	res, err := Minimize(fn, []float64{0, 0}, Settings{MaxIter: 5})
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.LessOrEqual(t, res.F, start)
	assert.Len(t, res.X, 2)
}

func TestMinimizeBadInput(t *testing.T) {
	_, err := Minimize(func([]float64) float64 { return 0 }, nil, DefaultSettings())
	assert.True(t, errorx.Is(err, errCode.EMPTY_VALUE))
	_, err = Minimize(nil, []float64{1}, DefaultSettings())
	assert.True(t, errorx.Is(err, errCode.INVALID_VALUE))
}
