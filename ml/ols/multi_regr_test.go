package ols

import (
	"math"
	"math/rand/v2"
	"testing"

	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMultiRegressionMat(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	n := 400
	X := mat.NewDense(n, 3, nil)
	Y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x1, x2 := rng.NormFloat64(), rng.NormFloat64()
		X.Set(i, 0, 1)
		X.Set(i, 1, x1)
		X.Set(i, 2, x2)
		Y.SetVec(i, 1.5+2*x1-0.5*x2+0.01*rng.NormFloat64())
	}

	m, err := MultiRegressionMat(X, Y)
	require.NoError(t, err)
	require.Len(t, m.Coeffs, 3)
	assert.InDelta(t, 1.5, m.Coeffs[0], 0.01)
	assert.InDelta(t, 2.0, m.Coeffs[1], 0.01)
	assert.InDelta(t, -0.5, m.Coeffs[2], 0.01)
	assert.Greater(t, m.RSquared, 0.99)
	assert.Less(t, m.PValues[1], 1e-6)
	assert.Len(t, m.Resids, n)
	assert.Less(t, m.AIC, m.BIC)
	t.Log(m.Coeffs, m.SE, m.TStats)
}

// 完全共线时走广义逆
func TestMultiRegressionCollinear(t *testing.T) {
	n := 20
	data := make([]float64, 0, 3*n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		data = append(data, 1, x, 2*x)
		y[i] = 3 + x
	}
	m, err := MultiRegressionMat(mat.NewDense(n, 3, data), mat.NewVecDense(n, y))
	require.NoError(t, err)
	for i, r := range m.Resids {
		assert.InDelta(t, 0, r, 1e-6, "resid %d", i)
	}
	assert.False(t, math.IsNaN(m.Coeffs[0]))
}

func TestMultiRegressionMatInvalid(t *testing.T) {
	_, err := MultiRegressionMat(mat.NewDense(2, 1, []float64{1, 2}), mat.NewVecDense(3, nil))
	assert.True(t, errorx.Is(err, errCode.INVALID_VALUE))

	// n <= k
	_, err = MultiRegressionMat(mat.NewDense(2, 2, []float64{1, 1, 1, 2}), mat.NewVecDense(2, []float64{1, 2}))
	assert.True(t, errorx.Is(err, errCode.INVALID_VALUE))
}
