package acf

import (
	"math"
	"math/rand/v2"
	"testing"

	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoCorrKnownValues(t *testing.T) {
	// 均值 2.5, 偏差 -1.5 -0.5 0.5 1.5, Σu²=5
	x := []float64{1, 2, 3, 4}
	acf, err := AutoCorr(x, 2)
	require.NoError(t, err)
	require.Len(t, acf, 3)
	assert.InDelta(t, 1.0, acf[0], 1e-12)
	assert.InDelta(t, 0.25, acf[1], 1e-12)  // (0.75-0.25+0.75)/5
	assert.InDelta(t, -0.3, acf[2], 1e-12) // (-0.75-0.75)/5
}

func TestAutoCorrFFTMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	x := make([]float64, 777)
	for i := range x {
		x[i] = rng.NormFloat64()
		if i > 0 {
			x[i] += 0.6 * x[i-1]
		}
	}
	direct, err := AutoCorr(x, 30)
	require.NoError(t, err)
	fast, err := AutoCorrFFT(x, 30)
	require.NoError(t, err)
	require.Len(t, fast, len(direct))
	for k := range direct {
		assert.InDelta(t, direct[k], fast[k], 1e-9, "lag %d", k)
	}
	assert.Greater(t, direct[1], 0.4)
}

func TestAutoCorrErrors(t *testing.T) {
	_, err := AutoCorr(nil, 3)
	assert.True(t, errorx.Is(err, errCode.EMPTY_VALUE))
	_, err = AutoCorr([]float64{1, 2}, 0)
	assert.True(t, errorx.Is(err, errCode.INVALID_VALUE))
	_, err = AutoCorrFFT([]float64{3, 3, 3}, 1)
	assert.True(t, errorx.Is(err, errCode.INVALID_VALUE))

	acf, err := AutoCorr([]float64{1, 3, 2}, 10)
	require.NoError(t, err)
	assert.Len(t, acf, 3)
}

func TestLjungBox(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	white := make([]float64, 1000)
	ar := make([]float64, 1000)
	for i := range white {
		white[i] = rng.NormFloat64()
		ar[i] = white[i]
		if i > 0 {
			ar[i] += 0.8 * ar[i-1]
		}
	}

	res, err := LjungBoxTest(ar, 10, 0.05)
	require.NoError(t, err)
	t.Log("AR(1):", res.Q, res.PValue)
	assert.True(t, res.Reject)
	assert.Less(t, res.PValue, 1e-6)

	res, err = LjungBoxTest(white, 10, 0.05)
	require.NoError(t, err)
	t.Log("white:", res.Q, res.PValue)
	assert.False(t, math.IsNaN(res.Q))
	assert.GreaterOrEqual(t, res.PValue, 0.0)
	assert.LessOrEqual(t, res.PValue, 1.0)

	_, err = LjungBoxTest(white[:5], 10, 0.05)
	assert.True(t, errorx.Is(err, errCode.INVALID_VALUE))
}
