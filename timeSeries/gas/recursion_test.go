package gas

import (
	"math/rand/v2"
	"testing"

	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSeries(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.001 + 0.02*rng.NormFloat64()
	}
	return out
}

func TestRecurseZeroAdjustmentIsConstant(t *testing.T) {
	series := randomSeries(40, 3)
	seed := Params{Loc: 0.0012, Scale: 0.019}
	density := DensityVec(series, seed)

	for _, mode := range []RecursionMode{FIT_MODE, FINAL_MODE} {
		for _, dm := range []DensityMode{BASELINE_DENSITY, UPDATED_DENSITY} {
			r, err := Recurse(series, density, seed, Adjustment{}, mode, dm)
			require.NoError(t, err)
			for i := range series {
				assert.Equal(t, seed.Loc, r.Loc[i], "%s/%s i=%d", mode, dm, i)
				assert.Equal(t, seed.Scale, r.Scale[i], "%s/%s i=%d", mode, dm, i)
			}
			for _, p := range r.Path() {
				assert.Equal(t, seed, p)
			}
		}
	}
}

func TestRecurseTransition(t *testing.T) {
	series := []float64{0.01, 0.02, -0.01}
	density := []float64{20, 15, 10}
	seed := Params{Loc: 0, Scale: 0.01}
	adj := Adjustment{Loc: 1e-4, Scale: 1e-7}

	r, err := Recurse(series, density, seed, adj, FIT_MODE, BASELINE_DENSITY)
	require.NoError(t, err)

	gl0, gs0 := Score(series[0], seed.Loc, seed.Scale, density[0])
	assert.Equal(t, gl0, r.GradLoc[0])
	assert.Equal(t, gs0, r.GradScale[0])
	assert.Equal(t, seed.Loc+adj.Loc*gl0, r.Loc[1])
	assert.Equal(t, seed.Scale+adj.Scale*gs0, r.Scale[1])

	gl1, gs1 := Score(series[1], r.Loc[1], r.Scale[1], density[1])
	assert.Equal(t, r.Loc[1]+adj.Loc*gl1, r.Loc[2])
	assert.Equal(t, r.Scale[1]+adj.Scale*gs1, r.Scale[2])

	// 最后一步的 score 也会计算
	gl2, _ := Score(series[2], r.Loc[2], r.Scale[2], density[2])
	assert.Equal(t, gl2, r.GradLoc[2])
	assert.Equal(t, density, r.StepDens)
}

func TestRecurseFinalModeDividesScore(t *testing.T) {
	series := randomSeries(20, 5)
	seed := Params{Loc: 0.001, Scale: 0.02}
	density := DensityVec(series, seed)
	adj := Adjustment{Loc: 2e-5, Scale: 3e-8}

	fit, err := Recurse(series, density, seed, adj, FIT_MODE, BASELINE_DENSITY)
	require.NoError(t, err)
	final, err := Recurse(series, density, seed, adj, FINAL_MODE, BASELINE_DENSITY)
	require.NoError(t, err)
	assert.Equal(t, FINAL_MODE, final.Mode)

	assert.InEpsilon(t, fit.GradLoc[0], final.GradLoc[0]*FINAL_SCORE_DIVISOR, 1e-12)
	assert.InEpsilon(t, fit.GradScale[0], final.GradScale[0]*FINAL_SCORE_DIVISOR, 1e-12)

	// final(adj) 等价于 fit(adj/1e6)
	scaled, err := Recurse(series, density, seed,
		Adjustment{Loc: adj.Loc / FINAL_SCORE_DIVISOR, Scale: adj.Scale / FINAL_SCORE_DIVISOR}, FIT_MODE, BASELINE_DENSITY)
	require.NoError(t, err)
	for i := range series {
		assert.InDelta(t, scaled.Loc[i], final.Loc[i], 1e-15)
		assert.InDelta(t, scaled.Scale[i], final.Scale[i], 1e-15)
	}
}

func TestRecurseCausality(t *testing.T) {
	n := 30
	series := randomSeries(n, 9)
	seed := Params{Loc: 0.001, Scale: 0.02}
	density := DensityVec(series, seed)
	adj := Adjustment{Loc: 1e-5, Scale: 1e-8}

	for _, dm := range []DensityMode{BASELINE_DENSITY, UPDATED_DENSITY} {
		for _, mode := range []RecursionMode{FIT_MODE, FINAL_MODE} {
			base, err := Recurse(series, density, seed, adj, mode, dm)
			require.NoError(t, err)

			for cut := 1; cut < n; cut++ {
				s2 := append([]float64(nil), series...)
				d2 := append([]float64(nil), density...)
				for j := cut; j < n; j++ {
					s2[j] = -s2[j] * 3
					d2[j] = d2[j] / 7
				}
				r, err := Recurse(s2, d2, seed, adj, mode, dm)
				require.NoError(t, err)
				for i := 0; i <= cut; i++ {
					require.Equal(t, base.Loc[i], r.Loc[i], "%s/%s cut=%d i=%d", mode, dm, cut, i)
					require.Equal(t, base.Scale[i], r.Scale[i], "%s/%s cut=%d i=%d", mode, dm, cut, i)
				}
			}
		}
	}
}

func TestRecursePathLength(t *testing.T) {
	for _, n := range []int{2, 3, 8, 101} {
		series := randomSeries(n, uint64(n))
		seed := Params{Loc: 0, Scale: 0.02}
		r, err := Recurse(series, DensityVec(series, seed), seed, Adjustment{Loc: 1e-3, Scale: 1e-3}, FINAL_MODE, BASELINE_DENSITY)
		require.NoError(t, err)
		path := r.Path()
		require.Len(t, path, n-1)
		full := r.Full()
		require.Len(t, full, n)
		assert.Equal(t, seed, full[0])
		for k := range path {
			assert.Equal(t, full[k+1], path[k])
		}
	}
}

func TestRecurseErrors(t *testing.T) {
	seed := Params{Loc: 0, Scale: 0.01}
	_, err := Recurse([]float64{0.1}, []float64{1}, seed, Adjustment{}, FIT_MODE, BASELINE_DENSITY)
	assert.True(t, errorx.Is(err, errCode.INVALID_INPUT))

	_, err = Recurse([]float64{0.1, 0.2}, []float64{1}, seed, Adjustment{}, FIT_MODE, BASELINE_DENSITY)
	assert.True(t, errorx.Is(err, errCode.INVALID_VALUE))

	_, err = Recurse([]float64{0.1, 0.2}, nil, seed, Adjustment{}, RecursionMode(9), UPDATED_DENSITY)
	assert.True(t, errorx.Is(err, errCode.INVALID_VALUE))

	_, err = Recurse([]float64{0.1, 0.2}, nil, seed, Adjustment{}, FIT_MODE, DENSITY_ERROR)
	assert.True(t, errorx.Is(err, errCode.INVALID_VALUE))

	r, err := Recurse([]float64{0.1, 0.2}, nil, seed, Adjustment{}, FIT_MODE, UPDATED_DENSITY)
	require.NoError(t, err)
	assert.Len(t, r.Path(), 1)
}

func BenchmarkRecurseFit(b *testing.B) {
	series := randomSeries(500, 1)
	seed := Params{Loc: 0.001, Scale: 0.02}
	density := DensityVec(series, seed)
	adj := Adjustment{Loc: 1e-5, Scale: 1e-8}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = recurse(series, density, seed, adj, 1, FIT_MODE, BASELINE_DENSITY)
	}
}
