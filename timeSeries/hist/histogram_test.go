package hist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHist(t *testing.T) {
	data := []float64{0, 0.5, 1, 1.5, 2, math.NaN(), math.Inf(-1)}
	bins, err := Hist(data, 2)
	require.NoError(t, err)
	require.Len(t, bins, 2)
	assert.Equal(t, 2, bins[0].Count) // 0, 0.5
	assert.Equal(t, 3, bins[1].Count) // 1, 1.5, 2
	assert.InDelta(t, 0.4, bins[0].Freq, 1e-12)
	assert.Equal(t, 0.0, bins[0].From)
	assert.Equal(t, 2.0, bins[1].To)
}

func TestHistConstant(t *testing.T) {
	bins, err := Hist([]float64{3, 3, 3}, 4)
	require.NoError(t, err)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 3, bins[0].Count)
}

func TestHistErrors(t *testing.T) {
	_, err := Hist([]float64{1}, 0)
	assert.Error(t, err)
	_, err = Hist([]float64{math.NaN()}, 3)
	assert.Error(t, err)
}
