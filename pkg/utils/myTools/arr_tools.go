package myTools

import (
	"math"
	"sort"

	"github.com/bits-and-blooms/bitset"
	oldstat "github.com/gonum/stat"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// 均值, 空序列返回 NaN
func ArrMean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return oldstat.Mean(x, nil)
}

// 样本标准差 (n-1)
func ArrStd(x []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.StdDev(x, nil)
}

// Welford 在线算法求总体方差 (n)
func WelfordVariancePopulation(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	var mean, m2 float64
	for i, v := range x {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}
	return m2 / float64(len(x))
}

func AllFinite(x []float64) bool {
	if len(x) == 0 {
		return true
	}
	return !floats.HasNaN(x) && floats.Min(x) > math.Inf(-1) && floats.Max(x) < math.Inf(1)
}

// 有限值位置置 1
func MaskFinite(x []float64) *bitset.BitSet {
	mask := bitset.New(uint(len(x)))
	for i, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			mask.Set(uint(i))
		}
	}
	return mask
}

// 按 mask 取值
func Compress(x []float64, mask *bitset.BitSet) []float64 {
	out := make([]float64, 0, mask.Count())
	for i, e := mask.NextSet(0); e; i, e = mask.NextSet(i + 1) {
		if int(i) < len(x) {
			out = append(out, x[i])
		}
	}
	return out
}

// 经验分位数, 先剔除非有限值, 不修改入参
func Quantile(x []float64, p float64) float64 {
	v := Compress(x, MaskFinite(x))
	if len(v) == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	sort.Float64s(v)
	return stat.Quantile(p, stat.Empirical, v, nil)
}
