package hist

import (
	"math"

	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
)

// HistogramBin 每个分箱, 区间 [From, To), 最后一箱含右端点
type HistogramBin struct {
	From  float64
	To    float64
	Count int
	Freq  float64 // Count / 有效样本数
}

// Hist 等宽分箱, 跳过 NaN/Inf
func Hist(data []float64, bins int) ([]HistogramBin, error) {
	if bins <= 0 {
		return nil, errorx.New(errCode.INVALID_VALUE, "bins must be > 0")
	}

	minV, maxV := math.Inf(1), math.Inf(-1)
	valid := 0
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		valid++
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if valid == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "no finite value to bin")
	}
	// 避免 max == min 导致除0
	if maxV == minV {
		maxV = minV + 1e-9
	}

	width := (maxV - minV) / float64(bins)
	result := make([]HistogramBin, bins)
	for i := range result {
		result[i].From = minV + float64(i)*width
		result[i].To = minV + float64(i+1)*width
	}

	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		idx := int(math.Floor((v - minV) / width))
		if idx >= bins { // v == maxV
			idx = bins - 1
		}
		result[idx].Count++
	}
	for i := range result {
		result[i].Freq = float64(result[i].Count) / float64(valid)
	}
	return result, nil
}
