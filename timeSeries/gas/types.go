package gas

import "math"

// 高斯分布的位置/尺度参数
type Params struct {
	Loc   float64
	Scale float64
}

// score 反馈系数
type Adjustment struct {
	Loc   float64
	Scale float64
}

// 时变参数路径, 按时间顺序
type ParamPath []Params

func (p Params) Valid() bool {
	return !math.IsNaN(p.Loc) && !math.IsInf(p.Loc, 0) &&
		!math.IsNaN(p.Scale) && !math.IsInf(p.Scale, 0) && p.Scale > 0
}

func (p ParamPath) Locs() []float64 {
	out := make([]float64, len(p))
	for i := range p {
		out[i] = p[i].Loc
	}
	return out
}

func (p ParamPath) Scales() []float64 {
	out := make([]float64, len(p))
	for i := range p {
		out[i] = p[i].Scale
	}
	return out
}
