// 价格序列 → 收益序列
// 对齐规则: 两条价格按日期内连接, 任一侧缺失(NaN)的行剔除, 再分别求百分比变化
package returns

import (
	"math"
	"sort"
	"time"

	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
	"gasmethod/pkg/utils/myTools"

	"github.com/bits-and-blooms/bitset"
)

// 按日期升序的数值序列, NaN 表示缺失
type Series struct {
	Dates  []time.Time
	Values []float64
}

func (s Series) Len() int {
	return len(s.Values)
}

func (s Series) validate() error {
	if len(s.Dates) != len(s.Values) {
		return errorx.Newf(errCode.INVALID_VALUE, "dates %d != values %d", len(s.Dates), len(s.Values))
	}
	return nil
}

// 按日期排序, 原地
func (s Series) Sort() {
	sort.Sort(byDate(s))
}

type byDate Series

func (b byDate) Len() int           { return len(b.Values) }
func (b byDate) Less(i, j int) bool { return b.Dates[i].Before(b.Dates[j]) }
func (b byDate) Swap(i, j int) {
	b.Dates[i], b.Dates[j] = b.Dates[j], b.Dates[i]
	b.Values[i], b.Values[j] = b.Values[j], b.Values[i]
}

// PctChange p[i]/p[i-1]-1, 长度 n-1, 前值为0或缺失时为 NaN
func PctChange(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}
	out := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		prev := prices[i-1]
		if prev == 0 || math.IsNaN(prev) || math.IsNaN(prices[i]) {
			out[i-1] = math.NaN()
			continue
		}
		out[i-1] = prices[i]/prev - 1
	}
	return out
}

// 前向填充缺失值, 开头的缺失保留
func FFill(values []float64) []float64 {
	out := make([]float64, len(values))
	last := math.NaN()
	for i, v := range values {
		if !math.IsNaN(v) {
			last = v
		}
		out[i] = last
	}
	return out
}

// DropNaN 剔除缺失值
func (s Series) DropNaN() Series {
	mask := myTools.MaskFinite(s.Values)
	return s.filter(mask)
}

func (s Series) filter(mask *bitset.BitSet) Series {
	out := Series{
		Dates:  make([]time.Time, 0, mask.Count()),
		Values: make([]float64, 0, mask.Count()),
	}
	for i, e := mask.NextSet(0); e; i, e = mask.NextSet(i + 1) {
		out.Dates = append(out.Dates, s.Dates[i])
		out.Values = append(out.Values, s.Values[i])
	}
	return out
}

// Returns 价格 → 收益, 日期取后一期
func (s Series) Returns() Series {
	p := s.DropNaN()
	if p.Len() < 2 {
		return Series{Dates: []time.Time{}, Values: []float64{}}
	}
	return Series{Dates: append([]time.Time(nil), p.Dates[1:]...), Values: PctChange(p.Values)}.DropNaN()
}

// Join 按日期内连接, 任一侧缺失则剔除该行
func Join(a, b Series) (dates []time.Time, av, bv []float64, err error) {
	if err = a.validate(); err != nil {
		return
	}
	if err = b.validate(); err != nil {
		return
	}
	idx := make(map[int64]int, b.Len())
	for i, d := range b.Dates {
		idx[d.UnixNano()] = i
	}

	n := a.Len()
	mask := bitset.New(uint(n))
	pos := make([]int, n)
	for i, d := range a.Dates {
		j, ok := idx[d.UnixNano()]
		if !ok || math.IsNaN(a.Values[i]) || math.IsNaN(b.Values[j]) {
			continue
		}
		mask.Set(uint(i))
		pos[i] = j
	}

	dates = make([]time.Time, 0, mask.Count())
	av = make([]float64, 0, mask.Count())
	bv = make([]float64, 0, mask.Count())
	for i, e := mask.NextSet(0); e; i, e = mask.NextSet(i + 1) {
		dates = append(dates, a.Dates[i])
		av = append(av, a.Values[i])
		bv = append(bv, b.Values[pos[i]])
	}
	return dates, av, bv, nil
}

// ExcessReturns 标的收益 - 基准收益
// 基准价格先前向填充, 与标的价格对齐后分别求百分比变化
func ExcessReturns(inst, bench Series) (Series, error) {
	if err := bench.validate(); err != nil {
		return Series{}, err
	}
	filled := Series{Dates: bench.Dates, Values: FFill(bench.Values)}
	dates, ip, bp, err := Join(inst, filled)
	if err != nil {
		return Series{}, err
	}
	if len(dates) < 2 {
		return Series{}, errorx.Newf(errCode.INVALID_INPUT, "only %d aligned prices", len(dates))
	}

	ir := PctChange(ip)
	br := PctChange(bp)
	out := Series{Dates: append([]time.Time(nil), dates[1:]...), Values: make([]float64, len(ir))}
	for i := range ir {
		out.Values[i] = ir[i] - br[i]
	}
	return out.DropNaN(), nil
}
