package gas

import (
	"math"

	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
	"gasmethod/infra/observe/log/staticLog"
	"gasmethod/pkg/utils/myTools"
	"gasmethod/timeSeries/acf"
	"gasmethod/timeSeries/adfuller"
	"gasmethod/timeSeries/hist"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/floats"
)

const (
	LJUNG_BOX_ALPHA = 0.05
	FFT_ACF_MIN_LEN = 1024 // 超过该长度用 FFT 求 ACF
	MIN_DIAG_LEN    = 3
	ADF_MIN_LEN     = 30 // 输入序列短于该长度不做单位根检验
	AR_MAX_LAG      = 5
	AR_LAG_NA       = -1 // 样本不足或 AR 拟合失败
)

// 最终参数路径的残差诊断, 下标与 Path 对齐
type Diagnostics struct {
	Residuals  []float64      // z = (r - loc) / scale
	Degenerate *bitset.BitSet // scale<=0 或 loc/scale 非有限
	ZMean      float64
	ZStd       float64
	ACF        []float64 // lag 0..Lags
	LjungBox   acf.LjungBoxResult
	Hist       []hist.HistogramBin
	ARLag      int                 // 残差 AIC 最优 AR 阶数, 0 为白噪声, AR_LAG_NA 为未检验
	Stationary *adfuller.ADFResult // 输入序列 ADF(c, AIC), 未检验时为 nil
}

// 标记 scale<=0 或非有限的位置
func DegenerateMask(path ParamPath) *bitset.BitSet {
	mask := bitset.New(uint(len(path)))
	for i, p := range path {
		if !p.Valid() {
			mask.Set(uint(i))
		}
	}
	return mask
}

// StandardizedResiduals path[k] 对应 series[k+1]
func StandardizedResiduals(series []float64, path ParamPath) []float64 {
	z := make([]float64, len(path))
	floats.SubTo(z, series[1:len(path)+1], path.Locs())
	floats.Div(z, path.Scales())
	return z
}

// Diagnose 计算残差诊断, lags<=0 时只给出残差和退化标记
func Diagnose(series []float64, path ParamPath, lags, bins int) (Diagnostics, error) {
	if len(path) != len(series)-1 {
		return Diagnostics{}, errorx.Newf(errCode.INVALID_VALUE,
			"path length %d != series length-1 %d", len(path), len(series)-1)
	}

	d := Diagnostics{
		Residuals:  StandardizedResiduals(series, path),
		Degenerate: DegenerateMask(path),
		ZMean:      math.NaN(),
		ZStd:       math.NaN(),
		ARLag:      AR_LAG_NA,
	}

	d.Stationary = adfTest(series)

	z := d.ValidResiduals()
	if len(z) < MIN_DIAG_LEN {
		return d, nil
	}
	d.ZMean = myTools.ArrMean(z)
	d.ZStd = myTools.ArrStd(z)
	d.ARLag = arLag(z)

	if bins > 0 {
		h, err := hist.Hist(z, bins)
		if err != nil {
			return d, err
		}
		d.Hist = h
	}

	if lags <= 0 {
		return d, nil
	}
	if lags >= len(z) {
		lags = len(z) - 1
	}
	var err error
	if len(z) >= FFT_ACF_MIN_LEN {
		d.ACF, err = acf.AutoCorrFFT(z, lags)
	} else {
		d.ACF, err = acf.AutoCorr(z, lags)
	}
	if err != nil {
		// 残差恒定时方差为0, 不视为失败
		if errorx.Is(err, errCode.INVALID_VALUE) {
			d.ACF = nil
			return d, nil
		}
		return d, err
	}
	d.LjungBox, err = acf.LjungBoxTest(z, lags, LJUNG_BOX_ALPHA)
	if err != nil {
		return d, err
	}
	return d, nil
}

// ValidResiduals 有效位置上的有限残差, 统计量都基于它
func (d Diagnostics) ValidResiduals() []float64 {
	valid := myTools.MaskFinite(d.Residuals)
	if d.Degenerate != nil {
		valid = valid.Difference(d.Degenerate)
	}
	return myTools.Compress(d.Residuals, valid)
}

func arLag(z []float64) int {
	pMax := min(AR_MAX_LAG, len(z)/4)
	if pMax < 1 {
		return AR_LAG_NA
	}
	p, _, err := adfuller.DetectAR(z, pMax)
	if err != nil {
		staticLog.Log.Debugf("gas: ar detection skipped: %v", err)
		return AR_LAG_NA
	}
	return p
}

func adfTest(series []float64) *adfuller.ADFResult {
	n := len(series)
	if n < ADF_MIN_LEN {
		return nil
	}
	maxLag := min(adfuller.DefaultMaxLag(n), (n-1)/4)
	res, err := adfuller.AdfTest(series, "c", maxLag, adfuller.LAG_MODE_AIC, adfuller.LEFT_TAIL)
	if err != nil {
		staticLog.Log.Debugf("gas: adf skipped: %v", err)
		return nil
	}
	return &res
}
