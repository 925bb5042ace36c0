// 自相关 => 卷积, 用 FFT 加速:
// 1) 去均值并零填充到 2 的幂 (>= 2n), 避免循环卷积的 wrap-around
// 2) FFT(x) 得到 X
// 3) X * conj(X) = |X|²
// 4) IFFT 得到整条自相关序列
// 复杂度 O(N⋅maxLag) => O(NlogN)
package acf

import (
	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
	"gasmethod/pkg/utils/myTools"

	"gonum.org/v1/gonum/dsp/fourier"
)

// AutoCorrFFT 与 AutoCorr 结果一致, 长序列时更快
func AutoCorrFFT(series []float64, maxLag int) ([]float64, error) {
	n := len(series)
	if n == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "input series empty")
	}
	if maxLag <= 0 {
		return nil, errorx.New(errCode.INVALID_VALUE, "maxLag must be > 0")
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	mean := myTools.ArrMean(series)
	L := nextPow2(2 * n)
	seq := make([]float64, L)
	for i := 0; i < n; i++ {
		seq[i] = series[i] - mean
	}

	fft := fourier.NewFFT(L)
	coeff := fft.Coefficients(nil, seq)
	for i, c := range coeff {
		re, im := real(c), imag(c)
		coeff[i] = complex(re*re+im*im, 0)
	}
	// Coefficients 再 Sequence 会乘以 L
	acTime := fft.Sequence(nil, coeff)

	denom := acTime[0]
	if denom == 0 {
		return nil, errorx.New(errCode.INVALID_VALUE, "variance is zero")
	}
	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		acf[k] = acTime[k] / denom
	}
	return acf, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
