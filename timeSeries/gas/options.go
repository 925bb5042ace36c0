package gas

import "gasmethod/ml/nmOptim"

type Options struct {
	Tol     float64     // Nelder-Mead 容差
	MaxIter int         // 0 时取 200*dim
	Seed    Params      // 基准估计初始点
	Strict  bool        // 未收敛或路径退化时返回错误
	Scaling ScalingMode // final 递推的 score 缩放策略
	Density DensityMode // 递推中 score 使用的密度
	Lags    int         // 残差 ACF / Ljung-Box 滞后阶数, <=0 不做诊断
	Bins    int         // 残差直方图分箱数
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		Tol:     DEFAULT_TOL,
		Seed:    Params{Loc: BASE_LOC0, Scale: BASE_SCALE0},
		Scaling: SCALING_ASYMMETRIC,
		Density: BASELINE_DENSITY,
		Lags:    DEFAULT_ACF_LAGS,
		Bins:    DEFAULT_HIST_BINS,
	}
}

func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithTolerance(tol float64) Option {
	return func(o *Options) { o.Tol = tol }
}

func WithMaxIter(n int) Option {
	return func(o *Options) { o.MaxIter = n }
}

func WithBaselineSeed(p Params) Option {
	return func(o *Options) { o.Seed = p }
}

func WithStrictConvergence(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

func WithScaling(s ScalingMode) Option {
	return func(o *Options) { o.Scaling = s }
}

func WithDensityMode(d DensityMode) Option {
	return func(o *Options) { o.Density = d }
}

func WithDiagnostics(lags, bins int) Option {
	return func(o *Options) {
		o.Lags = lags
		o.Bins = bins
	}
}

func (o Options) nmSettings() nmOptim.Settings {
	return nmOptim.Settings{Tol: o.Tol, MaxIter: o.MaxIter}
}
