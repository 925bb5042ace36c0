package gas

const (
	LOG_SENTINEL        = -1500.0 // 对数无法计算时的替代值
	FINAL_SCORE_DIVISOR = 1e6     // final模式下score的缩放因子
	BASE_LOC0           = 0.0     // 基准估计初始 location
	BASE_SCALE0         = 0.01    // 基准估计初始 scale
	DEFAULT_TOL         = 1e-6
	MIN_SERIES_LEN      = 2
	DEFAULT_ACF_LAGS    = 10
	DEFAULT_HIST_BINS   = 20
)

// 递推模式
type RecursionMode int

const (
	FIT_MODE   RecursionMode = iota // 系数搜索时使用, score 不缩放
	FINAL_MODE                      // 输出参数路径时使用, score / FINAL_SCORE_DIVISOR
)

func (m RecursionMode) String() string {
	switch m {
	case FIT_MODE:
		return "fit"
	case FINAL_MODE:
		return "final"
	default:
		return "ERROR"
	}
}

// score缩放策略
// ASYMMETRIC: fit 用原始score, final 除以 1e6
// CONSISTENT: final 也用原始score, 与系数拟合时的动力学一致
type ScalingMode int

const (
	SCALING_ASYMMETRIC ScalingMode = iota
	SCALING_CONSISTENT
	SCALING_ERROR
)

func (s ScalingMode) String() string {
	switch s {
	case SCALING_ASYMMETRIC:
		return "asymmetric"
	case SCALING_CONSISTENT:
		return "consistent"
	default:
		return "ERROR"
	}
}

func GetScalingMode(s string) ScalingMode {
	switch s {
	case "", "asymmetric":
		return SCALING_ASYMMETRIC
	case "consistent":
		return SCALING_CONSISTENT
	default:
		return SCALING_ERROR
	}
}

// 递推中计算score所用的密度
// BASELINE: 每一步都使用基准参数下的密度
// UPDATED: 每一步用当前时变参数重新计算密度
type DensityMode int

const (
	BASELINE_DENSITY DensityMode = iota
	UPDATED_DENSITY
	DENSITY_ERROR
)

func (d DensityMode) String() string {
	switch d {
	case BASELINE_DENSITY:
		return "baseline"
	case UPDATED_DENSITY:
		return "updated"
	default:
		return "ERROR"
	}
}

func GetDensityMode(s string) DensityMode {
	switch s {
	case "", "baseline":
		return BASELINE_DENSITY
	case "updated":
		return UPDATED_DENSITY
	default:
		return DENSITY_ERROR
	}
}
