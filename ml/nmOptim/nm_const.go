package nmOptim

const (
	DEFAULT_TOL          = 1e-6
	ITER_PER_DIM         = 200     // 默认迭代上限 = 200*dim
	NONZERO_SIMPLEX_STEP = 0.05    // 非零坐标按 5% 扰动
	ZERO_SIMPLEX_STEP    = 0.00025 // 零坐标的扰动

	// 单纯形变换系数
	NM_REFLECT  = 1.0
	NM_EXPAND   = 2.0
	NM_CONTRACT = 0.5
	NM_SHRINK   = 0.5
)
