package ols

import (
	"math"

	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"
	"gasmethod/infra/observe/log/staticLog"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

type MultiLinearModel struct {
	Coeffs      []float64 // 回归系数
	SE          []float64 // 标准误
	TStats      []float64 // t统计量
	PValues     []float64 // p值（双尾）
	Resids      []float64 // 残差
	AIC         float64
	BIC         float64
	Sigma2      float64 // 残差方差
	RSquared    float64
	AdjRSquared float64
}

// MultiRegressionMat y = Xβ + ε, X 不自动加常数列
func MultiRegressionMat(matX *mat.Dense, matY *mat.VecDense) (MultiLinearModel, error) {
	n, k := matX.Dims()
	if matY.Len() != n {
		return MultiLinearModel{}, errorx.Newf(errCode.INVALID_VALUE, "X rows %d != y length %d", n, matY.Len())
	}
	// 自由度 df = n - k
	df := float64(n - k)
	if df <= 0 {
		return MultiLinearModel{}, errorx.Newf(errCode.INVALID_VALUE, "自由度 df=%v 非法：样本数 n 必须大于参数数 k", df)
	}

	var XTX mat.Dense
	XTX.Mul(matX.T(), matX)

	// (X'X)^(-1), 奇异时退化为广义逆
	var invXTX mat.Dense
	if err := invXTX.Inverse(&XTX); err != nil {
		staticLog.Log.Debugf("ols: X'X 不可逆, 使用广义逆: %v", err)
		pinv, errSVD := pseudoInverse(&XTX)
		if errSVD != nil {
			return MultiLinearModel{}, errSVD
		}
		invXTX.CloneFrom(pinv)
	}

	var XTY mat.VecDense
	XTY.MulVec(matX.T(), matY)

	// β = (X'X)^(-1) * (X'Y)
	var beta mat.VecDense
	beta.MulVec(&invXTX, &XTY)

	var yhat mat.VecDense
	yhat.MulVec(matX, &beta)
	resid := mat.NewVecDense(n, nil)
	resid.SubVec(matY, &yhat)

	RSS := mat.Dot(resid, resid)
	sigma2 := RSS / df

	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	coeffs := make([]float64, k)
	SE := make([]float64, k)
	tStats := make([]float64, k)
	pValues := make([]float64, k)
	for i := 0; i < k; i++ {
		coeffs[i] = beta.AtVec(i)
		SE[i] = math.Sqrt(sigma2 * invXTX.At(i, i))
		tStats[i] = coeffs[i] / SE[i]
		pValues[i] = 2 * tdist.Survival(math.Abs(tStats[i]))
	}

	// R² & 调整后R²
	yMean := mat.Sum(matY) / float64(n)
	TSS := 0.0
	for i := 0; i < n; i++ {
		d := matY.AtVec(i) - yMean
		TSS += d * d
	}
	RSq := 1 - RSS/TSS
	AdjRSq := 1 - (1-RSq)*float64(n-1)/df

	logLik := -0.5 * float64(n) * (1 + math.Log(2*math.Pi*RSS/float64(n)))
	return MultiLinearModel{
		Coeffs:      coeffs,
		SE:          SE,
		TStats:      tStats,
		PValues:     pValues,
		Resids:      resid.RawVector().Data,
		AIC:         -2*logLik + 2*float64(k),
		BIC:         -2*logLik + float64(k)*math.Log(float64(n)),
		Sigma2:      sigma2,
		RSquared:    RSq,
		AdjRSquared: AdjRSq,
	}, nil
}

// 用SVD 求解广义逆矩阵
func pseudoInverse(A *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return nil, errorx.New(errCode.INVALID_VALUE, "SVD分解失败")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	sigma := svd.Values(nil)
	m, n := A.Dims()
	sInv := mat.NewDense(n, m, nil)

	// 相对最大奇异值截断
	tol := 0.0
	if len(sigma) > 0 {
		tol = 1e-12 * sigma[0]
	}
	for i, val := range sigma {
		if val > tol {
			sInv.Set(i, i, 1.0/val)
		}
	}

	// A⁺ = V * Σ⁺ * Uᵀ
	var temp, pinv mat.Dense
	temp.Mul(&v, sInv)
	pinv.Mul(&temp, u.T())
	return &pinv, nil
}
