// Package metrics は回帰モデルの評価指標を提供します。
package metrics

import (
	"math"

	"github.com/YuminosukeSato/molgp/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// residuals は2つのベクトルの長さを検証し、残差 yTrue - yPred をスライスとして返す
func residuals(op string, yTrue, yPred *mat.VecDense) ([]float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	r := make([]float64, n)
	for i := 0; i < n; i++ {
		r[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}
	return r, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	r, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Dot(r, r) / float64(len(r)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	r, err := residuals("RMSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// L2ノルムから直接計算する
	return floats.Norm(r, 2) / math.Sqrt(float64(len(r))), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	r, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Norm(r, 1) / float64(len(r)), nil
}

// R2Score は決定係数（R²）を計算する。
// すべてのyTrueが同じ値の場合は全変動が0となり定義できないためエラーを返す。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	r, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	n := yTrue.Len()
	truth := make([]float64, n)
	for i := 0; i < n; i++ {
		truth[i] = yTrue.AtVec(i)
	}

	// TSS = (n-1) * 標本分散（n=1では全変動が定義できない）
	var tss float64
	if n > 1 {
		tss = stat.Variance(truth, nil) * float64(n-1)
	}
	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}

	rss := floats.Dot(r, r)
	return 1 - rss/tss, nil
}
