// Package preprocessing はラベルや特徴量のスケーリング変換を提供します。
package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/molgp/core/model"
	"github.com/YuminosukeSato/molgp/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// StandardScaler はscikit-learn互換の標準化スケーラー
// データを平均0、標準偏差1に変換する。
// ベンチマークでは各トライアルの訓練ラベルのみでfitし、予測値の逆変換に使った後に破棄する。
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(y)
//	yScaled, err := scaler.Transform(y)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから統計情報（平均、標準偏差）を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	if s.WithMean {
		for j := 0; j < c; j++ {
			sum := 0.0
			for i := 0; i < r; i++ {
				sum += X.At(i, j)
			}
			s.Mean[j] = sum / float64(r)
		}
	}

	if s.WithStd {
		for j := 0; j < c; j++ {
			sumSquares := 0.0
			for i := 0; i < r; i++ {
				diff := X.At(i, j) - s.Mean[j]
				sumSquares += diff * diff
			}
			variance := sumSquares / float64(r)
			s.Scale[j] = math.Sqrt(variance)

			// 標準偏差が0に近い場合は1に設定（ゼロ除算を避ける）
			if math.Abs(s.Scale[j]) < 1e-8 {
				s.Scale[j] = 1.0
			}
		}
	} else {
		for j := 0; j < c; j++ {
			s.Scale[j] = 1.0
		}
	}

	s.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			result.Set(i, j, (value-s.Mean[j])/s.Scale[j])
		}
	}

	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			result.Set(i, j, value*s.Scale[j]+s.Mean[j])
		}
	}

	return result, nil
}

// TransformVec はラベルベクトルを標準化する。
// ラベルは1特徴量として扱うため、スケーラーは n×1 行列でfitされている必要がある。
func (s *StandardScaler) TransformVec(y *mat.VecDense) (*mat.VecDense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "TransformVec")
	}
	if s.NFeatures != 1 {
		return nil, errors.NewDimensionError("StandardScaler.TransformVec", 1, s.NFeatures, 1)
	}

	n := y.Len()
	result := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		result.SetVec(i, (y.AtVec(i)-s.Mean[0])/s.Scale[0])
	}
	return result, nil
}

// InverseTransformVec は標準化されたラベルベクトルを元のスケールに戻す
func (s *StandardScaler) InverseTransformVec(y *mat.VecDense) (*mat.VecDense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransformVec")
	}
	if s.NFeatures != 1 {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransformVec", 1, s.NFeatures, 1)
	}

	n := y.Len()
	result := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		result.SetVec(i, y.AtVec(i)*s.Scale[0]+s.Mean[0])
	}
	return result, nil
}

// InverseScaleVariance は標準化空間の予測分散を元のスケールに戻す。
// 分散はスケールの二乗で変換され、平均の項は影響しない。
func (s *StandardScaler) InverseScaleVariance(variance *mat.VecDense) (*mat.VecDense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseScaleVariance")
	}
	if s.NFeatures != 1 {
		return nil, errors.NewDimensionError("StandardScaler.InverseScaleVariance", 1, s.NFeatures, 1)
	}

	n := variance.Len()
	result := mat.NewVecDense(n, nil)
	factor := s.Scale[0] * s.Scale[0]
	for i := 0; i < n; i++ {
		result.SetVec(i, variance.AtVec(i)*factor)
	}
	return result, nil
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.NFeatures)
}
