package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// UncertaintyPredictor は点推定に加えて予測分散を返すモデルのインターフェース
type UncertaintyPredictor interface {
	Predictor
	// PredictWithStd は予測平均と予測標準偏差を返す
	PredictWithStd(X mat.Matrix) (mean, std *mat.VecDense, err error)
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は訓練データから変換に必要な統計量を学習する
	Fit(X mat.Matrix) error
	// Transform は学習済みの統計量でデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)
	// InverseTransform は変換されたデータを元のスケールに戻す
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}
