package metrics

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/molgp/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Summary はトライアル横断の指標の平均と標準誤差を保持する。
// 標準誤差は std / √n で、推定量の精度を要約する。
type Summary struct {
	Mean   float64
	StdErr float64
	N      int
}

// Summarize はトライアルごとの指標値から平均と標準誤差を計算する
func Summarize(values []float64) (Summary, error) {
	n := len(values)
	if n == 0 {
		return Summary{}, errors.NewValueError("Summarize", "no values to summarize")
	}

	mean, std := stat.MeanStdDev(values, nil)
	if n == 1 {
		// 単一トライアルでは分散が定義できないため標準誤差は0とする
		return Summary{Mean: mean, StdErr: 0, N: 1}, nil
	}

	return Summary{
		Mean:   mean,
		StdErr: std / math.Sqrt(float64(n)),
		N:      n,
	}, nil
}

// String は "mean ± stderr" 形式（小数点以下4桁）の文字列を返す
func (s Summary) String() string {
	return fmt.Sprintf("%.4f ± %.4f", s.Mean, s.StdErr)
}
