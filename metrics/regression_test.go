package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25, // ((0.5)^2 + (0.5)^2 + (-0.5)^2 + (-0.5)^2) / 4
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "dimension mismatch",
			yTrue:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:     mat.NewVecDense(2, []float64{1.0, 2.0}),
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   true,
		},
		{
			name:      "empty vectors",
			yTrue:     &mat.VecDense{},
			yPred:     &mat.VecDense{},
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MSE() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSEAndMAEInequality(t *testing.T) {
	// MAE ≤ RMSE が成り立つ（残差が一様な場合のみ等号）
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
	}{
		{
			name:  "mixed residuals",
			yTrue: []float64{10.0, 20.0, 30.0, 40.0},
			yPred: []float64{12.0, 18.0, 33.0, 39.0},
		},
		{
			name:  "uniform residuals",
			yTrue: []float64{1.0, 2.0, 3.0},
			yPred: []float64{2.0, 3.0, 4.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yTrue := mat.NewVecDense(len(tt.yTrue), tt.yTrue)
			yPred := mat.NewVecDense(len(tt.yPred), tt.yPred)

			rmse, err := RMSE(yTrue, yPred)
			if err != nil {
				t.Fatalf("RMSE() error = %v", err)
			}
			mae, err := MAE(yTrue, yPred)
			if err != nil {
				t.Fatalf("MAE() error = %v", err)
			}

			if mae > rmse+1e-12 {
				t.Errorf("MAE (%v) should not exceed RMSE (%v)", mae, rmse)
			}

			// RMSE² ≈ 平均二乗残差
			mse, err := MSE(yTrue, yPred)
			if err != nil {
				t.Fatalf("MSE() error = %v", err)
			}
			if math.Abs(rmse*rmse-mse) > 1e-10 {
				t.Errorf("RMSE² = %v, want %v", rmse*rmse, mse)
			}
		})
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			want:      1.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "mean prediction scores zero",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}),
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:    "no variance in yTrue",
			yTrue:   mat.NewVecDense(3, []float64{2.0, 2.0, 2.0}),
			yPred:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		wantMean   float64
		wantStdErr float64
		tolerance  float64
		wantErr    bool
	}{
		{
			name:       "typical metric sequence",
			values:     []float64{20.0, 22.0, 21.0, 19.0},
			wantMean:   20.5,
			wantStdErr: 1.2909944487358056 / 2.0, // sample std / sqrt(4)
			tolerance:  1e-12,
		},
		{
			name:       "single trial has zero stderr",
			values:     []float64{5.0},
			wantMean:   5.0,
			wantStdErr: 0.0,
			tolerance:  1e-12,
		},
		{
			name:    "empty",
			values:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Summarize(tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Summarize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if math.Abs(got.Mean-tt.wantMean) > tt.tolerance {
				t.Errorf("Mean = %v, want %v", got.Mean, tt.wantMean)
			}
			if math.Abs(got.StdErr-tt.wantStdErr) > tt.tolerance {
				t.Errorf("StdErr = %v, want %v", got.StdErr, tt.wantStdErr)
			}
		})
	}
}
