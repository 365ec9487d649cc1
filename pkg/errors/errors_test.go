package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "GPRegressor.Fit",
			kind:     "optimizer failure",
			err:      fmt.Errorf("test error"),
			wantMsg:  "molgp: GPRegressor.Fit: optimizer failure: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "GPRegressor.Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "molgp: GPRegressor.Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// ModelError型にキャスト可能か確認
			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("TanimotoKernel", 2048, 1024, 1)

	// 基本的なエラーメッセージの確認
	want := "molgp: TanimotoKernel: dimension mismatch on axis 1 (features). Expected 2048, got 1024"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// DimensionError型にキャスト可能か確認
	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewSplitError(t *testing.T) {
	err := NewSplitError(3, 0.01, 3, 0)

	want := "molgp: split of 3 samples with test_size=0.01 yields empty partition (train=3, test=0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var splitErr *SplitError
	if !As(err, &splitErr) {
		t.Error("Error should be castable to *SplitError")
	}
	if splitErr.NTest != 0 {
		t.Errorf("NTest = %d, want 0", splitErr.NTest)
	}
}

func TestNewTrialError(t *testing.T) {
	cause := NewModelError("GPRegressor.Fit", "optimizer failure", nil)
	err := NewTrialError(7, "fit", cause)

	if !strings.Contains(err.Error(), "trial 7 failed during fit") {
		t.Errorf("Error() = %v, want trial index and stage in message", err.Error())
	}

	// Unwrapで元のエラーに到達できるか確認
	var modelErr *ModelError
	if !As(err, &modelErr) {
		t.Error("TrialError should unwrap to the underlying *ModelError")
	}
	var trialErr *TrialError
	if !As(err, &trialErr) {
		t.Error("Error should be castable to *TrialError")
	}
	if trialErr.Trial != 7 {
		t.Errorf("Trial = %d, want 7", trialErr.Trial)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("GPRegressor", "Predict")

	if !strings.Contains(err.Error(), "not fitted yet") {
		t.Errorf("Error() = %v, want not-fitted message", err.Error())
	}

	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestCheckNumericalStability(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{name: "finite values", values: []float64{1.0, -2.5, 0.0}, wantErr: false},
		{name: "contains NaN", values: []float64{1.0, math.NaN(), 3.0}, wantErr: true},
		{name: "contains Inf", values: []float64{1.0, math.Inf(1), 3.0}, wantErr: true},
		{name: "empty", values: nil, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNumericalStability("test_op", tt.values, 0)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckNumericalStability() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var numErr *NumericalInstabilityError
				if !As(err, &numErr) {
					t.Error("Error should be castable to *NumericalInstabilityError")
				}
			}
		})
	}
}
