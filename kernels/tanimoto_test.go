package kernels

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestTanimotoGramPairs(t *testing.T) {
	tests := []struct {
		name      string
		a         []float64
		b         []float64
		want      float64
		tolerance float64
	}{
		{
			name:      "identical binary fingerprints",
			a:         []float64{1, 0, 1, 1},
			b:         []float64{1, 0, 1, 1},
			want:      1.0,
			tolerance: 1e-12,
		},
		{
			name:      "disjoint fingerprints",
			a:         []float64{1, 1, 0, 0},
			b:         []float64{0, 0, 1, 1},
			want:      0.0,
			tolerance: 1e-12,
		},
		{
			name:      "partial overlap",
			a:         []float64{1, 0, 1, 0},
			b:         []float64{1, 1, 0, 0},
			want:      1.0 / 3.0, // dot=1, 2+2-1=3
			tolerance: 1e-12,
		},
		{
			name:      "count-valued fingerprints",
			a:         []float64{2, 1},
			b:         []float64{1, 3},
			want:      0.5, // dot=5, 5+10-5=10
			tolerance: 1e-12,
		},
		{
			name:      "both all-zero by convention",
			a:         []float64{0, 0, 0},
			b:         []float64{0, 0, 0},
			want:      1.0,
			tolerance: 1e-12,
		},
		{
			name:      "zero against non-zero",
			a:         []float64{0, 0, 0},
			b:         []float64{1, 1, 0},
			want:      0.0,
			tolerance: 1e-12,
		},
	}

	k := NewTanimoto()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			A := mat.NewDense(1, len(tt.a), tt.a)
			B := mat.NewDense(1, len(tt.b), tt.b)

			K, err := k.Gram(A, B)
			if err != nil {
				t.Fatalf("Gram() error = %v", err)
			}
			if got := K.At(0, 0); math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Gram() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTanimotoSelfGram(t *testing.T) {
	// A self-Gram matrix is symmetric with a unit diagonal and entries in [0,1]
	X := mat.NewDense(4, 3, []float64{
		1, 0, 1,
		0, 1, 1,
		2, 3, 0,
		0, 0, 0, // all-zero fingerprint
	})

	k := NewTanimoto()
	K, err := k.Gram(X, X)
	if err != nil {
		t.Fatalf("Gram() error = %v", err)
	}

	n, m := K.Dims()
	if n != 4 || m != 4 {
		t.Fatalf("Gram() dims = %dx%d, want 4x4", n, m)
	}

	for i := 0; i < n; i++ {
		if math.Abs(K.At(i, i)-1.0) > 1e-12 {
			t.Errorf("diagonal at %d = %v, want 1", i, K.At(i, i))
		}
		for j := 0; j < m; j++ {
			v := K.At(i, j)
			if v < 0 || v > 1 {
				t.Errorf("K[%d,%d] = %v outside [0,1]", i, j, v)
			}
			if math.Abs(v-K.At(j, i)) > 1e-12 {
				t.Errorf("K[%d,%d] = %v not symmetric with K[%d,%d] = %v", i, j, v, j, i, K.At(j, i))
			}
		}
	}
}

func TestTanimotoCrossGramMatchesSelf(t *testing.T) {
	// Gram against an equal but distinct matrix yields the same values
	// (the unit-diagonal convention happens to agree here: rows are non-zero)
	data := []float64{
		1, 1, 0,
		0, 1, 1,
	}
	X := mat.NewDense(2, 3, data)
	Y := mat.NewDense(2, 3, append([]float64(nil), data...))

	k := NewTanimoto()
	selfK, err := k.Gram(X, X)
	if err != nil {
		t.Fatalf("Gram(X, X) error = %v", err)
	}
	crossK, err := k.Gram(X, Y)
	if err != nil {
		t.Fatalf("Gram(X, Y) error = %v", err)
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(selfK.At(i, j)-crossK.At(i, j)) > 1e-12 {
				t.Errorf("self K[%d,%d] = %v, cross K[%d,%d] = %v", i, j, selfK.At(i, j), i, j, crossK.At(i, j))
			}
		}
	}
}

func TestTanimotoDiag(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 0, 0, 0, 4, 2})
	k := NewTanimoto()
	diag, err := k.Diag(X)
	if err != nil {
		t.Fatalf("Diag() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if diag.AtVec(i) != 1 {
			t.Errorf("Diag()[%d] = %v, want 1", i, diag.AtVec(i))
		}
	}
}

func TestTanimotoGramErrors(t *testing.T) {
	k := NewTanimoto()

	t.Run("feature count mismatch", func(t *testing.T) {
		A := mat.NewDense(1, 3, []float64{1, 0, 1})
		B := mat.NewDense(1, 2, []float64{1, 0})
		if _, err := k.Gram(A, B); err == nil {
			t.Error("Gram() with mismatched feature counts should return an error")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, err := k.Gram(&mat.Dense{}, &mat.Dense{}); err == nil {
			t.Error("Gram() with empty input should return an error")
		}
	})
}
