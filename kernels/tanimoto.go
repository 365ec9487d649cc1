package kernels

import (
	"fmt"

	"github.com/YuminosukeSato/molgp/core/parallel"
	"github.com/YuminosukeSato/molgp/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Rows below this count are processed sequentially
const gramParallelThreshold = 256

// Tanimoto is the Tanimoto (Jaccard-like) similarity kernel over non-negative
// fingerprint vectors:
//
//	k(x, y) = <x, y> / (||x||² + ||y||² - <x, y>)
//
// For binary fingerprints this is the classical Tanimoto coefficient; the same
// formula extends to real-valued count vectors. Values lie in [0, 1] and the
// self-similarity of any non-zero vector is 1.
//
// By convention a pair of all-zero vectors has similarity 1: an empty
// fingerprint is maximally similar to another empty fingerprint. The zero
// denominator is handled by a guarded branch, not an error path.
//
// Inputs are assumed non-negative and are not renormalized or imputed here;
// validating that precondition is the caller's responsibility.
type Tanimoto struct{}

// NewTanimoto creates a Tanimoto kernel.
func NewTanimoto() *Tanimoto {
	return &Tanimoto{}
}

// Gram computes the Tanimoto similarity matrix between the rows of X1 and X2.
func (k *Tanimoto) Gram(X1, X2 mat.Matrix) (*mat.Dense, error) {
	n, d := X1.Dims()
	m, d2 := X2.Dims()
	if n == 0 || d == 0 || m == 0 {
		return nil, errors.NewModelError("Tanimoto.Gram", "empty data", errors.ErrEmptyData)
	}
	if d != d2 {
		return nil, errors.NewDimensionError("Tanimoto.Gram", d, d2, 1)
	}

	symmetric := sameMatrix(X1, X2)

	// Squared L2-norm of every row
	norms1 := rowSquaredNorms(X1)
	var norms2 []float64
	if symmetric {
		norms2 = norms1
	} else {
		norms2 = rowSquaredNorms(X2)
	}

	// Cross products <x_i, y_j> in one matrix multiply
	var cross mat.Dense
	cross.Mul(X1, X2.T())

	K := mat.NewDense(n, m, nil)
	parallel.ParallelizeWithThreshold(n, gramParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < m; j++ {
				if symmetric && i == j {
					// Self-similarity is exactly 1, including the all-zero row
					K.Set(i, j, 1)
					continue
				}
				c := cross.At(i, j)
				denom := norms1[i] + norms2[j] - c

				var v float64
				switch {
				case denom == 0:
					// Both fingerprints are all-zero
					v = 1
				default:
					v = c / denom
					if v < 0 {
						v = 0
					}
				}
				K.Set(i, j, v)
			}
		}
	})

	return K, nil
}

// Diag returns the self-similarities of the rows of X, which are identically 1
// for the Tanimoto kernel (the all-zero row by convention).
func (k *Tanimoto) Diag(X mat.Matrix) (*mat.VecDense, error) {
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return nil, errors.NewModelError("Tanimoto.Diag", "empty data", errors.ErrEmptyData)
	}

	diag := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		diag.SetVec(i, 1)
	}
	return diag, nil
}

// String returns the kernel description.
func (k *Tanimoto) String() string {
	return "Tanimoto()"
}

func rowSquaredNorms(X mat.Matrix) []float64 {
	n, d := X.Dims()
	norms := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < d; j++ {
			v := X.At(i, j)
			sum += v * v
		}
		norms[i] = sum
	}
	return norms
}

var _ Kernel = (*Tanimoto)(nil)
var _ fmt.Stringer = (*Tanimoto)(nil)
