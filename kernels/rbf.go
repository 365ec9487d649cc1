package kernels

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/molgp/core/parallel"
	"github.com/YuminosukeSato/molgp/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// RBF is the radial basis function (squared exponential) kernel:
//
//	k(x, y) = exp(-||x - y||² / (2 * l²))
//
// where l is the lengthscale. Provided as an alternative covariance for
// continuous molecular descriptors where Tanimoto similarity is not
// meaningful.
type RBF struct {
	// Lengthscale controls the smoothness of interpolation. Larger values
	// give smoother functions.
	Lengthscale float64
}

// NewRBF creates an RBF kernel with the given lengthscale.
func NewRBF(lengthscale float64) *RBF {
	return &RBF{Lengthscale: lengthscale}
}

// Gram computes the RBF kernel matrix between the rows of X1 and X2.
func (k *RBF) Gram(X1, X2 mat.Matrix) (*mat.Dense, error) {
	n, d := X1.Dims()
	m, d2 := X2.Dims()
	if n == 0 || d == 0 || m == 0 {
		return nil, errors.NewModelError("RBF.Gram", "empty data", errors.ErrEmptyData)
	}
	if d != d2 {
		return nil, errors.NewDimensionError("RBF.Gram", d, d2, 1)
	}
	if k.Lengthscale <= 0 {
		return nil, errors.NewValueError("RBF.Gram", "lengthscale must be positive")
	}

	symmetric := sameMatrix(X1, X2)

	// ||x - y||² = ||x||² + ||y||² - 2<x, y>
	norms1 := rowSquaredNorms(X1)
	var norms2 []float64
	if symmetric {
		norms2 = norms1
	} else {
		norms2 = rowSquaredNorms(X2)
	}

	var cross mat.Dense
	cross.Mul(X1, X2.T())

	denom := 2 * k.Lengthscale * k.Lengthscale
	K := mat.NewDense(n, m, nil)
	parallel.ParallelizeWithThreshold(n, gramParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < m; j++ {
				if symmetric && i == j {
					K.Set(i, j, 1)
					continue
				}
				sq := norms1[i] + norms2[j] - 2*cross.At(i, j)
				if sq < 0 {
					// Rounding can push a tiny distance negative
					sq = 0
				}
				K.Set(i, j, math.Exp(-sq/denom))
			}
		}
	})

	return K, nil
}

// Diag returns the self-similarities of the rows of X, identically 1 for RBF.
func (k *RBF) Diag(X mat.Matrix) (*mat.VecDense, error) {
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return nil, errors.NewModelError("RBF.Diag", "empty data", errors.ErrEmptyData)
	}

	diag := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		diag.SetVec(i, 1)
	}
	return diag, nil
}

// String returns the kernel description.
func (k *RBF) String() string {
	return fmt.Sprintf("RBF(lengthscale=%g)", k.Lengthscale)
}

var _ Kernel = (*RBF)(nil)
