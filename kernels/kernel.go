// Package kernels implements covariance functions over molecular fingerprint
// representations (bit vectors or count vectors).
//
// Kernels are stateless with respect to their inputs: a kernel value is a pure
// function of the two input matrices and the kernel's own hyperparameters, so
// one kernel instance is safe to reuse across benchmark trials.
//
// None of the kernels here carry an output-scale parameter. To add a trainable
// amplitude, wrap a kernel with Scale, mirroring the ScaleKernel composition
// used by GP libraries.
package kernels

import (
	"gonum.org/v1/gonum/mat"
)

// Kernel computes covariance matrices between sets of fingerprint vectors.
type Kernel interface {
	// Gram computes the n×m kernel matrix between the rows of X1 (n×d) and
	// X2 (m×d). When X1 and X2 are the same matrix the result is symmetric.
	Gram(X1, X2 mat.Matrix) (*mat.Dense, error)

	// Diag computes k(x_i, x_i) for each row of X.
	Diag(X mat.Matrix) (*mat.VecDense, error)

	// String returns a short description including hyperparameters.
	String() string
}

// sameMatrix reports whether a and b are the same underlying matrix value.
// Used to take the symmetric fast path and apply self-similarity conventions.
func sameMatrix(a, b mat.Matrix) bool {
	return a == b
}
