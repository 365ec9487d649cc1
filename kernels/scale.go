package kernels

import (
	"fmt"

	"github.com/YuminosukeSato/molgp/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Scale decorates a base kernel with a trainable output-scale (amplitude):
//
//	k_scaled(x, y) = s² * k(x, y)
//
// The base kernel stays free of amplitude parameters; the GP optimizer adjusts
// Variance on its own Scale instance while the wrapped kernel is shared.
type Scale struct {
	// Base is the wrapped kernel.
	Base Kernel

	// Variance is the output scale s² applied multiplicatively.
	Variance float64
}

// NewScale wraps base with an output-scale of variance s².
func NewScale(base Kernel, variance float64) *Scale {
	return &Scale{Base: base, Variance: variance}
}

// Gram computes variance * Base.Gram(X1, X2).
func (k *Scale) Gram(X1, X2 mat.Matrix) (*mat.Dense, error) {
	if k.Variance < 0 {
		return nil, errors.NewValueError("Scale.Gram", "output-scale variance must be non-negative")
	}
	K, err := k.Base.Gram(X1, X2)
	if err != nil {
		return nil, err
	}
	K.Scale(k.Variance, K)
	return K, nil
}

// Diag computes variance * Base.Diag(X).
func (k *Scale) Diag(X mat.Matrix) (*mat.VecDense, error) {
	if k.Variance < 0 {
		return nil, errors.NewValueError("Scale.Diag", "output-scale variance must be non-negative")
	}
	diag, err := k.Base.Diag(X)
	if err != nil {
		return nil, err
	}
	diag.ScaleVec(k.Variance, diag)
	return diag, nil
}

// String returns the kernel description.
func (k *Scale) String() string {
	return fmt.Sprintf("Scale(%s, variance=%g)", k.Base, k.Variance)
}

var _ Kernel = (*Scale)(nil)
