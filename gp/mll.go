package gp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Diagonal jitter ladder applied when (K + σ²I) fails to factorize.
// Tried in order; the first level that yields a positive-definite matrix wins.
var jitterLadder = []float64{0, 1e-8, 1e-6, 1e-4}

// cholState is the factorization of K(θ) = s²·T + σ²·I at one hyperparameter
// point, together with the quantities shared by the likelihood value and its
// gradient.
type cholState struct {
	chol   mat.Cholesky
	alpha  *mat.VecDense // (K)⁻¹ (y - m·1)
	resid  *mat.VecDense // y - m·1
	logDet float64
	jitter float64
	ok     bool
}

// mll evaluates the exact Gaussian-process marginal log-likelihood and its
// gradient for the model
//
//	y ~ N(m·1, s²·T + σ²·I)
//
// over θ = (m, log s², log σ²). The base Gram matrix T is constant because
// fingerprint inputs are fixed, so it is computed once and reused for every
// optimizer step. Log-parameterization keeps s² and σ² positive without
// box constraints.
type mll struct {
	T *mat.SymDense // base kernel Gram over training inputs
	y *mat.VecDense
	n int

	// Cache for the last evaluated point; the optimizer asks for Func and
	// Grad at the same θ back to back.
	lastX     []float64
	lastState cholState
}

func newMLL(T *mat.SymDense, y *mat.VecDense) *mll {
	return &mll{T: T, y: y, n: y.Len()}
}

// factorize builds K(θ) and Cholesky-factorizes it, walking the jitter ladder
// on failure.
func (m *mll) factorize(x []float64) cholState {
	mean := x[0]
	s2 := math.Exp(x[1])
	n2 := math.Exp(x[2])

	var state cholState

	K := mat.NewSymDense(m.n, nil)
	for _, jitter := range jitterLadder {
		for i := 0; i < m.n; i++ {
			for j := i; j < m.n; j++ {
				v := s2 * m.T.At(i, j)
				if i == j {
					v += n2 + jitter
				}
				K.SetSym(i, j, v)
			}
		}
		if state.chol.Factorize(K) {
			state.ok = true
			state.jitter = jitter
			break
		}
	}
	if !state.ok {
		return state
	}

	resid := mat.NewVecDense(m.n, nil)
	for i := 0; i < m.n; i++ {
		resid.SetVec(i, m.y.AtVec(i)-mean)
	}

	alpha := mat.NewVecDense(m.n, nil)
	if err := state.chol.SolveVecTo(alpha, resid); err != nil {
		state.ok = false
		return state
	}

	state.alpha = alpha
	state.resid = resid
	state.logDet = state.chol.LogDet()
	return state
}

func (m *mll) stateAt(x []float64) cholState {
	if m.lastX != nil &&
		m.lastX[0] == x[0] && m.lastX[1] == x[1] && m.lastX[2] == x[2] {
		return m.lastState
	}
	state := m.factorize(x)
	m.lastX = []float64{x[0], x[1], x[2]}
	m.lastState = state
	return state
}

// NegValue returns the negative marginal log-likelihood at θ.
// Non-positive-definite points evaluate to +Inf so the line search backtracks
// away from them.
func (m *mll) NegValue(x []float64) float64 {
	state := m.stateAt(x)
	if !state.ok {
		return math.Inf(1)
	}

	// L = -½ rᵀα - ½ log|K| - n/2 log 2π
	quad := mat.Dot(state.resid, state.alpha)
	logLik := -0.5*quad - 0.5*state.logDet - 0.5*float64(m.n)*math.Log(2*math.Pi)
	return -logLik
}

// NegGrad writes the gradient of the negative marginal log-likelihood into
// grad. For a kernel-matrix parameter θ with derivative ∂K:
//
//	∂L/∂θ = ½ (αᵀ ∂K α - tr(K⁻¹ ∂K))
//
// with ∂K/∂(log s²) = s²·T and ∂K/∂(log σ²) = σ²·I, and
// ∂L/∂m = Σ αᵢ for the constant mean.
func (m *mll) NegGrad(grad, x []float64) {
	state := m.stateAt(x)
	if !state.ok {
		grad[0], grad[1], grad[2] = 0, 0, 0
		return
	}

	s2 := math.Exp(x[1])
	n2 := math.Exp(x[2])
	alpha := state.alpha

	var Kinv mat.SymDense
	if err := state.chol.InverseTo(&Kinv); err != nil {
		grad[0], grad[1], grad[2] = 0, 0, 0
		return
	}

	var gradMean float64
	for i := 0; i < m.n; i++ {
		gradMean += alpha.AtVec(i)
	}

	// αᵀTα and tr(K⁻¹T); both matrices are symmetric so the elementwise
	// product sums directly.
	var quadT, trT, quadI, trI float64
	for i := 0; i < m.n; i++ {
		var rowDot float64
		for j := 0; j < m.n; j++ {
			tij := m.T.At(i, j)
			rowDot += tij * alpha.AtVec(j)
			trT += Kinv.At(i, j) * tij
		}
		quadT += alpha.AtVec(i) * rowDot
		trI += Kinv.At(i, i)
		quadI += alpha.AtVec(i) * alpha.AtVec(i)
	}
	// trT currently sums K⁻¹∘T over all entries, which equals tr(K⁻¹T)
	// because both are symmetric.

	gradS2 := 0.5 * s2 * (quadT - trT)
	gradN2 := 0.5 * n2 * (quadI - trI)

	// Minimizing the negative likelihood flips the signs
	grad[0] = -gradMean
	grad[1] = -gradS2
	grad[2] = -gradN2
}
