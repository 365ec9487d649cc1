// Package gp implements exact Gaussian process regression with a constant
// mean, a scaled fingerprint kernel and a Gaussian noise likelihood.
//
// The model is composed from three swappable parts rather than a class
// hierarchy: the mean function (a single constant), the covariance (any
// kernels.Kernel wrapped with a trainable output-scale) and the noise model
// (homoscedastic Gaussian). Fitting maximizes the exact marginal
// log-likelihood with L-BFGS; prediction uses the closed-form posterior.
//
// A regressor is single-use: it moves from unfitted through fitting to fitted
// and never back. Construct a fresh instance per benchmark trial.
package gp

import (
	"math"

	"github.com/YuminosukeSato/molgp/core/model"
	"github.com/YuminosukeSato/molgp/kernels"
	pkgerrors "github.com/YuminosukeSato/molgp/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Default optimizer iteration cap. Bounds worst-case fit latency; hitting the
// cap raises a ConvergenceWarning, not an error.
const defaultMaxIter = 100

// GPRegressor is an exact Gaussian process regressor.
//
// Labels are expected to be standardized (zero mean, unit variance) before
// fitting; the constant mean and output-scale then start from a well-scaled
// region. The fingerprint inputs themselves are used as-is.
type GPRegressor struct {
	model.BaseEstimator

	kernel kernels.Kernel // base kernel, no amplitude

	// Hyperparameters, optimized during Fit when optimizeParams is set.
	ConstMean     float64 // constant prior mean m
	OutputScale   float64 // kernel amplitude s²
	NoiseVariance float64 // likelihood noise σ²

	maxIter        int
	optimizeParams bool

	// Fitted state
	xTrain    *mat.Dense
	trainGram *mat.SymDense // base kernel Gram over training inputs
	chol      mat.Cholesky
	alpha     *mat.VecDense
	jitter    float64
	logML     float64
	nFeatures int
}

// Option configures a GPRegressor.
type Option func(*GPRegressor)

// WithMaxIter caps the number of L-BFGS iterations during fitting.
func WithMaxIter(n int) Option {
	return func(g *GPRegressor) {
		g.maxIter = n
	}
}

// WithFixedParams sets the hyperparameters directly and disables
// marginal-likelihood optimization. Mainly useful for tests and for reusing
// hyperparameters fitted elsewhere.
func WithFixedParams(constMean, outputScale, noiseVariance float64) Option {
	return func(g *GPRegressor) {
		g.ConstMean = constMean
		g.OutputScale = outputScale
		g.NoiseVariance = noiseVariance
		g.optimizeParams = false
	}
}

// NewGPRegressor creates a regressor over the given base kernel.
func NewGPRegressor(kernel kernels.Kernel, opts ...Option) *GPRegressor {
	g := &GPRegressor{
		kernel:         kernel,
		ConstMean:      0,
		OutputScale:    1.0,
		NoiseVariance:  0.1,
		maxIter:        defaultMaxIter,
		optimizeParams: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fit learns the mean, output-scale and noise hyperparameters on the training
// data by maximizing the exact marginal log-likelihood, then stores the
// factorized training covariance for prediction.
//
// X is n×d, y is n×1. Fit fails with a typed error when the optimizer cannot
// produce finite hyperparameters or the final covariance cannot be factorized
// even after adding diagonal jitter.
func (g *GPRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return pkgerrors.NewModelError("GPRegressor.Fit", "empty data", pkgerrors.ErrEmptyData)
	}
	if ry != r {
		return pkgerrors.NewDimensionError("GPRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return pkgerrors.NewValueError("GPRegressor.Fit", "y must be a column vector")
	}
	if g.OutputScale <= 0 || g.NoiseVariance <= 0 {
		return pkgerrors.NewValueError("GPRegressor.Fit", "output-scale and noise variance must be positive")
	}

	g.SetFitting()

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}
	if err := pkgerrors.CheckVector("GPRegressor.Fit", yVec, r, 0); err != nil {
		return err
	}

	xTrain := mat.DenseCopyOf(X)

	// The base Gram matrix depends only on the fixed fingerprints, so it is
	// computed once and shared by every optimizer step.
	baseGram, err := g.kernel.Gram(xTrain, xTrain)
	if err != nil {
		return err
	}
	T := denseToSym(baseGram)

	objective := newMLL(T, yVec)

	if g.optimizeParams {
		if err := g.maximizeLikelihood(objective); err != nil {
			return err
		}
	}

	// Final factorization at the chosen hyperparameters
	theta := []float64{g.ConstMean, math.Log(g.OutputScale), math.Log(g.NoiseVariance)}
	state := objective.factorize(theta)
	if !state.ok {
		return pkgerrors.NewModelError("GPRegressor.Fit", "covariance factorization failed",
			pkgerrors.ErrNotPositiveDefinite)
	}

	g.xTrain = xTrain
	g.trainGram = T
	g.chol = state.chol
	g.alpha = state.alpha
	g.jitter = state.jitter
	g.logML = -objective.NegValue(theta)
	g.nFeatures = c
	g.SetFitted()
	return nil
}

func (g *GPRegressor) maximizeLikelihood(objective *mll) error {
	problem := optimize.Problem{
		Func: objective.NegValue,
		Grad: objective.NegGrad,
	}
	initX := []float64{g.ConstMean, math.Log(g.OutputScale), math.Log(g.NoiseVariance)}
	settings := &optimize.Settings{
		MajorIterations: g.maxIter,
	}

	result, err := optimize.Minimize(problem, initX, settings, &optimize.LBFGS{})
	if result == nil {
		return pkgerrors.NewModelError("GPRegressor.Fit", "optimizer failure", err)
	}

	// L-BFGS can stop on the iteration cap or a stalled line search; the
	// incumbent point is still usable as long as it is finite.
	if stabErr := pkgerrors.CheckNumericalStability("marginal_likelihood", result.X, result.Stats.MajorIterations); stabErr != nil {
		return pkgerrors.NewModelError("GPRegressor.Fit", "optimizer produced non-finite hyperparameters", stabErr)
	}
	if math.IsInf(result.F, 0) || math.IsNaN(result.F) {
		return pkgerrors.NewModelError("GPRegressor.Fit", "optimizer failure",
			pkgerrors.ErrNotPositiveDefinite)
	}

	if err != nil || result.Status == optimize.IterationLimit {
		pkgerrors.Warn(pkgerrors.NewConvergenceWarning("L-BFGS", result.Stats.MajorIterations, ""))
	}

	g.ConstMean = result.X[0]
	g.OutputScale = math.Exp(result.X[1])
	g.NoiseVariance = math.Exp(result.X[2])
	return nil
}

// Predict returns the posterior predictive mean for the rows of X as an n×1
// matrix.
func (g *GPRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	mean, _, err := g.PredictWithStd(X)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(mean.Len(), 1, nil)
	for i := 0; i < mean.Len(); i++ {
		out.Set(i, 0, mean.AtVec(i))
	}
	return out, nil
}

// PredictWithStd returns the posterior predictive mean and standard deviation
// of the latent function for the rows of X:
//
//	mean = m + K*ᵀ (K + σ²I)⁻¹ (y - m·1)
//	var  = diag(K** - K*ᵀ (K + σ²I)⁻¹ K*)
//
// Prediction is read-only and repeatable on a fitted model.
func (g *GPRegressor) PredictWithStd(X mat.Matrix) (mean, std *mat.VecDense, err error) {
	if !g.IsFitted() {
		return nil, nil, pkgerrors.NewNotFittedError("GPRegressor", "PredictWithStd")
	}

	nTest, c := X.Dims()
	if c != g.nFeatures {
		return nil, nil, pkgerrors.NewDimensionError("GPRegressor.PredictWithStd", g.nFeatures, c, 1)
	}

	// Cross covariance s²·k(X, Xtrain)
	kStar, err := g.kernel.Gram(X, g.xTrain)
	if err != nil {
		return nil, nil, err
	}
	kStar.Scale(g.OutputScale, kStar)

	nTrain := g.alpha.Len()
	mean = mat.NewVecDense(nTest, nil)
	std = mat.NewVecDense(nTest, nil)

	// Prior variances s²·k(x, x)
	priorDiag, err := g.kernel.Diag(X)
	if err != nil {
		return nil, nil, err
	}

	v := mat.NewVecDense(nTrain, nil)
	ki := mat.NewVecDense(nTrain, nil)
	for i := 0; i < nTest; i++ {
		for j := 0; j < nTrain; j++ {
			ki.SetVec(j, kStar.At(i, j))
		}

		mean.SetVec(i, g.ConstMean+mat.Dot(ki, g.alpha))

		if solveErr := g.chol.SolveVecTo(v, ki); solveErr != nil {
			return nil, nil, pkgerrors.NewModelError("GPRegressor.PredictWithStd",
				"posterior solve failed", pkgerrors.ErrNotPositiveDefinite)
		}
		variance := g.OutputScale*priorDiag.AtVec(i) - mat.Dot(ki, v)
		if variance < 0 {
			// Rounding can push a tiny posterior variance negative
			variance = 0
		}
		std.SetVec(i, math.Sqrt(variance))
	}

	if err := pkgerrors.CheckVector("GPRegressor.PredictWithStd", mean, nTest, 0); err != nil {
		return nil, nil, err
	}
	return mean, std, nil
}

// LogMarginalLikelihood returns the marginal log-likelihood of the training
// labels at the fitted hyperparameters.
func (g *GPRegressor) LogMarginalLikelihood() (float64, error) {
	if !g.IsFitted() {
		return 0, pkgerrors.NewNotFittedError("GPRegressor", "LogMarginalLikelihood")
	}
	return g.logML, nil
}

// Jitter returns the diagonal jitter that was required to factorize the
// training covariance, 0 in the common case.
func (g *GPRegressor) Jitter() (float64, error) {
	if !g.IsFitted() {
		return 0, pkgerrors.NewNotFittedError("GPRegressor", "Jitter")
	}
	return g.jitter, nil
}

// Kernel returns the base kernel the regressor was constructed with.
func (g *GPRegressor) Kernel() kernels.Kernel {
	return g.kernel
}

func denseToSym(d *mat.Dense) *mat.SymDense {
	n, _ := d.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			// Average the two triangles to absorb floating-point asymmetry
			s.SetSym(i, j, 0.5*(d.At(i, j)+d.At(j, i)))
		}
	}
	return s
}

var _ model.Fitter = (*GPRegressor)(nil)
var _ model.UncertaintyPredictor = (*GPRegressor)(nil)
