package benchmark

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/molgp/core/parallel"
	"github.com/YuminosukeSato/molgp/gp"
	"github.com/YuminosukeSato/molgp/kernels"
	"github.com/YuminosukeSato/molgp/metrics"
	"github.com/YuminosukeSato/molgp/pkg/errors"
	mllog "github.com/YuminosukeSato/molgp/pkg/log"
	"github.com/YuminosukeSato/molgp/preprocessing"
)

// Config controls a benchmark run.
type Config struct {
	// NTrials is the number of independent seeded train/test experiments.
	NTrials int `yaml:"n_trials"`

	// TestSize is the held-out fraction per trial, in (0, 1).
	TestSize float64 `yaml:"test_size"`

	// MaxIter caps the marginal-likelihood optimizer per trial.
	MaxIter int `yaml:"max_iter"`

	// Workers sets how many trials run concurrently. Trials are mutually
	// independent, so this changes throughput only, never outputs. Values
	// below 2 run sequentially.
	Workers int `yaml:"workers"`

	// Verbose enables per-trial log lines.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the published experiment protocol: 20 trials with
// 80/20 splits.
func DefaultConfig() Config {
	return Config{
		NTrials:  20,
		TestSize: 0.2,
		MaxIter:  100,
		Workers:  1,
		Verbose:  true,
	}
}

func (c Config) validate() error {
	if c.NTrials <= 0 {
		return errors.NewValueError("benchmark.Run", "n_trials must be a positive integer")
	}
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return errors.NewValueError("benchmark.Run", "test_size must be in (0, 1)")
	}
	return nil
}

// TrialResult holds the metrics of one trial. Test metrics are on the
// original label scale; TrainRMSEStd is on the standardized scale as a fit
// diagnostic.
type TrialResult struct {
	Trial        int
	R2           float64
	RMSE         float64
	MAE          float64
	TrainRMSEStd float64
	TrainRMSE    float64
}

// Result aggregates all trials of a run.
type Result struct {
	Trials []TrialResult

	R2   metrics.Summary
	RMSE metrics.Summary
	MAE  metrics.Summary
}

// String formats the summary the way the published experiment reports it.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mean R^2: %s\n", r.R2)
	fmt.Fprintf(&b, "mean RMSE: %s\n", r.RMSE)
	fmt.Fprintf(&b, "mean MAE: %s", r.MAE)
	return b.String()
}

// Run evaluates a GP regressor with the given base kernel over cfg.NTrials
// independent train/test splits of (X, y) and returns aggregate metrics.
//
// Each trial i:
//  1. splits the rows deterministically with seed i,
//  2. standardizes labels on the training partition only,
//  3. fits a fresh GP on the training partition,
//  4. predicts the held-out labels and inverse-transforms to the original
//     scale,
//  5. records test R², RMSE and MAE plus train-RMSE diagnostics.
//
// A fit or prediction failure on any trial aborts the whole run with a
// TrialError naming the failing trial: averaging over fewer trials than
// requested would silently change the meaning of the reported statistics.
func Run(kernel kernels.Kernel, X mat.Matrix, y *mat.VecDense, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return nil, errors.NewModelError("benchmark.Run", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != nSamples {
		return nil, errors.NewDimensionError("benchmark.Run", nSamples, y.Len(), 0)
	}

	logger := slog.Default().With(
		mllog.ComponentKey, "benchmark",
		mllog.OperationKey, "benchmark",
		mllog.SamplesKey, nSamples,
		mllog.FeaturesKey, nFeatures,
	)

	trials := make([]TrialResult, cfg.NTrials)
	err := parallel.ForEach(cfg.NTrials, cfg.Workers, func(i int) error {
		res, trialErr := runTrial(kernel, X, y, cfg, i, logger)
		if trialErr != nil {
			return trialErr
		}
		trials[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Trials: trials}

	r2s := make([]float64, cfg.NTrials)
	rmses := make([]float64, cfg.NTrials)
	maes := make([]float64, cfg.NTrials)
	for i, tr := range trials {
		r2s[i] = tr.R2
		rmses[i] = tr.RMSE
		maes[i] = tr.MAE
	}

	if result.R2, err = metrics.Summarize(r2s); err != nil {
		return nil, err
	}
	if result.RMSE, err = metrics.Summarize(rmses); err != nil {
		return nil, err
	}
	if result.MAE, err = metrics.Summarize(maes); err != nil {
		return nil, err
	}

	logger.Info("benchmark finished",
		mllog.R2Key, fmt.Sprintf("%.4f", result.R2.Mean),
		mllog.RMSEKey, fmt.Sprintf("%.4f", result.RMSE.Mean),
		mllog.MAEKey, fmt.Sprintf("%.4f", result.MAE.Mean),
	)
	return result, nil
}

func runTrial(kernel kernels.Kernel, X mat.Matrix, y *mat.VecDense, cfg Config, trial int, logger *slog.Logger) (TrialResult, error) {
	split, err := Split(y.Len(), cfg.TestSize, int64(trial))
	if err != nil {
		return TrialResult{}, err
	}

	xTrain, yTrain := subset(X, y, split.TrainIndices)
	xTest, yTest := subset(X, y, split.TestIndices)

	// Labels are standardized per trial on the training partition only;
	// features stay on their native fingerprint scale.
	scaler := preprocessing.NewStandardScalerDefault()
	yTrainStd, err := scaler.FitTransform(yTrain)
	if err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "fit", err)
	}

	model := gp.NewGPRegressor(kernel, gp.WithMaxIter(cfg.MaxIter))
	fitStart := time.Now()
	if err := model.Fit(xTrain, yTrainStd); err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "fit", err)
	}
	fitDuration := time.Since(fitStart)

	// Held-out predictions back on the original label scale
	predStd, _, err := model.PredictWithStd(xTest)
	if err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "predict", err)
	}
	pred, err := scaler.InverseTransformVec(predStd)
	if err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "predict", err)
	}

	yTestVec := denseColumn(yTest)

	r2, err := metrics.R2Score(yTestVec, pred)
	if err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "predict", err)
	}
	rmse, err := metrics.RMSE(yTestVec, pred)
	if err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "predict", err)
	}
	mae, err := metrics.MAE(yTestVec, pred)
	if err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "predict", err)
	}

	// Train-set diagnostics on both scales
	trainPredStd, _, err := model.PredictWithStd(xTrain)
	if err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "predict", err)
	}
	trainRMSEStd, err := metrics.RMSE(denseColumn(yTrainStd), trainPredStd)
	if err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "predict", err)
	}
	trainPred, err := scaler.InverseTransformVec(trainPredStd)
	if err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "predict", err)
	}
	trainRMSE, err := metrics.RMSE(denseColumn(yTrain), trainPred)
	if err != nil {
		return TrialResult{}, errors.NewTrialError(trial, "predict", err)
	}

	if cfg.Verbose {
		logger.Info("trial finished",
			mllog.TrialKey, trial,
			mllog.TrainSizeKey, len(split.TrainIndices),
			mllog.TestSizeKey, len(split.TestIndices),
			mllog.DurationMsKey, fitDuration.Milliseconds(),
			mllog.TrainRMSEKey, fmt.Sprintf("%.3f", trainRMSE),
			mllog.R2Key, fmt.Sprintf("%.3f", r2),
			mllog.RMSEKey, fmt.Sprintf("%.3f", rmse),
			mllog.MAEKey, fmt.Sprintf("%.3f", mae),
		)
	}

	return TrialResult{
		Trial:        trial,
		R2:           r2,
		RMSE:         rmse,
		MAE:          mae,
		TrainRMSEStd: trainRMSEStd,
		TrainRMSE:    trainRMSE,
	}, nil
}

// subset gathers the selected rows of X and y into fresh matrices.
func subset(X mat.Matrix, y *mat.VecDense, indices []int) (*mat.Dense, *mat.Dense) {
	_, d := X.Dims()
	outX := mat.NewDense(len(indices), d, nil)
	outY := mat.NewDense(len(indices), 1, nil)
	for row, idx := range indices {
		for j := 0; j < d; j++ {
			outX.Set(row, j, X.At(idx, j))
		}
		outY.Set(row, 0, y.AtVec(idx))
	}
	return outX, outY
}

func denseColumn(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}
