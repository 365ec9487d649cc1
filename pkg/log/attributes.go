package log

// Standard attribute keys for benchmark and model operations. Using these
// keys keeps log output consistent across packages and makes per-trial
// records easy to filter.

// Model and operation context.
const (
	// ModelNameKey identifies the type of model.
	// Examples: "GPRegressor", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "benchmark"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "gp", "kernels", "benchmark"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the fingerprint length (columns).
	FeaturesKey = "data.features"
)

// Benchmark context.
const (
	// TrialKey is the zero-based trial index within a benchmark run.
	// The trial index doubles as the split seed.
	TrialKey = "bench.trial"

	// TrainSizeKey and TestSizeKey are the per-trial partition sizes.
	TrainSizeKey = "bench.train_size"
	TestSizeKey  = "bench.test_size"
)

// Metric values.
const (
	R2Key        = "metric.r2"
	RMSEKey      = "metric.rmse"
	MAEKey       = "metric.mae"
	TrainRMSEKey = "metric.train_rmse"

	// DurationMsKey records wall-clock duration of an operation in milliseconds.
	DurationMsKey = "duration_ms"
)
