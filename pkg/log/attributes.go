package log

// Model and Operation Context.
//
// Keys follow a hierarchical naming convention ("model.name",
// "training.iteration") so that log lines can be filtered consistently.
const (
	// ModelNameKey identifies the type of model, e.g. "Estimator".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "cost".
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is logging.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features, including the bias column.
	FeaturesKey = "data.features"
)

// Training and Metrics
const (
	DurationMsKey = "perf.duration_ms"

	// LossKey records the cost value during training or evaluation.
	LossKey = "metrics.loss"

	// R2ScoreKey records the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// IterationKey records the current iteration number.
	IterationKey = "training.iteration"

	// Theta0Key and Theta1Key record the intercept and slope.
	Theta0Key = "params.theta0"
	Theta1Key = "params.theta1"
)

// Error Context
const (
	ErrorCodeKey  = "error.code"
	SuggestionKey = "error.suggestion"
)

// Hyperparameters
const (
	LearningRateKey = "hyperparams.learning_rate"

	// PolicyKey records the convergence policy ("cost" or "delta").
	PolicyKey = "hyperparams.convergence_policy"

	ToleranceKey = "hyperparams.tolerance"
	MaxIterKey   = "hyperparams.max_iter"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationCost    = "cost"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted    = "NOT_FITTED"
	ErrorInvalidInput = "INVALID_INPUT"
	ErrorConvergence  = "CONVERGENCE_FAILURE"
	ErrorInstability  = "NUMERICAL_INSTABILITY"
)
