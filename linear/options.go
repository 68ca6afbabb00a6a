package linear

import (
	"math"

	"github.com/YuminosukeSato/unigrad/pkg/errors"
	"github.com/YuminosukeSato/unigrad/pkg/log"
)

const (
	// DefaultLearningRate is the step size used by Fit.
	DefaultLearningRate = 0.1
	// DefaultTolerance is the per-parameter threshold of DeltaPolicy.
	DefaultTolerance = 1e-4
	// DefaultMaxIter bounds the number of updates of one descent.
	DefaultMaxIter = 1_000_000
)

// Config は Estimator のハイパーパラメータ
type Config struct {
	LearningRate float64
	Policy       ConvergencePolicy
	// Tolerance は DeltaPolicy でのみ使用される
	Tolerance float64
	MaxIter   int
	Logger    log.Logger
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		LearningRate: DefaultLearningRate,
		Policy:       CostPolicy,
		Tolerance:    DefaultTolerance,
		MaxIter:      DefaultMaxIter,
		Logger:       log.GetLoggerWithName("linear.estimator"),
	}
}

// Validate は設定値を検証する
func (c Config) Validate() error {
	if err := validateLearningRate(c.LearningRate); err != nil {
		return err
	}
	if !c.Policy.valid() {
		return errors.NewValidationError("convergence_policy", "unknown policy", int(c.Policy))
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return errors.NewValidationError("tolerance", "must be positive and finite", c.Tolerance)
	}
	if c.MaxIter <= 0 {
		return errors.NewValidationError("max_iter", "must be positive", c.MaxIter)
	}
	if c.Logger == nil {
		return errors.NewValidationError("logger", "must not be nil", nil)
	}
	return nil
}

func validateLearningRate(alpha float64) error {
	if !(alpha > 0) || math.IsInf(alpha, 0) {
		return errors.NewValidationError("learning_rate", "must be positive and finite", alpha)
	}
	return nil
}

// Option is a function that configures an Estimator
type Option func(*Config)

// WithLearningRate sets the step size used by Fit
func WithLearningRate(alpha float64) Option {
	return func(c *Config) {
		c.LearningRate = alpha
	}
}

// WithPolicy sets the convergence policy
func WithPolicy(p ConvergencePolicy) Option {
	return func(c *Config) {
		c.Policy = p
	}
}

// WithTolerance sets the threshold of DeltaPolicy
func WithTolerance(tol float64) Option {
	return func(c *Config) {
		c.Tolerance = tol
	}
}

// WithMaxIter sets the maximum number of updates per descent
func WithMaxIter(n int) Option {
	return func(c *Config) {
		c.MaxIter = n
	}
}

// WithLogger sets the logger used for progress diagnostics
func WithLogger(l log.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
