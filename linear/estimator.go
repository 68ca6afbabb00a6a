package linear

import (
	"context"
	"fmt"
	"time"

	"github.com/YuminosukeSato/unigrad/core/model"
	"github.com/YuminosukeSato/unigrad/metrics"
	"github.com/YuminosukeSato/unigrad/pkg/errors"
	"github.com/YuminosukeSato/unigrad/pkg/log"
	"gonum.org/v1/gonum/mat"
)

const (
	modelName = "Estimator"

	// 最終ステップでのコスト増加がこの相対幅と絶対幅の両方を超えたら警告する
	overshootRatio = 1e-6
	overshootFloor = 1e-12
)

// Theta は単変量線形モデルのパラメータ (θ0, θ1)
type Theta struct {
	Intercept float64 // θ0
	Slope     float64 // θ1
}

// Apply は h(x, θ) = θ0 + θ1·x を返す
func (t Theta) Apply(x float64) float64 {
	return t.Intercept + t.Slope*x
}

func (t Theta) vec() *mat.VecDense {
	return mat.NewVecDense(2, []float64{t.Intercept, t.Slope})
}

// Estimator はバッチ勾配降下法で学習する単変量線形回帰モデル
//
// データセットと特徴量行列は構築時に一度だけ作られ、以後変更されない。
// 学習済みパラメータは GradientDescent が成功した時点で確定する。
// Estimator は並行アクセスを想定していない。
type Estimator struct {
	model.BaseEstimator

	cfg    Config
	logger log.Logger

	x        []float64
	features *mat.Dense    // 特徴量行列 (N×2): 各行 [1, x_i]
	y        *mat.VecDense // ラベルベクトル
	n        int

	theta      Theta
	iterations int
	history    []float64
}

var _ model.Predictor = (*Estimator)(nil)

// NewEstimator は x と y から Estimator を作成する
//
// x が空の場合、または len(x) != len(y) の場合は InvalidInputError を返す。
//
// 設定が不正な場合はデータより先に ValidationError を返す。
func NewEstimator(x, y []float64, opts ...Option) (*Estimator, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var err error
	switch {
	case len(x) == 0:
		err = errors.NewInvalidInputError("NewEstimator", "cannot regress without data", len(x), len(y), errors.ErrEmptyData)
	case len(x) != len(y):
		err = errors.NewInvalidInputError("NewEstimator", "x and y must be the same length", len(x), len(y), errors.ErrLengthMismatch)
	}
	if err != nil {
		cfg.Logger.Error("Invalid training data", err,
			log.ModelNameKey, modelName,
			log.ErrorCodeKey, log.ErrorInvalidInput,
		)
		return nil, err
	}

	n := len(x)
	xs := make([]float64, n)
	copy(xs, x)

	// 切片項のために 1 の列を追加: [1, x]
	X := mat.NewDense(n, 2, nil)
	for i, xi := range xs {
		X.Set(i, 0, 1.0)
		X.Set(i, 1, xi)
	}

	ys := make([]float64, n)
	copy(ys, y)

	e := &Estimator{
		cfg:    cfg,
		logger: cfg.Logger.With(log.ModelNameKey, modelName),
		x:        xs,
		features: X,
		y:        mat.NewVecDense(n, ys),
		n:        n,
	}
	e.logger.Debug("Estimator created", log.SamplesKey, n, log.FeaturesKey, 2)
	return e, nil
}

// ComputeCost は (1/2N)·Σ(θ0 + θ1·x_i − y_i)² を返す
// 学習状態に関係なく呼び出せる。
func (e *Estimator) ComputeCost(theta Theta) float64 {
	c := e.cost(theta, mat.NewVecDense(e.n, nil))
	if e.logger.Enabled(context.Background(), log.LevelDebug) {
		e.logger.Debug("Cost computed",
			log.OperationKey, log.OperationCost,
			log.Theta0Key, theta.Intercept,
			log.Theta1Key, theta.Slope,
			log.LossKey, c,
		)
	}
	return c
}

// FeatureMatrix は特徴量行列 (N×2) のコピーを返す
func (e *Estimator) FeatureMatrix() *mat.Dense {
	return mat.DenseCopyOf(e.features)
}

// residuals は dst に Xθ − y を書き込む
func (e *Estimator) residuals(theta Theta, dst *mat.VecDense) {
	dst.MulVec(e.features, theta.vec())
	dst.SubVec(dst, e.y)
}

func (e *Estimator) cost(theta Theta, buf *mat.VecDense) float64 {
	e.residuals(theta, buf)
	return mat.Dot(buf, buf) / (2 * float64(e.n))
}

// Fit は設定された学習率で GradientDescent を実行する
func (e *Estimator) Fit() (Theta, error) {
	return e.GradientDescent(e.cfg.LearningRate)
}

// GradientDescent は θ = (0, 0) から全データの勾配で θ を同時更新し、
// 設定された収束条件を満たした時点の θ を学習済みパラメータとして保存して返す。
//
//	θ0' = θ0 − α·(1/N)·Σ(h(x_i) − y_i)
//	θ1' = θ1 − α·(1/N)·Σ(h(x_i) − y_i)·x_i
//
// MaxIter 回の更新で収束しない場合は DidNotConvergeError、θ またはコストが
// NaN/Inf になった場合は NumericalInstabilityError を返す。失敗時は以前の
// 学習状態を変更しない。
func (e *Estimator) GradientDescent(learningRate float64) (Theta, error) {
	if err := validateLearningRate(learningRate); err != nil {
		return Theta{}, err
	}

	logger := e.logger.With(
		log.OperationKey, log.OperationFit,
		log.LearningRateKey, learningRate,
		log.PolicyKey, e.cfg.Policy.String(),
	)
	if e.cfg.Policy == DeltaPolicy {
		logger = logger.With(log.ToleranceKey, e.cfg.Tolerance)
	}
	debug := logger.Enabled(context.Background(), log.LevelDebug)
	start := time.Now()

	var (
		theta    Theta
		residual = mat.NewVecDense(e.n, nil)
		grad     = mat.NewVecDense(2, nil)
		cost     = e.cost(theta, residual)
		history  = []float64{cost}
		scale    = learningRate / float64(e.n)
	)

	for iter := 0; iter < e.cfg.MaxIter; iter++ {
		if debug {
			logger.Debug(fmt.Sprintf("iteration: %d, theta0: %v, theta1: %v", iter, theta.Intercept, theta.Slope),
				log.IterationKey, iter,
				log.Theta0Key, theta.Intercept,
				log.Theta1Key, theta.Slope,
				log.LossKey, cost,
			)
		}

		// 勾配: Xᵀ(Xθ − y)
		e.residuals(theta, residual)
		grad.MulVec(e.features.T(), residual)

		next := Theta{
			Intercept: theta.Intercept - scale*grad.AtVec(0),
			Slope:     theta.Slope - scale*grad.AtVec(1),
		}
		if err := errors.CheckNumericalStability("gradient_update", []float64{next.Intercept, next.Slope}, iter+1); err != nil {
			logger.Error("Gradient descent diverged", err, log.ErrorCodeKey, log.ErrorInstability)
			return Theta{}, err
		}

		nextCost := e.cost(next, residual)
		if err := errors.CheckScalar("cost", nextCost, iter+1); err != nil {
			logger.Error("Gradient descent diverged", err, log.ErrorCodeKey, log.ErrorInstability)
			return Theta{}, err
		}
		history = append(history, nextCost)

		s := step{prev: theta, next: next, prevCost: cost, nextCost: nextCost}
		if e.cfg.Policy.converged(s, e.cfg.Tolerance) {
			e.warnOnOvershoot(s, iter+1)

			e.theta = next
			e.iterations = iter + 1
			e.history = history
			e.SetFitted()

			logger.Info("Gradient descent converged",
				log.IterationKey, e.iterations,
				log.Theta0Key, next.Intercept,
				log.Theta1Key, next.Slope,
				log.LossKey, nextCost,
				log.DurationMsKey, time.Since(start).Milliseconds(),
			)
			return next, nil
		}

		theta, cost = next, nextCost
	}

	err := errors.NewDidNotConvergeError("GradientDescent", e.cfg.Policy.String(), e.cfg.MaxIter,
		[]float64{theta.Intercept, theta.Slope})
	logger.Error("Gradient descent did not converge", err,
		log.ErrorCodeKey, log.ErrorConvergence,
		log.MaxIterKey, e.cfg.MaxIter,
		log.SuggestionKey, "lower the learning rate or raise max_iter",
	)
	return Theta{}, err
}

// warnOnOvershoot emits a ConvergenceWarning when the cost policy stopped on
// a step that made the fit noticeably worse.
func (e *Estimator) warnOnOvershoot(s step, iterations int) {
	if e.cfg.Policy != CostPolicy {
		return
	}
	increase := s.nextCost - s.prevCost
	if increase > overshootRatio*s.prevCost && increase > overshootFloor {
		errors.Warn(errors.NewConvergenceWarning("GradientDescent", iterations,
			fmt.Sprintf("cost increased from %g to %g on the final step; the learning rate may be too large", s.prevCost, s.nextCost)))
	}
}

// Predict は学習済みパラメータで h(x) = θ0 + θ1·x を返す
func (e *Estimator) Predict(x float64) (float64, error) {
	if !e.IsFitted() {
		return 0, e.notFitted("Predict", log.OperationPredict)
	}
	return e.theta.Apply(x), nil
}

// PredictBatch は複数の入力に対する予測値を返す
func (e *Estimator) PredictBatch(xs []float64) ([]float64, error) {
	if !e.IsFitted() {
		return nil, e.notFitted("PredictBatch", log.OperationPredict)
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = e.theta.Apply(x)
	}
	return out, nil
}

// Score は学習データに対する決定係数（R²）を返す
func (e *Estimator) Score() (float64, error) {
	if !e.IsFitted() {
		return 0, e.notFitted("Score", log.OperationScore)
	}
	yPred := mat.NewVecDense(e.n, nil)
	yPred.MulVec(e.features, e.theta.vec())

	r2, err := metrics.R2Score(e.y, yPred)
	if err != nil {
		return 0, errors.Wrap(err, "Estimator.Score")
	}
	e.logger.Debug("Score computed", log.OperationKey, log.OperationScore, log.R2ScoreKey, r2)
	return r2, nil
}

// notFitted は NotFittedError を作成し、推論フェーズの警告として記録する
func (e *Estimator) notFitted(method, operation string) error {
	err := errors.NewNotFittedError(modelName, method)
	e.logger.Warn("Model used before fitting", err,
		log.OperationKey, operation,
		log.PhaseKey, log.PhaseInference,
		log.ErrorCodeKey, log.ErrorNotFitted,
	)
	return err
}

// Theta は学習済みパラメータを返す
func (e *Estimator) Theta() (Theta, error) {
	if !e.IsFitted() {
		return Theta{}, errors.NewNotFittedError(modelName, "Theta")
	}
	return e.theta, nil
}

// Iterations は直近の成功した学習での更新回数を返す
func (e *Estimator) Iterations() int {
	return e.iterations
}

// CostHistory は直近の成功した学習でのコストの推移を返す
// 先頭は初期値 θ = (0, 0) でのコスト。
func (e *Estimator) CostHistory() []float64 {
	out := make([]float64, len(e.history))
	copy(out, e.history)
	return out
}

// Data はデータセットのコピーを返す
func (e *Estimator) Data() (x, y []float64) {
	x = make([]float64, e.n)
	copy(x, e.x)
	y = make([]float64, e.n)
	copy(y, e.y.RawVector().Data)
	return x, y
}

// Config は Estimator の設定を返す
func (e *Estimator) Config() Config {
	return e.cfg
}
