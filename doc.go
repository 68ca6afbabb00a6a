// Package unigrad fits univariate linear regression models with batch
// gradient descent.
//
// The model is the hypothesis h(x) = θ0 + θ1·x, trained by minimizing the
// squared-error cost J(θ) = (1/2N)·Σ(h(x_i) − y_i)² from θ = (0, 0).
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/unigrad/linear"
//	)
//
//	func main() {
//	    e, err := linear.NewEstimator(
//	        []float64{1, 2, 3, 4},
//	        []float64{2, 3, 4, 5},
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    theta, err := e.GradientDescent(0.1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    y, _ := e.Predict(5)
//	    fmt.Println(theta, y)
//	}
//
// # Packages
//
//   - linear: the Estimator, its options and convergence policies
//   - metrics: MSE, RMSE, MAE and R² on gonum vectors
//   - plotting: scatter-with-fit and cost-curve plots via gonum/plot
//   - core/model: estimator state shared by models
//   - pkg/errors: typed errors and warnings on top of cockroachdb/errors
//   - pkg/log: structured logging backed by zerolog and log/slog
//
// # Convergence
//
// By default descent stops once a step no longer lowers the cost
// (linear.CostPolicy). linear.DeltaPolicy instead stops once both
// parameters move by at most the configured tolerance. Either way the
// parameters of the final step are kept, and linear.WithMaxIter bounds the
// number of steps.
//
// # Errors
//
// Construction with empty or mismatched data returns
// errors.InvalidInputError. Predicting before a successful fit returns
// errors.NotFittedError. A descent that hits the iteration cap or produces
// NaN/Inf returns errors.DidNotConvergeError or
// errors.NumericalInstabilityError and leaves any previous fit in place.
package unigrad
