// Command unigrad fits a univariate linear regression by batch gradient
// descent and prints the fitted parameters and a prediction.
//
//	unigrad -x 1,2,3,4 -y 2,3,4,5 -predict 5 -log-level debug
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/unigrad/linear"
	"github.com/YuminosukeSato/unigrad/metrics"
	"github.com/YuminosukeSato/unigrad/pkg/errors"
	"github.com/YuminosukeSato/unigrad/pkg/log"
	"github.com/YuminosukeSato/unigrad/plotting"
)

type options struct {
	x, y     []float64
	alpha    float64
	policy   linear.ConvergencePolicy
	tol      float64
	maxIter  int
	predict  float64
	level    log.Level
	plot     string
	costPlot string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("unigrad failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	log.SetupLogger(stderr, opts.level)
	log.SetProvider(log.NewZerologProvider(stderr, opts.level))

	e, err := linear.NewEstimator(opts.x, opts.y,
		linear.WithLearningRate(opts.alpha),
		linear.WithPolicy(opts.policy),
		linear.WithTolerance(opts.tol),
		linear.WithMaxIter(opts.maxIter),
	)
	if err != nil {
		return err
	}

	theta, err := e.Fit()
	if err != nil {
		return errors.WithHint(err, "try a smaller -alpha or a larger -max-iter")
	}

	preds, err := e.PredictBatch(opts.x)
	if err != nil {
		return err
	}
	mse, err := metrics.MSE(mat.NewVecDense(len(opts.y), opts.y), mat.NewVecDense(len(preds), preds))
	if err != nil {
		return err
	}
	prediction, err := e.Predict(opts.predict)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "theta0: %v, theta1: %v\n", theta.Intercept, theta.Slope)
	fmt.Fprintf(stdout, "iterations: %d (policy %s, alpha %v)\n", e.Iterations(), opts.policy, opts.alpha)
	fmt.Fprintf(stdout, "cost: %v, mse: %v\n", e.ComputeCost(theta), mse)
	if r2, err := e.Score(); err == nil {
		fmt.Fprintf(stdout, "r2: %v\n", r2)
	} else {
		slog.Warn("R² undefined for this dataset", log.ErrAttr(err))
	}
	fmt.Fprintf(stdout, "prediction for %v: %v\n", opts.predict, prediction)

	if opts.plot != "" {
		x, y := e.Data()
		if err := plotting.FitPlot(x, y, e, opts.plot); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "fit plot written to %s\n", opts.plot)
	}
	if opts.costPlot != "" {
		if err := plotting.CostCurve(e.CostHistory(), opts.costPlot, true); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "cost plot written to %s\n", opts.costPlot)
	}
	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("unigrad", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		xs       = fs.String("x", "1,2,3,4", "comma-separated feature values")
		ys       = fs.String("y", "2,3,4,5", "comma-separated label values")
		alpha    = fs.Float64("alpha", linear.DefaultLearningRate, "learning rate")
		policy   = fs.String("policy", "cost", `convergence policy: "cost" or "delta"`)
		tol      = fs.Float64("tol", linear.DefaultTolerance, "parameter delta threshold for the delta policy")
		maxIter  = fs.Int("max-iter", linear.DefaultMaxIter, "maximum number of gradient steps")
		predict  = fs.Float64("predict", 5, "input to predict after fitting")
		level    = fs.String("log-level", "info", "log level: debug, info, warn, error")
		plotPath = fs.String("plot", "", "write a scatter plot with the fitted line to this file")
		costPath = fs.String("cost-plot", "", "write the cost curve to this file")
	)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	var (
		opts options
		err  error
	)
	if opts.x, err = parseFloats(*xs); err != nil {
		return options{}, errors.Wrap(err, "-x")
	}
	if opts.y, err = parseFloats(*ys); err != nil {
		return options{}, errors.Wrap(err, "-y")
	}
	if opts.policy, err = linear.ParsePolicy(*policy); err != nil {
		return options{}, errors.Wrap(err, "-policy")
	}
	if opts.level, err = log.ParseLevel(*level); err != nil {
		return options{}, errors.Wrap(err, "-log-level")
	}
	opts.alpha = *alpha
	opts.tol = *tol
	opts.maxIter = *maxIter
	opts.predict = *predict
	opts.plot = *plotPath
	opts.costPlot = *costPath
	return opts, nil
}

// parseFloats parses "1, 2.5,3" into a slice. An empty string yields nil.
func parseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}
