package linear_test

import (
	"fmt"

	"github.com/YuminosukeSato/unigrad/linear"
	"github.com/YuminosukeSato/unigrad/pkg/log"
)

func ExampleEstimator() {
	quiet, _ := log.NewTestLogger(log.LevelError)

	e, err := linear.NewEstimator(
		[]float64{1, 2, 3, 4},
		[]float64{2, 3, 4, 5},
		linear.WithLogger(quiet),
	)
	if err != nil {
		panic(err)
	}

	fmt.Printf("cost at (0, 0): %.2f\n", e.ComputeCost(linear.Theta{}))

	theta, err := e.GradientDescent(0.1)
	if err != nil {
		panic(err)
	}
	fmt.Printf("theta0: %.3f, theta1: %.3f\n", theta.Intercept, theta.Slope)

	pred, _ := e.Predict(5)
	fmt.Printf("prediction for 5: %.2f\n", pred)
	// Output:
	// cost at (0, 0): 6.75
	// theta0: 1.000, theta1: 1.000
	// prediction for 5: 6.00
}
