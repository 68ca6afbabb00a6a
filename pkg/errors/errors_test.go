package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewInvalidInputError(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		lenX    int
		lenY    int
		cause   error
		wantMsg string
	}{
		{
			name:    "empty",
			reason:  "cannot regress without data",
			lenX:    0,
			lenY:    0,
			cause:   ErrEmptyData,
			wantMsg: "unigrad: NewEstimator: invalid input: cannot regress without data (len(x)=0, len(y)=0)",
		},
		{
			name:    "mismatch",
			reason:  "x and y must be the same length",
			lenX:    3,
			lenY:    2,
			cause:   ErrLengthMismatch,
			wantMsg: "unigrad: NewEstimator: invalid input: x and y must be the same length (len(x)=3, len(y)=2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInvalidInputError("NewEstimator", tt.reason, tt.lenX, tt.lenY, tt.cause)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var inputErr *InvalidInputError
			if !As(err, &inputErr) {
				t.Fatal("Error should be castable to *InvalidInputError")
			}
			if inputErr.LenX != tt.lenX || inputErr.LenY != tt.lenY {
				t.Errorf("lengths = (%d, %d), want (%d, %d)", inputErr.LenX, inputErr.LenY, tt.lenX, tt.lenY)
			}

			if !Is(err, tt.cause) {
				t.Errorf("Expected Is(err, %v) to be true", tt.cause)
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("Estimator", "Predict")

	want := "unigrad: Estimator: this model is not fitted yet. Call GradientDescent() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewDidNotConvergeError(t *testing.T) {
	err := NewDidNotConvergeError("GradientDescent", "cost", 10, []float64{0.5, 0.25})

	want := "unigrad: GradientDescent did not converge under cost policy after 10 iterations (last params [0.5 0.25])"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dncErr *DidNotConvergeError
	if !As(err, &dncErr) {
		t.Fatal("Error should be castable to *DidNotConvergeError")
	}
	if dncErr.Iterations != 10 {
		t.Errorf("Iterations = %d, want 10", dncErr.Iterations)
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("MSE", 4, 3, 0)

	want := "unigrad: MSE: dimension mismatch on axis 0 (rows). Expected 4, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("learning_rate", "must be positive", -0.5)

	want := "unigrad: validation failed for parameter 'learning_rate': must be positive (got: -0.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("R2Score", "empty vector")

	if err.Error() != "unigrad: R2Score: empty vector" {
		t.Errorf("Error() = %v", err.Error())
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestNewConvergenceWarning(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "with message",
			message: "cost increased on the final step",
			want:    "GradientDescent stopped after 3 iterations: cost increased on the final step",
		},
		{
			name:    "without message",
			message: "",
			want:    "GradientDescent stopped after 3 iterations. Consider lowering the learning rate.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warn := NewConvergenceWarning("GradientDescent", 3, tt.message)
			if warn.Error() != tt.want {
				t.Errorf("Error() = %v, want %v", warn.Error(), tt.want)
			}
		})
	}
}

func TestWarnRouting(t *testing.T) {
	var got []error
	prev := warningHandler
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(prev)

	Warn(NewConvergenceWarning("GradientDescent", 1, "overshoot"))
	if len(got) != 1 {
		t.Fatalf("handler received %d warnings, want 1", len(got))
	}

	// zerolog関数が設定されていれば優先される
	var routed int
	SetZerologWarnFunc(func(error) { routed++ })
	defer SetZerologWarnFunc(nil)

	Warn(NewConvergenceWarning("GradientDescent", 2, "overshoot"))
	if routed != 1 || len(got) != 1 {
		t.Errorf("routed = %d, handler = %d; want 1, 1", routed, len(got))
	}
}

func TestWrapfAndHints(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Predict", 10, 5)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}
	if !strings.Contains(wrapped.Error(), "in Predict: expected 10, got 5") {
		t.Errorf("unexpected message %q", wrapped.Error())
	}

	hinted := WithHint(wrapped, "pass at least one sample")
	if !strings.Contains(FlattenHints(hinted), "pass at least one sample") {
		t.Error("Expected hint to be retrievable")
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("cost", 1.5, 0); err != nil {
		t.Errorf("finite value reported as unstable: %v", err)
	}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := CheckScalar("cost", v, 7)
		var numErr *NumericalInstabilityError
		if !As(err, &numErr) {
			t.Fatalf("CheckScalar(%v) = %v, want NumericalInstabilityError", v, err)
		}
		if numErr.Iteration != 7 {
			t.Errorf("Iteration = %d, want 7", numErr.Iteration)
		}
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("theta", []float64{1, 2}, 0); err != nil {
		t.Errorf("finite values reported as unstable: %v", err)
	}
	if err := CheckNumericalStability("theta", []float64{1, math.NaN()}, 3); err == nil {
		t.Error("expected error for NaN")
	}
	if err := CheckNumericalStability("theta", []float64{math.Inf(1), 0}, 3); err == nil {
		t.Error("expected error for Inf")
	}
}
