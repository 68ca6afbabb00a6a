package plotting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/unigrad/linear"
	"github.com/YuminosukeSato/unigrad/pkg/errors"
	"github.com/YuminosukeSato/unigrad/pkg/log"
)

type lineFunc func(x float64) float64

func (f lineFunc) Predict(x float64) (float64, error) { return f(x), nil }

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestFitPlot(t *testing.T) {
	dir := t.TempDir()
	x := []float64{1, 2, 3, 4}
	y := []float64{2, 3, 4, 5}
	p := lineFunc(func(x float64) float64 { return x + 1 })

	for _, name := range []string{"fit.png", "fit.svg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, FitPlot(x, y, p, path))
			requireNonEmptyFile(t, path)
		})
	}
}

func TestFitPlot_InvalidInput(t *testing.T) {
	dir := t.TempDir()
	p := lineFunc(func(x float64) float64 { return x })

	err := FitPlot(nil, nil, p, filepath.Join(dir, "empty.png"))
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr), "got %v", err)

	err = FitPlot([]float64{1, 2}, []float64{1}, p, filepath.Join(dir, "mismatch.png"))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr), "got %v", err)
}

func TestFitPlot_UnfittedEstimator(t *testing.T) {
	quiet, _ := log.NewTestLogger(log.LevelError)
	e, err := linear.NewEstimator([]float64{1, 2, 3, 4}, []float64{2, 3, 4, 5}, linear.WithLogger(quiet))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fit.png")
	err = FitPlot([]float64{1, 2, 3, 4}, []float64{2, 3, 4, 5}, e, path)
	var nfErr *errors.NotFittedError
	require.True(t, errors.As(err, &nfErr), "got %v", err)

	_, err = e.Fit()
	require.NoError(t, err)
	x, y := e.Data()
	require.NoError(t, FitPlot(x, y, e, path))
	requireNonEmptyFile(t, path)
}

func TestCostCurve(t *testing.T) {
	dir := t.TempDir()
	history := []float64{6.75, 2.1, 0.7, 0.2, 0.05, 0}

	linearPath := filepath.Join(dir, "cost.png")
	require.NoError(t, CostCurve(history, linearPath, false))
	requireNonEmptyFile(t, linearPath)

	// the trailing zero is dropped on a log axis
	logPath := filepath.Join(dir, "cost_log.svg")
	require.NoError(t, CostCurve(history, logPath, true))
	requireNonEmptyFile(t, logPath)
}

func TestCostCurve_Empty(t *testing.T) {
	dir := t.TempDir()

	err := CostCurve(nil, filepath.Join(dir, "cost.png"), false)
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr), "got %v", err)

	err = CostCurve([]float64{0, 0}, filepath.Join(dir, "cost.png"), true)
	assert.True(t, errors.As(err, &valErr), "got %v", err)
}
