package linear_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/unigrad/linear"
	"github.com/YuminosukeSato/unigrad/pkg/log"
)

func TestFeatureMatrix_IsACopy(t *testing.T) {
	quiet, _ := log.NewTestLogger(log.LevelError)
	e, err := linear.NewEstimator([]float64{1, 2, 3, 4}, []float64{2, 3, 4, 5}, linear.WithLogger(quiet))
	require.NoError(t, err)

	m := e.FeatureMatrix()
	r, c := m.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 2, c)
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 1.0, m.At(0, 1))

	m.Set(0, 1, 100)

	assert.Equal(t, 0.0, e.ComputeCost(linear.Theta{Intercept: 1, Slope: 1}))
	assert.Equal(t, 1.0, e.FeatureMatrix().At(0, 1))
	x, _ := e.Data()
	assert.Equal(t, 1.0, x[0])

	theta, err := e.Fit()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, theta.Intercept, 1e-3)
	assert.InDelta(t, 1.0, theta.Slope, 1e-3)
}
