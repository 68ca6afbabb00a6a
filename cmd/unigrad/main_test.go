package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/unigrad/pkg/errors"
	"github.com/YuminosukeSato/unigrad/pkg/log"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prev := log.SetProvider(log.NewZerologProvider(&bytes.Buffer{}, log.LevelError))
	t.Cleanup(func() { log.SetProvider(prev) })

	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Defaults(t *testing.T) {
	out, _, err := runCLI(t)
	require.NoError(t, err)

	assert.Contains(t, out, "theta0: ")
	assert.Contains(t, out, "policy cost, alpha 0.1")
	assert.Contains(t, out, "prediction for 5: ")
	assert.Contains(t, out, "r2: ")
}

func TestRun_DebugLogsIterations(t *testing.T) {
	_, stderr, err := runCLI(t, "-policy", "delta", "-log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, stderr, "iteration: 0, theta0: 0, theta1: 0")
	assert.Contains(t, stderr, "Gradient descent converged")
}

func TestRun_Plots(t *testing.T) {
	dir := t.TempDir()
	fitPath := filepath.Join(dir, "fit.png")
	costPath := filepath.Join(dir, "cost.svg")

	out, _, err := runCLI(t, "-plot", fitPath, "-cost-plot", costPath)
	require.NoError(t, err)
	assert.Contains(t, out, "fit plot written to")

	for _, p := range []string{fitPath, costPath} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, err error)
	}{
		{
			name: "mismatched lengths",
			args: []string{"-x", "1,2,3", "-y", "1,2"},
			check: func(t *testing.T, err error) {
				var inputErr *errors.InvalidInputError
				assert.True(t, errors.As(err, &inputErr), "got %v", err)
			},
		},
		{
			name: "empty data",
			args: []string{"-x", "", "-y", ""},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, errors.ErrEmptyData), "got %v", err)
			},
		},
		{
			name: "iteration cap",
			args: []string{"-max-iter", "3"},
			check: func(t *testing.T, err error) {
				var dncErr *errors.DidNotConvergeError
				assert.True(t, errors.As(err, &dncErr), "got %v", err)
				assert.Contains(t, errors.FlattenHints(err), "-max-iter")
			},
		},
		{
			name: "bad number",
			args: []string{"-x", "1,two"},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "-x")
			},
		},
		{
			name: "unknown policy",
			args: []string{"-policy", "threshold"},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "unknown convergence policy")
			},
		},
		{
			name: "bad log level",
			args: []string{"-log-level", "loud"},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "invalid log level")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats(" 1, 2.5 ,3 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 3}, got)

	got, err = parseFloats("")
	require.NoError(t, err)
	assert.Nil(t, got)
}
