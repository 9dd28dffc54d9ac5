package segfit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/regression"
)

func TestComputeRegression(t *testing.T) {
	x := []float64{1, 2, 3, 10, 11, 12}
	y := []float64{1, 2, 3, 38, 43, 48}

	model, err := ComputeRegression(x, y)
	require.NoError(t, err)

	require.Equal(t, regression.ModeLinear, model.Mode())
	require.Equal(t, []float64{6.5}, model.Breakpoints())
	require.InDelta(t, 43.0, model.Predict(11), 1e-9)
}

func TestComputeRegression_Options(t *testing.T) {
	x := []float64{1, 2, 3, 10, 11, 12}
	y := []float64{1, 2, 3, 38, 43, 48}

	model, err := ComputeRegression(x, y, WithMaxBreakpoints(0))
	require.NoError(t, err)
	require.Empty(t, model.Breakpoints())

	_, err = ComputeRegression(x, y, WithMinSegmentSize(1))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func TestComputeLogRegression(t *testing.T) {
	x := []float64{1, 2, 4, 8, 16, 32}
	y := []float64{3, 6, 12, 24, 48, 96}

	model, err := ComputeLogRegression(x, y)
	require.NoError(t, err)

	require.Equal(t, regression.ModeLog, model.Mode())
	require.InDelta(t, 1.0, model.Segments()[0].Slope, 1e-9)
}

func TestComputeLogRegression_DomainValidation(t *testing.T) {
	_, err := ComputeLogRegression([]float64{0, 1, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrNonPositiveSample)
}

func TestComputeLogRegression_LaterOptionsWin(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{1, 2, 3, 4, 5, 6}

	// An explicit mode option after the log shorthand takes precedence.
	model, err := ComputeLogRegression(x, y, WithMode(ModeLinear))
	require.NoError(t, err)
	require.Equal(t, ModeLinear, model.Mode())
}
