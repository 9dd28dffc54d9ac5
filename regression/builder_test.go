package regression

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/segfit/errs"
)

// twoRegimeLinear is a noiseless piecewise-linear dataset: y = x up to x=3,
// then y = 5x - 12 from x=10 on. The only admissible split under the default
// minimum segment size is between x=3 and x=10.
func twoRegimeLinear() (x, y []float64) {
	x = []float64{1, 2, 3, 10, 11, 12}
	y = []float64{1, 2, 3, 38, 43, 48}

	return x, y
}

// powerLawKnee is a noiseless log-log dataset on an exponential x grid:
// y = x up to x=16, then y = x^2/16.
func powerLawKnee() (x, y []float64) {
	for i := 0; i < 10; i++ {
		xi := math.Pow(2, float64(i))
		yi := xi
		if xi > 16 {
			yi = xi * xi / 16
		}
		x = append(x, xi)
		y = append(y, yi)
	}

	return x, y
}

func TestCompute_InputValidation(t *testing.T) {
	t.Run("mismatched lengths", func(t *testing.T) {
		_, err := Compute([]float64{1, 2, 3}, []float64{1, 2})
		require.ErrorIs(t, err, errs.ErrMismatchedLengths)
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, err := Compute(nil, nil)
		require.ErrorIs(t, err, errs.ErrEmptyDataset)
	})

	t.Run("non-finite sample", func(t *testing.T) {
		_, err := Compute([]float64{1, 2, math.NaN()}, []float64{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrNonFiniteSample)

		_, err = Compute([]float64{1, 2, 3}, []float64{1, math.Inf(1), 3})
		require.ErrorIs(t, err, errs.ErrNonFiniteSample)
	})

	t.Run("single distinct x", func(t *testing.T) {
		_, err := Compute([]float64{5, 5, 5}, []float64{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrInsufficientData)
	})

	t.Run("non-positive sample in log mode", func(t *testing.T) {
		_, err := Compute([]float64{0, 1, 2}, []float64{1, 2, 3}, WithLogMode())
		require.ErrorIs(t, err, errs.ErrNonPositiveSample)

		_, err = Compute([]float64{1, 2, 3}, []float64{1, -2, 3}, WithLogMode())
		require.ErrorIs(t, err, errs.ErrNonPositiveSample)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := Compute([]float64{1, 2}, []float64{1, 2}, WithMinSegmentSize(1))
		require.ErrorIs(t, err, errs.ErrInvalidOption)

		_, err = Compute([]float64{1, 2}, []float64{1, 2}, WithMaxBreakpoints(-1))
		require.ErrorIs(t, err, errs.ErrInvalidOption)

		_, err = Compute([]float64{1, 2}, []float64{1, 2}, WithEpsilon(0))
		require.ErrorIs(t, err, errs.ErrInvalidOption)

		_, err = Compute([]float64{1, 2}, []float64{1, 2}, WithMode(Mode(42)))
		require.ErrorIs(t, err, errs.ErrInvalidMode)
	})
}

func TestCompute_TwoRegimeLinear(t *testing.T) {
	x, y := twoRegimeLinear()

	model, err := Compute(x, y)
	require.NoError(t, err)

	require.Equal(t, []float64{6.5}, model.Breakpoints())

	segs := model.Segments()
	require.Len(t, segs, 2)
	require.InDelta(t, 1.0, segs[0].Slope, 1e-9)
	require.InDelta(t, 0.0, segs[0].Intercept, 1e-9)
	require.InDelta(t, 5.0, segs[1].Slope, 1e-9)
	require.InDelta(t, -12.0, segs[1].Intercept, 1e-9)
}

func TestCompute_PowerLawKnee(t *testing.T) {
	x, y := powerLawKnee()

	model, err := Compute(x, y, WithLogMode())
	require.NoError(t, err)

	bps := model.Breakpoints()
	require.Len(t, bps, 1)
	// Geometric midpoint of the adjacent grid points 16 and 32.
	require.InDelta(t, math.Sqrt(16*32), bps[0], 1e-9)

	segs := model.Segments()
	require.InDelta(t, 1.0, segs[0].Slope, 1e-9)
	require.InDelta(t, 2.0, segs[1].Slope, 1e-9)

	// Bottom-up simplification never returns a worse model.
	best := model.AutoSimplify()
	require.LessOrEqual(t, best.BIC(), model.BIC()+bicTol)
}

func TestCompute_ConstantData(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{3, 3, 3, 3, 3, 3, 3, 3}

	model, err := Compute(x, y)
	require.NoError(t, err)

	require.Empty(t, model.Breakpoints())
	require.Len(t, model.Segments(), 1)
	require.InDelta(t, 0.0, model.Segments()[0].Slope, 1e-9)
}

func TestCompute_TwoDistinctX(t *testing.T) {
	// Two distinct x values can never be split into two fittable segments.
	x := []float64{1, 1, 1, 2, 2, 2}
	y := []float64{1.0, 1.1, 0.9, 2.0, 2.1, 1.9}

	model, err := Compute(x, y)
	require.NoError(t, err)
	require.Empty(t, model.Breakpoints())
}

func TestCompute_TwoSamples(t *testing.T) {
	model, err := Compute([]float64{1, 2}, []float64{3, 5})
	require.NoError(t, err)

	require.Empty(t, model.Breakpoints())
	require.InDelta(t, 2.0, model.Segments()[0].Slope, 1e-9)
}

func TestCompute_CoverageInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	var x, y []float64
	for i := 0; i < 100; i++ {
		xi := float64(i)
		x = append(x, xi)
		y = append(y, math.Sin(xi/15)*10+rng.NormFloat64())
	}

	model, err := Compute(x, y)
	require.NoError(t, err)

	segs := model.Segments()
	require.NotEmpty(t, segs)

	// Segments tile the x range with no gaps or overlaps, and every sample
	// count adds up.
	total := 0
	for i, s := range segs {
		require.Less(t, s.XLo, s.XHi)
		if i > 0 {
			require.Equal(t, segs[i-1].XHi, s.XLo)
		}
		require.GreaterOrEqual(t, s.N, 3)
		total += s.N
	}
	require.Equal(t, len(x), total)
	require.Equal(t, x[0], segs[0].XLo)
	require.Equal(t, x[len(x)-1], segs[len(segs)-1].XHi)
}

func TestCompute_Determinism(t *testing.T) {
	x, y := twoRegimeLinear()

	// Same samples in reverse order produce the identical model.
	rx := make([]float64, len(x))
	ry := make([]float64, len(y))
	for i := range x {
		rx[len(x)-1-i] = x[i]
		ry[len(y)-1-i] = y[i]
	}

	a, err := Compute(x, y)
	require.NoError(t, err)
	b, err := Compute(rx, ry)
	require.NoError(t, err)

	require.Equal(t, a.Breakpoints(), b.Breakpoints())
	require.Equal(t, a.Score(), b.Score())
	require.Equal(t, a.Table(), b.Table())
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestCompute_MaxBreakpointsCap(t *testing.T) {
	x, y := twoRegimeLinear()

	model, err := Compute(x, y, WithMaxBreakpoints(0))
	require.NoError(t, err)
	require.Empty(t, model.Breakpoints())
	require.Len(t, model.Segments(), 1)
}

func TestCompute_MinImprovementThreshold(t *testing.T) {
	x, y := twoRegimeLinear()

	base, err := Compute(x, y)
	require.NoError(t, err)
	require.Len(t, base.Breakpoints(), 1)

	// An impossibly high threshold rejects the same split.
	strict, err := Compute(x, y, WithMinImprovement(1e12))
	require.NoError(t, err)
	require.Empty(t, strict.Breakpoints())
}
