package regression

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDataset_CanonicalOrder(t *testing.T) {
	ds, err := newDataset(
		[]float64{3, 1, 2, 1},
		[]float64{30, 11, 20, 10},
		ModeLinear, linearScale{},
	)
	require.NoError(t, err)

	// Sorted by x, ties broken by y.
	require.Equal(t, []float64{1, 1, 2, 3}, ds.x)
	require.Equal(t, []float64{10, 11, 20, 30}, ds.y)
}

func TestNewDataset_Groups(t *testing.T) {
	ds, err := newDataset(
		[]float64{1, 1, 2, 3, 3, 3},
		[]float64{1, 2, 3, 4, 5, 6},
		ModeLinear, linearScale{},
	)
	require.NoError(t, err)

	require.Equal(t, []int{0, 2, 3}, ds.groups)

	lo, hi := ds.groupBounds(0)
	require.Equal(t, 0, lo)
	require.Equal(t, 2, hi)

	lo, hi = ds.groupBounds(2)
	require.Equal(t, 3, lo)
	require.Equal(t, 6, hi)
}

func TestDataset_SplitIndexes(t *testing.T) {
	ds, err := newDataset(
		[]float64{1, 1, 2, 3, 3, 3},
		[]float64{1, 2, 3, 4, 5, 6},
		ModeLinear, linearScale{},
	)
	require.NoError(t, err)

	// Splits are only admissible between distinct-x groups; duplicated x
	// values never end up on different sides of a breakpoint.
	require.Equal(t, []int{2, 3}, ds.splitIndexes(0, ds.len()))
	require.Equal(t, []int{2}, ds.splitIndexes(0, 3))
	require.Empty(t, ds.splitIndexes(3, 6))
}

func TestNewDataset_LogTransform(t *testing.T) {
	ds, err := newDataset(
		[]float64{1, 10, 100},
		[]float64{2, 20, 200},
		ModeLog, logScale{},
	)
	require.NoError(t, err)

	require.InDelta(t, 0.0, ds.tx[0], 1e-12)
	require.InDelta(t, 2.302585092994046, ds.tx[1], 1e-12)
	require.InDelta(t, 0.6931471805599453, ds.ty[0], 1e-12)
}

func TestNewDataset_UnitWeights(t *testing.T) {
	ds, err := newDataset([]float64{1, 2, 3}, []float64{4, 5, 6}, ModeLinear, linearScale{})
	require.NoError(t, err)

	for _, w := range ds.w {
		require.Equal(t, 1.0, w)
	}
}

func TestNewDataset_FingerprintIgnoresInputOrder(t *testing.T) {
	a, err := newDataset([]float64{1, 2, 3}, []float64{4, 5, 6}, ModeLinear, linearScale{})
	require.NoError(t, err)
	b, err := newDataset([]float64{3, 1, 2}, []float64{6, 4, 5}, ModeLinear, linearScale{})
	require.NoError(t, err)

	require.Equal(t, a.fingerprint, b.fingerprint)

	c, err := newDataset([]float64{1, 2, 3}, []float64{4, 5, 7}, ModeLinear, linearScale{})
	require.NoError(t, err)
	require.NotEqual(t, a.fingerprint, c.fingerprint)
}
