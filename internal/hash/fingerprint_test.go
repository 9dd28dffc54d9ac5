package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprint_Deterministic(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}

	require.Equal(t, Fingerprint(0, x, y), Fingerprint(0, x, y))
}

func TestFingerprint_Sensitivity(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}

	base := Fingerprint(0, x, y)

	t.Run("tag", func(t *testing.T) {
		require.NotEqual(t, base, Fingerprint(1, x, y))
	})

	t.Run("values", func(t *testing.T) {
		require.NotEqual(t, base, Fingerprint(0, x, []float64{4, 5, 7}))
		require.NotEqual(t, base, Fingerprint(0, []float64{1, 2, 4}, y))
	})

	t.Run("pairing", func(t *testing.T) {
		// Swapping x and y changes the identity.
		require.NotEqual(t, base, Fingerprint(0, y, x))
	})
}

func TestFingerprint_EmptyInput(t *testing.T) {
	require.NotZero(t, Fingerprint(0, nil, nil))
}
