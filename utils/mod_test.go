package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b", "b"}, "b"), "Should return the first match")
	require.Equal(t, -1, FindIndex([]string{"a"}, "z"), "Should return -1 when absent")
}

func TestArgMax(t *testing.T) {
	identity := func(v float64) float64 { return v }

	t.Run("empty slice", func(t *testing.T) {
		require.Equal(t, -1, ArgMax(nil, identity))
	})

	t.Run("unique maximum", func(t *testing.T) {
		require.Equal(t, 2, ArgMax([]float64{1, 3, 7, 2}, identity))
	})

	t.Run("ties resolve to the first maximum", func(t *testing.T) {
		require.Equal(t, 1, ArgMax([]float64{0, 5, 5, 5}, identity))
	})

	t.Run("all equal picks the first", func(t *testing.T) {
		require.Equal(t, 0, ArgMax([]float64{0, 0, 0}, identity))
	})
}
