package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts iterations, wins and nodes", func(t *testing.T) {
		c := NewCollector()
		c.Start(time.Second, 11)
		c.AddIteration(true)
		c.AddIteration(false)
		c.AddIteration(true)
		c.AddNodes(10)

		got := c.Complete(3)

		require.Equal(t, time.Second, got.TimeLimit)
		require.Equal(t, 3, got.Iterations)
		require.Equal(t, 2, got.Wins)
		require.Equal(t, 21, got.TreeSize)
		require.Equal(t, 3, got.BestChild)
		require.GreaterOrEqual(t, got.Duration, time.Duration(0))
	})

	t.Run("restarting resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(time.Second, 1)
		c.AddIteration(true)
		c.Start(time.Millisecond, 5)

		got := c.Complete(0)

		require.Zero(t, got.Iterations, "Start should reset iterations")
		require.Zero(t, got.Wins, "Start should reset wins")
		require.Equal(t, 5, got.TreeSize)
	})

	t.Run("tree size beyond 32 bits", func(t *testing.T) {
		if math.MaxInt == math.MaxInt32 {
			t.Skip("int is 32 bits wide")
		}
		c := NewCollector()
		c.Start(time.Second, math.MaxInt32)
		c.AddNodes(10)

		got := c.Complete(1)

		require.Equal(t, int64(math.MaxInt32)+10, int64(got.TreeSize), "Tree size should not wrap")
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(time.Second, 1)
		c.AddIteration(true)

		require.Equal(t, SearchMetric{}, c.Complete(1))
	})
}

func TestSummarize(t *testing.T) {
	records := []RunRecord{
		{Config: 2, BestScore: 30, SearchMetric: SearchMetric{Iterations: 10, BestChild: 1}},
		{Config: 1, BestScore: 10, SearchMetric: SearchMetric{Iterations: 4, BestChild: 2}},
		{Config: 2, BestScore: 50, SearchMetric: SearchMetric{Iterations: 20, BestChild: 3}},
		{Config: 2, BestScore: 40, SearchMetric: SearchMetric{Iterations: 30, BestChild: 3}},
	}

	got := Summarize(records)

	require.Len(t, got, 2)
	require.Equal(t, 2, got[0].Config, "Configs should keep first-appearance order")
	require.Equal(t, 3, got[0].Runs)
	require.InDelta(t, 20.0, got[0].MeanIterations, 1e-9)
	require.InDelta(t, 10.0, got[0].StdIterations, 1e-9, "Should use the sample standard deviation")
	require.InDelta(t, 40.0, got[0].MeanBestScore, 1e-9)
	require.Equal(t, 3, got[0].BestChildMode)

	require.Equal(t, 1, got[1].Config)
	require.Equal(t, 1, got[1].Runs)
	require.Zero(t, got[1].StdIterations, "A single run has no spread")
	require.Equal(t, 2, got[1].BestChildMode)
}
