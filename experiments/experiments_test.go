package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
	"uct/experiments/metrics"
	"uct/meta"
	"uct/searcher"

	"github.com/stretchr/testify/require"
)

func testConfigs() []metrics.RunConfig {
	cfg := meta.Default()
	cfg.TimeLimit = time.Minute
	cfg.Iterations = 50
	cfg.ChildCount = 4
	return ConfigsFrom(cfg, []float64{0.5, 1.41})
}

func TestConfigsFrom(t *testing.T) {
	t.Run("without a sweep", func(t *testing.T) {
		cfg := meta.Default()

		got := ConfigsFrom(cfg, nil)

		require.Equal(t, []metrics.RunConfig{{
			ID:          1,
			TimeLimit:   cfg.TimeLimit,
			WinScore:    cfg.WinScore,
			Exploration: cfg.Exploration,
			ChildCount:  cfg.ChildCount,
		}}, got)
	})

	t.Run("one config per exploration constant", func(t *testing.T) {
		got := testConfigs()

		require.Len(t, got, 2)
		require.Equal(t, 1, got[0].ID)
		require.Equal(t, 0.5, got[0].Exploration)
		require.Equal(t, 2, got[1].ID)
		require.Equal(t, 1.41, got[1].Exploration)
		require.Equal(t, 50, got[1].Iterations)
	})
}

func TestSeeds(t *testing.T) {
	require.Equal(t, []uint64{7, 8, 9}, Seeds(7, 3))
	require.Empty(t, Seeds(7, 0))
}

func TestRun(t *testing.T) {
	configs := testConfigs()
	seeds := Seeds(1, 3)

	records, err := Run(context.Background(), "test", configs, seeds, 4)
	require.NoError(t, err)

	t.Run("one record per config and seed in order", func(t *testing.T) {
		require.Len(t, records, 6)
		for ci, config := range configs {
			for si, seed := range seeds {
				r := records[ci*len(seeds)+si]
				require.Equal(t, config.ID, r.Config)
				require.Equal(t, seed, r.Seed)
			}
		}
	})

	t.Run("records carry search metrics", func(t *testing.T) {
		ids := map[string]bool{}
		for _, r := range records {
			require.Equal(t, 50, r.Iterations, "Each search should stop at the iteration cap")
			require.GreaterOrEqual(t, r.BestChild, 1)
			require.LessOrEqual(t, r.BestChild, 4)
			require.Greater(t, r.TreeSize, 5)
			require.NotEmpty(t, r.RunID)
			ids[r.RunID] = true
		}
		require.Len(t, ids, len(records), "Run IDs should be unique")
	})

	t.Run("seeded runs are reproducible", func(t *testing.T) {
		again, err := Run(context.Background(), "test", configs, seeds, 1)
		require.NoError(t, err)

		for i := range records {
			require.Equal(t, records[i].BestScore, again[i].BestScore)
			require.Equal(t, records[i].BestChild, again[i].BestChild)
			require.Equal(t, records[i].Wins, again[i].Wins)
		}
	})
}

func TestRunErrors(t *testing.T) {
	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, "test", testConfigs(), Seeds(1, 2), 2)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("search failure", func(t *testing.T) {
		configs := testConfigs()
		configs[1].ChildCount = 0

		_, err := Run(context.Background(), "test", configs, Seeds(1, 2), 2)

		require.ErrorIs(t, err, searcher.ErrNoChildren)
		require.ErrorContains(t, err, "config 2")
	})
}

func TestStore(t *testing.T) {
	configs := testConfigs()
	records, err := Run(context.Background(), "test", configs, Seeds(1, 2), 2)
	require.NoError(t, err)
	require.Len(t, records, 4, "A completed run should return its records")

	dir, err := Store(t.TempDir(), "sweep", configs, records)

	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "run_configs.csv"))
	require.FileExists(t, filepath.Join(dir, "summary.csv"))

	f, err := os.Open(filepath.Join(dir, "run_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1, "Should write a header and one row per record")
}
