package experiments

import (
	"context"
	"fmt"
	"uct/experiments/metrics"
	"uct/meta"
	"uct/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ConfigsFrom derives one run config per exploration constant from cfg. Without explorations it
// returns cfg alone.
func ConfigsFrom(cfg meta.Config, explorations []float64) []metrics.RunConfig {
	if len(explorations) == 0 {
		explorations = []float64{cfg.Exploration}
	}

	configs := make([]metrics.RunConfig, 0, len(explorations))
	for i, c := range explorations {
		configs = append(configs, metrics.RunConfig{
			ID:          i + 1,
			TimeLimit:   cfg.TimeLimit,
			WinScore:    cfg.WinScore,
			Exploration: c,
			ChildCount:  cfg.ChildCount,
			Iterations:  cfg.Iterations,
		})
	}
	return configs
}

// Seeds returns runs consecutive seeds starting at base.
func Seeds(base uint64, runs int) []uint64 {
	seeds := make([]uint64, runs)
	for i := range seeds {
		seeds[i] = base + uint64(i)
	}
	return seeds
}

// Run searches a fresh tree for every (config, seed) pair, at most goroutines at a time. Each
// search stays single threaded on its own tree. Records are ordered by config, then seed.
func Run(ctx context.Context, name string, configs []metrics.RunConfig, seeds []uint64, goroutines int) ([]metrics.RunRecord, error) {
	records := make([]metrics.RunRecord, len(configs)*len(seeds))

	log.Info().Msgf("starting %s experiment with %d configs and %d seeds...", name, len(configs), len(seeds))

	// gctx is cancelled once Wait returns, so only the caller's ctx is checked afterwards
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, goroutines))

schedule:
	for ci, config := range configs {
		for si, seed := range seeds {
			if gctx.Err() != nil {
				break schedule
			}

			i := ci*len(seeds) + si
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				record, err := runSearch(config, seed)
				if err != nil {
					return fmt.Errorf("config %d seed %d: %w", config.ID, seed, err)
				}
				records[i] = record

				log.Debug().Msgf("completed run %d of %d with best child %d", i+1, len(records), record.BestChild)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s experiment", name)
	return records, nil
}

// Store writes configs, records and their summaries under baseDir/name/<timestamp> and returns
// that directory.
func Store(baseDir, name string, configs []metrics.RunConfig, records []metrics.RunRecord) (string, error) {
	writer, err := metrics.NewWriter(baseDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteRunConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store run configs: %w", err)
	}
	log.Info().Msg("stored run configs")

	if err := writer.WriteRunRecords(records); err != nil {
		return "", fmt.Errorf("failed to store run records: %w", err)
	}
	log.Info().Msg("stored run records")

	if err := writer.WriteSummaries(metrics.Summarize(records)); err != nil {
		return "", fmt.Errorf("failed to store summaries: %w", err)
	}
	log.Info().Msg("stored summaries")

	return writer.Dir(), nil
}

func runSearch(config metrics.RunConfig, seed uint64) (metrics.RunRecord, error) {
	root := searcher.NewNode(nil, true)
	mcts := createMCTS(config, seed)
	best, err := mcts.Search(root)
	if err != nil {
		return metrics.RunRecord{}, err
	}

	return metrics.RunRecord{
		RunID:        uuid.NewString(),
		Config:       config.ID,
		Seed:         seed,
		BestScore:    best.Score(),
		SearchMetric: mcts.Metrics(),
	}, nil
}

func createMCTS(config metrics.RunConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithTimeLimit(config.TimeLimit),
		searcher.WithWinScore(config.WinScore),
		searcher.WithExploration(config.Exploration),
		searcher.WithChildCount(config.ChildCount),
		searcher.WithEvaluator(searcher.NewSeededEvaluator(seed)),
	}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(options...)
}
