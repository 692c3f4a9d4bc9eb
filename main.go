package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"uct/experiments"
	"uct/experiments/metrics"
	"uct/meta"
	"uct/searcher"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file, flags override its values")
	duration := flag.Duration("duration", meta.TimeLimit, "Time budget of each search")
	winScore := flag.Float64("win-score", meta.WinScore, "Reward credited on a winning rollout")
	exploration := flag.Float64("exploration", meta.ExplorationConstant, "UCT exploration constant")
	children := flag.Int("children", meta.DefaultChildCount, "Children created per expansion")
	iterations := flag.Int("iterations", 0, "Iteration cap per search (0 stops on the deadline only)")
	seed := flag.Uint64("seed", 1, "Seed of the placeholder rollout")
	runs := flag.Int("runs", 0, "Seeded searches per config (0 runs a single search)")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Searches running at once in an experiment")
	out := flag.String("out", "", "Directory for experiment CSV files")
	sweep := flag.String("sweep", "", "Comma-separated exploration constants to compare")
	level := flag.String("log-level", "info", "Log level")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: *noColor})
	logLevel, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(logLevel)

	cfg := meta.Default()
	if *configPath != "" {
		cfg, err = meta.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	// Only flags set on the command line override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cfg.TimeLimit = *duration
		case "win-score":
			cfg.WinScore = *winScore
		case "exploration":
			cfg.Exploration = *exploration
		case "children":
			cfg.ChildCount = *children
		case "iterations":
			cfg.Iterations = *iterations
		case "seed":
			cfg.Seed = *seed
		case "runs":
			cfg.Experiment.Runs = *runs
		case "goroutines":
			cfg.Experiment.Goroutines = *goroutines
		case "out":
			cfg.Experiment.OutDir = *out
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	explorations, err := parseExplorations(*sweep)
	if err == nil {
		err = checkSweep(cfg, explorations)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("invalid sweep")
	}

	if cfg.Experiment.Runs > 0 {
		err = runExperiment(cfg, explorations)
	} else {
		err = runSearch(cfg, *noColor)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}
}

func runSearch(cfg meta.Config, noColor bool) error {
	root := searcher.NewNode(nil, true)
	mcts := searcher.NewMCTSFromConfig(cfg, searcher.NewSeededEvaluator(cfg.Seed), searcher.WithMetrics())

	if _, err := mcts.Search(root); err != nil {
		return err
	}

	metric := mcts.Metrics()
	log.Info().Msgf("completed search with %d iterations over %d nodes in %s", metric.Iterations, metric.TreeSize, metric.Duration)

	report, err := searcher.NewReport(root)
	if err != nil {
		return err
	}

	var opts []termenv.OutputOption
	if noColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return report.Write(os.Stdout, opts...)
}

func runExperiment(cfg meta.Config, explorations []float64) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	configs := experiments.ConfigsFrom(cfg, explorations)
	seeds := experiments.Seeds(cfg.Seed, cfg.Experiment.Runs)
	records, err := experiments.Run(ctx, "exploration", configs, seeds, cfg.Experiment.Goroutines)
	if err != nil {
		return err
	}

	for _, s := range metrics.Summarize(records) {
		log.Info().Msgf("config %d: %d runs, %.1f±%.1f iterations, mean best score %.1f, most frequent best child %d",
			s.Config, s.Runs, s.MeanIterations, s.StdIterations, s.MeanBestScore, s.BestChildMode)
	}

	if cfg.Experiment.OutDir == "" {
		return nil
	}
	dir, err := experiments.Store(cfg.Experiment.OutDir, "exploration", configs, records)
	if err != nil {
		return err
	}
	log.Info().Msgf("stored experiment in %s", dir)
	return nil
}

// parseExplorations reads a comma-separated list of exploration constants.
func parseExplorations(sweep string) ([]float64, error) {
	if strings.TrimSpace(sweep) == "" {
		return nil, nil
	}

	var explorations []float64
	for _, field := range strings.Split(sweep, ",") {
		c, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse exploration %q: %w", field, err)
		}
		if c < 0 {
			return nil, fmt.Errorf("%w: exploration %v is negative", meta.ErrInvalidConfig, c)
		}
		explorations = append(explorations, c)
	}
	return explorations, nil
}

// checkSweep rejects a sweep outside experiment mode, where it would have no effect.
func checkSweep(cfg meta.Config, explorations []float64) error {
	if len(explorations) > 0 && cfg.Experiment.Runs == 0 {
		return fmt.Errorf("%w: a sweep needs at least one run per config", meta.ErrInvalidConfig)
	}
	return nil
}
