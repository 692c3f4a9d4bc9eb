package meta

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Experiment struct {
	Runs       int    `yaml:"runs"`
	Goroutines int    `yaml:"goroutines"`
	OutDir     string `yaml:"out_dir"`
}

type Config struct {
	TimeLimit   time.Duration `yaml:"time_limit"`
	WinScore    float64       `yaml:"win_score"`
	Exploration float64       `yaml:"exploration"`
	ChildCount  int           `yaml:"child_count"`
	Iterations  int           `yaml:"iterations"` // 0 means deadline only
	Seed        uint64        `yaml:"seed"`
	Experiment  Experiment    `yaml:"experiment"`
}

func Default() Config {
	return Config{
		TimeLimit:   TimeLimit,
		WinScore:    WinScore,
		Exploration: ExplorationConstant,
		ChildCount:  DefaultChildCount,
		Seed:        1,
		Experiment: Experiment{
			Goroutines: GO_ROUTINES,
		},
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot interpret. A non-positive time limit is allowed and
// yields an empty search.
func (c Config) Validate() error {
	switch {
	case c.WinScore < 0:
		return fmt.Errorf("%w: win_score %v is negative", ErrInvalidConfig, c.WinScore)
	case c.Exploration < 0:
		return fmt.Errorf("%w: exploration %v is negative", ErrInvalidConfig, c.Exploration)
	case c.ChildCount < 0:
		return fmt.Errorf("%w: child_count %d is negative", ErrInvalidConfig, c.ChildCount)
	case c.Iterations < 0:
		return fmt.Errorf("%w: iterations %d is negative", ErrInvalidConfig, c.Iterations)
	case c.Experiment.Runs < 0:
		return fmt.Errorf("%w: experiment.runs %d is negative", ErrInvalidConfig, c.Experiment.Runs)
	case c.Experiment.Goroutines < 0:
		return fmt.Errorf("%w: experiment.goroutines %d is negative", ErrInvalidConfig, c.Experiment.Goroutines)
	}
	return nil
}
