package metrics

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

type RunConfig struct {
	ID          int
	TimeLimit   time.Duration
	WinScore    float64
	Exploration float64
	ChildCount  int
	Iterations  int // 0 means deadline only
}

type RunRecord struct {
	RunID     string
	Config    int // RunConfig.ID
	Seed      uint64
	BestScore float64
	SearchMetric
}

type Summary struct {
	Config         int
	Runs           int
	MeanIterations float64
	StdIterations  float64
	MeanBestScore  float64
	BestChildMode  int
}

// Summarize aggregates records per config, in order of each config's first appearance.
func Summarize(records []RunRecord) []Summary {
	order := []int{}
	grouped := map[int][]RunRecord{}
	for _, r := range records {
		if _, ok := grouped[r.Config]; !ok {
			order = append(order, r.Config)
		}
		grouped[r.Config] = append(grouped[r.Config], r)
	}

	summaries := make([]Summary, 0, len(order))
	for _, id := range order {
		group := grouped[id]
		iterations := make([]float64, len(group))
		scores := make([]float64, len(group))
		bests := make([]float64, len(group))
		for i, r := range group {
			iterations[i] = float64(r.Iterations)
			scores[i] = r.BestScore
			bests[i] = float64(r.BestChild)
		}

		std := 0.0
		if len(group) > 1 {
			std = stat.StdDev(iterations, nil)
		}
		mode, _ := stat.Mode(bests, nil)

		summaries = append(summaries, Summary{
			Config:         id,
			Runs:           len(group),
			MeanIterations: stat.Mean(iterations, nil),
			StdIterations:  std,
			MeanBestScore:  stat.Mean(scores, nil),
			BestChildMode:  int(mode),
		})
	}
	return summaries
}
