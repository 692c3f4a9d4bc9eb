package metrics

import (
	"time"
)

type SearchMetric struct {
	TimeLimit  time.Duration
	Duration   time.Duration
	Iterations int
	Wins       int // Iterations whose rollout reported a win
	TreeSize   int
	BestChild  int // 1-based position among the root's children, 0 if none
}

type Collector interface {
	Start(timeLimit time.Duration, treeSize int)
	AddNodes(n int)
	AddIteration(win bool)
	Complete(bestChild int) SearchMetric
}

// collector belongs to a single search and is not safe for concurrent use.
type collector struct {
	timeLimit  time.Duration
	startTime  time.Time
	iterations int
	wins       int
	treeSize   int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(timeLimit time.Duration, treeSize int) {
	m.startTime = time.Now()
	m.timeLimit = timeLimit
	m.iterations = 0
	m.wins = 0
	m.treeSize = treeSize
}

func (m *collector) AddNodes(n int) {
	m.treeSize += n
}

func (m *collector) AddIteration(win bool) {
	m.iterations++
	if win {
		m.wins++
	}
}

func (m *collector) Complete(bestChild int) SearchMetric {
	return SearchMetric{
		TimeLimit:  m.timeLimit,
		Duration:   time.Since(m.startTime),
		Iterations: m.iterations,
		Wins:       m.wins,
		TreeSize:   m.treeSize,
		BestChild:  bestChild,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(timeLimit time.Duration, treeSize int) {}
func (m *dummyCollector) AddNodes(n int)                              {}
func (m *dummyCollector) AddIteration(win bool)                       {}
func (m *dummyCollector) Complete(bestChild int) SearchMetric         { return SearchMetric{} }
