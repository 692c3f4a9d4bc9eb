package searcher

import (
	"errors"
	"fmt"
	"time"
	"uct/experiments/metrics"
	"uct/meta"
	"uct/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoRoot      = errors.New("search needs a root node")
	ErrNoEvaluator = errors.New("search needs an outcome evaluator")
	ErrNoChildren  = errors.New("root has no children")
)

type State int

const (
	Idle State = iota
	ExpandingRoot
	Iterating
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case ExpandingRoot:
		return "ExpandingRoot"
	case Iterating:
		return "Iterating"
	case Done:
		return "Done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Option func(m *MCTS)

type MCTS struct {
	timeLimit   time.Duration
	winScore    float64
	exploration float64
	childCount  int
	iterations  int
	evaluator   Evaluator
	metrics     metrics.Collector
	logger      zerolog.Logger
	state       State
	last        metrics.SearchMetric
}

// WithTimeLimit sets the wall-clock budget. A non-positive limit runs no iterations.
func WithTimeLimit(limit time.Duration) Option {
	return func(m *MCTS) {
		m.timeLimit = limit
	}
}

func WithWinScore(score float64) Option {
	return func(m *MCTS) {
		if score >= 0 {
			m.winScore = score
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithChildCount sets the branching factor of every expansion. A non-positive count leaves the
// tree childless.
func WithChildCount(count int) Option {
	return func(m *MCTS) {
		m.childCount = count
	}
}

// WithIterations caps the number of iterations in addition to the deadline.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithEvaluator(evaluator Evaluator) Option {
	return func(m *MCTS) {
		if evaluator != nil {
			m.evaluator = evaluator
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *MCTS) {
		m.logger = logger
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		timeLimit:   meta.TimeLimit,
		winScore:    meta.WinScore,
		exploration: meta.ExplorationConstant,
		childCount:  meta.DefaultChildCount,
		metrics:     metrics.NewDummyCollector(),
		logger:      log.Logger,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// NewMCTSFromConfig applies cfg before any extra options.
func NewMCTSFromConfig(cfg meta.Config, evaluator Evaluator, options ...Option) *MCTS {
	base := []Option{
		WithTimeLimit(cfg.TimeLimit),
		WithWinScore(cfg.WinScore),
		WithExploration(cfg.Exploration),
		WithChildCount(cfg.ChildCount),
		WithIterations(cfg.Iterations),
		WithEvaluator(evaluator),
	}
	return NewMCTS(append(base, options...)...)
}

func (m *MCTS) State() State {
	return m.state
}

// Metrics returns the statistics of the last completed search. They are zero unless the engine
// was built WithMetrics.
func (m *MCTS) Metrics() metrics.SearchMetric {
	return m.last
}

// Search grows the tree under root until the time limit elapses and returns the root's child
// with the highest accumulated score. A leaf root is expanded first.
func (m *MCTS) Search(root *Node) (*Node, error) {
	if root == nil {
		return nil, ErrNoRoot
	}
	if m.evaluator == nil {
		return nil, ErrNoEvaluator
	}

	m.state = ExpandingRoot
	if root.IsLeaf() {
		Expand(root, m.childCount)
	}

	m.logger.Debug().
		Dur("time_limit", m.timeLimit).
		Int("children", len(root.children)).
		Msg("starting search")

	m.metrics.Start(m.timeLimit, root.Size())
	m.state = Iterating
	iterations, err := m.countdown(root)
	m.state = Done
	if err != nil {
		return nil, err
	}

	best, err := BestChild(root)
	position := utils.FindIndex(root.children, best) + 1
	m.last = m.metrics.Complete(position)

	m.logger.Debug().
		Int("iterations", iterations).
		Int("root_visits", root.visits).
		Int("best_child", position).
		Msg("completed search")

	return best, err
}

func (m *MCTS) countdown(root *Node) (int, error) {
	deadline := time.Now().Add(m.timeLimit)

	iterations := 0
	for time.Now().Before(deadline) && (m.iterations == 0 || iterations < m.iterations) {
		if err := m.simulate(root); err != nil {
			return iterations, fmt.Errorf("iteration %d: %w", iterations+1, err)
		}
		iterations++
	}
	return iterations, nil
}

// simulate runs one select, expand, evaluate and backup cycle. The node returned by selection is
// the one evaluated, even when it was just expanded. A failing evaluator leaves the statistics
// untouched.
func (m *MCTS) simulate(root *Node) error {
	frontier := Select(root, m.exploration)
	if frontier.IsLeaf() {
		Expand(frontier, m.childCount)
		m.metrics.AddNodes(len(frontier.children))
	}

	win, err := m.evaluator.Evaluate(frontier)
	if err != nil {
		return err
	}
	frontier.lastWin = win

	Backpropagate(frontier, win, m.winScore)
	m.metrics.AddIteration(win)
	return nil
}

// Backpropagate credits one rollout to node and all its ancestors. Every node on the path gains a
// visit; nodes whose turn matches the outcome also gain winScore.
func Backpropagate(node *Node, win bool, winScore float64) {
	for node != nil {
		node.visits++
		if node.turn == win {
			node.score += winScore
		}
		node = node.parent
	}
}
