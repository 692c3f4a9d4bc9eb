package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// WinProbability is the chance of a win reported by the placeholder rollout.
const WinProbability = 1.0 / 6

// Evaluator judges the position a node stands for and reports whether the side to move wins.
// It stands in for a game rollout.
type Evaluator interface {
	Evaluate(node *Node) (win bool, err error)
}

type EvaluatorFunc func(node *Node) (bool, error)

func (f EvaluatorFunc) Evaluate(node *Node) (bool, error) {
	return f(node)
}

// RandomEvaluator is a placeholder rollout: it ignores the node and reports a win with a fixed
// probability drawn from the generator it was given.
type RandomEvaluator struct {
	rng         *rand.Rand
	probability float64
}

func NewRandomEvaluator(rng *rand.Rand, probability float64) *RandomEvaluator {
	if rng == nil {
		panic("random evaluator needs a generator")
	}
	if probability < 0 || probability > 1 {
		panic(fmt.Sprintf("win probability %v outside [0, 1]", probability))
	}
	return &RandomEvaluator{rng: rng, probability: probability}
}

// NewSeededEvaluator reports wins with WinProbability from a generator seeded with seed.
func NewSeededEvaluator(seed uint64) *RandomEvaluator {
	return NewRandomEvaluator(rand.New(rand.NewSource(seed)), WinProbability)
}

func (e *RandomEvaluator) Evaluate(*Node) (bool, error) {
	return e.rng.Float64() < e.probability, nil
}
