// meta/meta.go
package meta

import "time"

// TimeLimit is the wall-clock budget of one search.
const TimeLimit = 500 * time.Millisecond

// WinScore is the reward credited to a node whose side won the rollout.
const WinScore = 10.0

// ExplorationConstant weights the UCT exploration term (~sqrt(2)).
const ExplorationConstant = 1.41

// DefaultChildCount is the branching factor used for the root and every expansion.
const DefaultChildCount = 10

// GO_ROUTINES defines the number of goroutines used to run independent experiment searches.
const GO_ROUTINES = 8
