package searcher

import "math"

type uct struct {
	c    float64
	logN float64
}

func newUCT(c float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{c: c, logN: math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + c*sqrt(ln(N)/n)
	return q/n + u.c*math.Sqrt(u.logN/n)
}

// Select walks down from root to a frontier node. At each level an unvisited child is taken
// immediately, otherwise the child with the strictly greatest UCT value; ties keep the earliest
// child.
func Select(root *Node, c float64) *Node {
	node := root
	for !node.IsLeaf() {
		node = node.pickChild(c)
	}
	return node
}

func (n *Node) pickChild(c float64) *Node {
	var policy *uct

	var best *Node
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		if child.visits == 0 {
			return child
		}
		// Parent visits are positive once any child has been visited
		if policy == nil {
			policy = newUCT(c, float64(n.visits))
		}
		if score := policy.evaluate(child.score, float64(child.visits)); best == nil || score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}
