package searcher

// Node is a vertex of the search tree. Children are owned and kept in creation order; parent is a
// lookup reference used only to walk back up during backup.
type Node struct {
	parent   *Node
	children []*Node
	turn     bool // side whose decision this node represents
	visits   int
	score    float64
	lastWin  bool // most recent rollout verdict recorded at this node
}

// NewNode creates a detached node with zero statistics. It does not link itself into parent's
// children; use Expand to grow a tree.
func NewNode(parent *Node, turn bool) *Node {
	return &Node{
		parent: parent,
		turn:   turn,
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Turn() bool {
	return n.turn
}

func (n *Node) Visits() int {
	return n.visits
}

func (n *Node) Score() float64 {
	return n.score
}

func (n *Node) LastOutcomeWin() bool {
	return n.lastWin
}

// IsLeaf reports whether the node is on the frontier, i.e. has not been expanded.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Size counts the nodes of the subtree rooted at n, n included.
func (n *Node) Size() int {
	size := 1
	for _, child := range n.children {
		size += child.Size()
	}
	return size
}

// Expand appends count children to node, each on the opposite turn with zero statistics.
// A non-positive count is a no-op. Expanding a node that already has children appends more.
func Expand(node *Node, count int) {
	if count <= 0 {
		return
	}
	if node.children == nil {
		node.children = make([]*Node, 0, count)
	}
	for i := 0; i < count; i++ {
		node.children = append(node.children, NewNode(node, !node.turn))
	}
}
