package searcher

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"uct/utils"

	"github.com/muesli/termenv"
)

// BestChild returns the root's child with the greatest accumulated score (not the average);
// ties go to the earliest child.
func BestChild(root *Node) (*Node, error) {
	i := utils.ArgMax(root.children, func(child *Node) float64 {
		return child.score
	})
	if i < 0 {
		return nil, ErrNoChildren
	}
	return root.children[i], nil
}

type Row struct {
	Position int // 1-based
	Score    float64
	Visits   int
}

// Report is a diagnostic snapshot of the root's children after a search.
type Report struct {
	Rows []Row
	Best int // 1-based position of BestChild
}

func NewReport(root *Node) (Report, error) {
	best, err := BestChild(root)
	if err != nil {
		return Report{}, err
	}

	rows := make([]Row, len(root.children))
	for i, child := range root.children {
		rows[i] = Row{Position: i + 1, Score: child.score, Visits: child.visits}
	}
	return Report{
		Rows: rows,
		Best: utils.FindIndex(root.children, best) + 1,
	}, nil
}

// Write prints one line per child and a final line naming the best child, which is also
// highlighted when the output supports it.
func (r Report) Write(w io.Writer, opts ...termenv.OutputOption) error {
	out := termenv.NewOutput(w, opts...)
	for _, row := range r.Rows {
		line := fmt.Sprintf("child %d: score=%s visits=%d", row.Position, strconv.FormatFloat(row.Score, 'f', -1, 64), row.Visits)
		if row.Position == r.Best {
			line = out.String(line).Bold().Foreground(out.Color("2")).String()
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "best child: %d\n", r.Best)
	return err
}

func (r Report) String() string {
	var sb strings.Builder
	_ = r.Write(&sb, termenv.WithProfile(termenv.Ascii))
	return sb.String()
}
