// Package optimize implements the Segment Optimizer: it
// decomposes routed polylines into straight segments, reorders and
// collapses them by connection group, and assigns each surviving
// segment an offset slot on its axis line.
package optimize

import "github.com/orthogram/orthogram/pkg/refine"

// Axis identifies the refinement-lattice line a segment runs along.
type Axis struct {
	Horizontal bool
	// Row/RowSub are meaningful when Horizontal is true; Col/ColSub when
	// it is false. Together with Horizontal they name one lattice line.
	Row, RowSub int
	Col, ColSub int
}

// Segment is a single straight run of one connection's route, together
// with the bookkeeping the optimizer needs to group, collapse, and slot
// it.
type Segment struct {
	Axis  Axis
	Begin int // lower extent along the varying coordinate
	End   int // upper extent along the varying coordinate

	// Connections lists the indices (into the caller's connection slice)
	// that draw through this segment. A freshly decomposed segment has
	// exactly one; Collapse may merge several into one.
	Connections []int
	Group       string
	Priority    int

	// OffsetSlot is filled in by AssignOffsets.
	OffsetSlot int
}

// varying projects one endpoint n onto the segment's varying axis
// (column for a horizontal segment, row for a vertical one) as a single
// comparable integer, used for extent and overlap computation.
func varying(n refine.Node, horizontal bool) int {
	if horizontal {
		return n.Col*1_000_000 + n.ColSub
	}
	return n.Row*1_000_000 + n.RowSub
}

// Decompose splits a routed polyline into one Segment per straight run
//. connIdx is recorded on every emitted segment so
// later stages can trace a segment back to its owning connection.
func Decompose(points []refine.Node, connIdx int, group string, priority int) []Segment {
	var out []Segment
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		horizontal := a.Row == b.Row && a.RowSub == b.RowSub
		axis := Axis{Horizontal: horizontal}
		if horizontal {
			axis.Row, axis.RowSub = a.Row, a.RowSub
		} else {
			axis.Col, axis.ColSub = a.Col, a.ColSub
		}
		lo, hi := varying(a, horizontal), varying(b, horizontal)
		if lo > hi {
			lo, hi = hi, lo
		}
		out = append(out, Segment{
			Axis:        axis,
			Begin:       lo,
			End:         hi,
			Connections: []int{connIdx},
			Group:       group,
			Priority:    priority,
		})
	}
	return out
}

func (s Segment) overlaps(o Segment) bool {
	return s.Axis == o.Axis && s.Begin < o.End && o.Begin < s.End
}
