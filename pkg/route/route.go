// Package route implements the Router: for each
// connection, a best-first search over an effective subgraph of the
// refinement lattice, producing an orthogonal polyline.
package route

import (
	"sort"

	"github.com/orthogram/orthogram/pkg/errors"
	"github.com/orthogram/orthogram/pkg/refine"
)

// Connection is one routable start→end pair, after Cartesian-product
// expansion of a DDF connection's start/end lists.
type Connection struct {
	StartBlock, EndBlock string
	// Exits restricts which sides of StartBlock the route may leave
	// through; Entrances restricts which sides of EndBlock it may enter
	// through. Empty means all four sides are permitted.
	Exits, Entrances []refine.Side
	// PreferredSide, if non-empty, is used as the side-bias tie-breaker
	//.
	PreferredSide refine.Side

	// StartCell/EndCell, if non-nil, narrow the search to the border
	// nodes of that one logical cell rather than the whole block's
	// cover, implementing the DDF's `{block: tag}` endpoint that targets a specific cell within a multi-cell block.
	StartCell, EndCell *Cell
}

// Cell identifies a single logical grid cell by its (row, col)
// position, mirroring grid.Pos without importing pkg/grid here.
type Cell struct{ Row, Col int }

// Route is the ordered polyline produced for one Connection, already
// collapsed so that no three consecutive points are collinear.
type Route struct {
	Points []refine.Node
}

// Find runs the Router's best-first search for conn over rg and returns
// its route, or an UnroutableConnection error if no path
// exists between any permitted exit of StartBlock and any permitted
// entrance of EndBlock.
func Find(rg *refine.Graph, conn Connection) (Route, error) {
	sources := borderNodes(rg, conn.StartBlock, sideSet(conn.Exits), conn.StartCell)
	sinks := borderNodes(rg, conn.EndBlock, sideSet(conn.Entrances), conn.EndCell)
	if len(sources) == 0 || len(sinks) == 0 {
		return Route{}, unroutable(conn)
	}
	sinkSet := make(map[refine.Node]bool, len(sinks))
	for _, n := range sinks {
		sinkSet[n] = true
	}

	st := newSearch(rg, conn)
	for _, s := range sources {
		st.relax(s, refine.Direction{}, 0, 0, refine.Node{}, false)
	}

	goal, ok := st.run(sinkSet)
	if !ok {
		return Route{}, unroutable(conn)
	}
	points := st.reconstruct(goal)
	return Route{Points: collapse(points)}, nil
}

func unroutable(conn Connection) error {
	return errors.New(errors.CodeRouting, "no route exists from block %q to block %q", conn.StartBlock, conn.EndBlock)
}

// sideSet converts a (possibly empty, meaning "all sides") slice of
// sides into a lookup set.
func sideSet(sides []refine.Side) map[refine.Side]bool {
	if len(sides) == 0 {
		return nil // nil means unrestricted
	}
	set := make(map[refine.Side]bool, len(sides))
	for _, s := range sides {
		set[s] = true
	}
	return set
}

// borderNodes collects every Border node owned by block that sits on a
// permitted side, to seed the synthetic source/sink edges for routing.
// If cell is non-nil, only border nodes within that one logical cell
// are returned (the `{block: tag}` endpoint form).
func borderNodes(rg *refine.Graph, block string, permitted map[refine.Side]bool, cell *Cell) []refine.Node {
	var out []refine.Node
	for _, n := range rg.AllNodes() {
		info, ok := rg.Info(n)
		if !ok || info.Class != refine.Border || info.Block != block {
			continue
		}
		if permitted != nil && !permitted[info.Side] {
			continue
		}
		if cell != nil && (n.Row != cell.Row || n.Col != cell.Col) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return nodeLess(out[i], out[j]) })
	return out
}

func nodeLess(a, b refine.Node) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	if a.RowSub != b.RowSub {
		return a.RowSub < b.RowSub
	}
	if a.Col != b.Col {
		return a.Col < b.Col
	}
	return a.ColSub < b.ColSub
}

// collapse removes collinear interior points from a polyline, leaving
// only the points where direction changes.
func collapse(points []refine.Node) []refine.Node {
	if len(points) < 3 {
		return points
	}
	out := []refine.Node{points[0]}
	for i := 1; i < len(points)-1; i++ {
		prev, cur, next := points[i-1], points[i], points[i+1]
		if sameDirection(prev, cur, next) {
			continue
		}
		out = append(out, cur)
	}
	out = append(out, points[len(points)-1])
	return out
}

func sameDirection(a, b, c refine.Node) bool {
	d1r, d1c := signOf(b.Row-a.Row, b.RowSub-a.RowSub), signOf(b.Col-a.Col, b.ColSub-a.ColSub)
	d2r, d2c := signOf(c.Row-b.Row, c.RowSub-b.RowSub), signOf(c.Col-b.Col, c.ColSub-b.ColSub)
	return d1r == d2r && d1c == d2c
}

func signOf(major, minor int) int {
	if major != 0 {
		if major > 0 {
			return 1
		}
		return -1
	}
	if minor > 0 {
		return 1
	}
	if minor < 0 {
		return -1
	}
	return 0
}
