package diagram

import (
	"math"
	"sort"

	"github.com/orthogram/orthogram/pkg/attrs"
	"github.com/orthogram/orthogram/pkg/ddf"
	"github.com/orthogram/orthogram/pkg/optimize"
	"github.com/orthogram/orthogram/pkg/refine"
	"github.com/orthogram/orthogram/pkg/render"
	"github.com/orthogram/orthogram/pkg/size"
)

// linesPerRow mirrors size.Result's own documented boundary-line layout
// (row i's four boundary lines sit at i*3+{0,1,2} plus the next row's
// i*3+0): row i's outer-top is RowLines[i*3+0], inner-top
// RowLines[i*3+1], inner-bottom RowLines[i*3+2], outer-bottom
// RowLines[(i+1)*3+0] (columns analogous). size.linesPerRow is
// unexported, so this constant restates the same public contract.
const linesPerRow = 3

// varyingCoord mirrors optimize's own internal varying() encoding of a
// node's position along a segment's varying axis, so a node can be
// looked up against the Begin/End extents optimize.Decompose recorded.
func varyingCoord(n refine.Node, horizontal bool) int {
	if horizontal {
		return n.Col*1_000_000 + n.ColSub
	}
	return n.Row*1_000_000 + n.RowSub
}

// channelSlot identifies one distinct (sub-track, offset slot) pair
// competing for physical space on one side of one row or column.
type channelSlot struct{ sub, slot int }

// channelSlots ranks every distinct (sub, offset slot) pair actually
// used by a collapsed segment set, per row/column index and per side
// (before: north/west, after: south/east). The Constraint Sizer only
// asks for a slot *count* per row/column side (size.RowChannels,
// size.ColChannels); this type bridges that count down to the rank each
// individual segment needs at coordinate-assembly time, deterministic
// by sorting each side's pairs by (sub, slot).
type channelSlots struct {
	bySide map[int]map[bool][]channelSlot
}

// buildChannelSlots scans every segment on the given orientation axis
// (horizontal segments feed row channels, vertical ones feed column
// channels) and ranks each row/column's before/after pairs. Segments on
// the interior (pass-through) sub-track are excluded: that span is
// absorbed by the sizer's plain inner-span constraint, not a channel
//.
func buildChannelSlots(bySAxis map[optimize.Axis][]optimize.Segment, horizontal bool, interior int) channelSlots {
	cs := channelSlots{bySide: make(map[int]map[bool][]channelSlot)}
	seen := make(map[int]map[bool]map[channelSlot]bool)

	for axis, segs := range bySAxis {
		if axis.Horizontal != horizontal {
			continue
		}
		idx, sub := axis.Row, axis.RowSub
		if !horizontal {
			idx, sub = axis.Col, axis.ColSub
		}
		if sub == interior {
			continue
		}
		after := sub > interior
		for _, s := range segs {
			key := channelSlot{sub: sub, slot: s.OffsetSlot}
			if seen[idx] == nil {
				seen[idx] = make(map[bool]map[channelSlot]bool)
			}
			if seen[idx][after] == nil {
				seen[idx][after] = make(map[channelSlot]bool)
			}
			if seen[idx][after][key] {
				continue
			}
			seen[idx][after][key] = true
			if cs.bySide[idx] == nil {
				cs.bySide[idx] = make(map[bool][]channelSlot)
			}
			cs.bySide[idx][after] = append(cs.bySide[idx][after], key)
		}
	}

	for _, bySide := range cs.bySide {
		for after, list := range bySide {
			sort.Slice(list, func(i, j int) bool {
				if list[i].sub != list[j].sub {
					return list[i].sub < list[j].sub
				}
				return list[i].slot < list[j].slot
			})
			bySide[after] = list
		}
	}
	return cs
}

// total returns how many distinct (sub, slot) pairs compete for space
// on the given side of row/column idx, the slot count size.RowChannels/
// size.ColChannels needs.
func (cs channelSlots) total(idx int, after bool) int {
	return len(cs.bySide[idx][after])
}

// rank returns this (sub, slot) pair's position (and the side's total
// count) within idx's ranked list, or (0, 1) if it was never recorded —
// a lone occupant of its side, rendered at the band's midpoint.
func (cs channelSlots) rank(idx, sub, slot int, after bool) (int, int) {
	list := cs.bySide[idx][after]
	for i, k := range list {
		if k.sub == sub && k.slot == slot {
			return i, len(list)
		}
	}
	return 0, 1
}

// geometry computes final drawing coordinates for refinement lattice
// nodes, interpolating a node's physical position within its row/
// column's channel band according to which collapsed segment (and
// therefore which offset slot) actually carries a given connection
// across that point.
type geometry struct {
	sized    size.Result
	bySAxis  map[optimize.Axis][]optimize.Segment
	rowSlots channelSlots
	colSlots channelSlots
	interior int
}

func newGeometry(sized size.Result, bySAxis map[optimize.Axis][]optimize.Segment, rowSlots, colSlots channelSlots, interior int) *geometry {
	return &geometry{sized: sized, bySAxis: bySAxis, rowSlots: rowSlots, colSlots: colSlots, interior: interior}
}

// point returns the final drawing coordinate of node n as it appears on
// connection conn's route.
func (geo *geometry) point(conn int, n refine.Node) render.Point {
	return render.Point{X: geo.colX(conn, n), Y: geo.rowY(conn, n)}
}

func (geo *geometry) rowY(conn int, n refine.Node) float64 {
	lines := geo.sized.RowLines
	outerTop := lines[n.Row*linesPerRow+0]
	innerTop := lines[n.Row*linesPerRow+1]
	innerBottom := lines[n.Row*linesPerRow+2]
	outerBottom := lines[(n.Row+1)*linesPerRow+0]

	if n.RowSub == geo.interior {
		return (innerTop + innerBottom) / 2
	}
	after := n.RowSub > geo.interior

	rank, total := 0, 1
	axis := optimize.Axis{Horizontal: true, Row: n.Row, RowSub: n.RowSub}
	if seg, ok := findSegment(geo.bySAxis[axis], varyingCoord(n, true), conn); ok {
		rank, total = geo.rowSlots.rank(n.Row, n.RowSub, seg.OffsetSlot, after)
	}

	if after {
		return innerBottom + (outerBottom-innerBottom)*(float64(rank)+0.5)/float64(total)
	}
	return outerTop + (innerTop-outerTop)*(float64(rank)+0.5)/float64(total)
}

func (geo *geometry) colX(conn int, n refine.Node) float64 {
	lines := geo.sized.ColLines
	outerLeft := lines[n.Col*linesPerRow+0]
	innerLeft := lines[n.Col*linesPerRow+1]
	innerRight := lines[n.Col*linesPerRow+2]
	outerRight := lines[(n.Col+1)*linesPerRow+0]

	if n.ColSub == geo.interior {
		return (innerLeft + innerRight) / 2
	}
	after := n.ColSub > geo.interior

	rank, total := 0, 1
	axis := optimize.Axis{Horizontal: false, Col: n.Col, ColSub: n.ColSub}
	if seg, ok := findSegment(geo.bySAxis[axis], varyingCoord(n, false), conn); ok {
		rank, total = geo.colSlots.rank(n.Col, n.ColSub, seg.OffsetSlot, after)
	}

	if after {
		return innerRight + (outerRight-innerRight)*(float64(rank)+0.5)/float64(total)
	}
	return outerLeft + (innerLeft-outerLeft)*(float64(rank)+0.5)/float64(total)
}

// findSegment returns the segment among segs whose extent contains at
// and whose Connections list carries conn, the one collapsed segment
// that determines conn's physical offset at this lattice point.
func findSegment(segs []optimize.Segment, at, conn int) (optimize.Segment, bool) {
	for _, s := range segs {
		if at < s.Begin || at > s.End {
			continue
		}
		for _, c := range s.Connections {
			if c == conn {
				return s, true
			}
		}
	}
	return optimize.Segment{}, false
}

// buildLabels computes drawing points for a connection's start, middle
// and end labels, each offset perpendicular from the
// polyline by the connection's label_distance.
func buildLabels(c ddf.Connection, pts []render.Point, a attrs.Attributes) []render.Label {
	if len(pts) == 0 {
		return nil
	}
	dist := 4.0
	if a.LabelDistance != nil {
		dist = *a.LabelDistance
	}

	var labels []render.Label
	if c.StartLabel != nil {
		labels = append(labels, render.Label{
			Text:  c.StartLabel.Text,
			At:    perpOffsetAt(pts, 0, dist),
			Attrs: attrs.Merge(a, c.StartLabel.Attrs),
		})
	}
	if c.EndLabel != nil {
		labels = append(labels, render.Label{
			Text:  c.EndLabel.Text,
			At:    perpOffsetAt(pts, len(pts)-1, dist),
			Attrs: attrs.Merge(a, c.EndLabel.Attrs),
		})
	}
	if c.MiddleLabel != nil {
		mid, segIdx := midpointAlong(pts)
		labels = append(labels, render.Label{
			Text:  c.MiddleLabel.Text,
			At:    offsetAlongSegment(pts, segIdx, mid, dist),
			Attrs: attrs.Merge(a, c.MiddleLabel.Attrs),
		})
	}
	return labels
}

// perpOffsetAt offsets pts[idx] perpendicular to its one incident
// segment by dist.
func perpOffsetAt(pts []render.Point, idx int, dist float64) render.Point {
	var dx, dy float64
	switch {
	case len(pts) < 2:
	case idx == 0:
		dx, dy = pts[1].X-pts[0].X, pts[1].Y-pts[0].Y
	default:
		dx, dy = pts[idx].X-pts[idx-1].X, pts[idx].Y-pts[idx-1].Y
	}
	return offsetPerp(pts[idx], dx, dy, dist)
}

// offsetAlongSegment offsets at, a point known to lie on segment segIdx
// of pts, perpendicular to that segment's direction by dist.
func offsetAlongSegment(pts []render.Point, segIdx int, at render.Point, dist float64) render.Point {
	if segIdx < 0 || segIdx >= len(pts)-1 {
		return at
	}
	dx, dy := pts[segIdx+1].X-pts[segIdx].X, pts[segIdx+1].Y-pts[segIdx].Y
	return offsetPerp(at, dx, dy, dist)
}

func offsetPerp(p render.Point, dx, dy, dist float64) render.Point {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return render.Point{X: p.X, Y: p.Y - dist}
	}
	nx, ny := -dy/length, dx/length
	return render.Point{X: p.X + nx*dist, Y: p.Y + ny*dist}
}

// midpointAlong returns the point halfway along pts' total path length,
// and the index of the segment it falls on.
func midpointAlong(pts []render.Point) (render.Point, int) {
	if len(pts) < 2 {
		return pts[0], 0
	}
	lengths := make([]float64, len(pts)-1)
	total := 0.0
	for i := 0; i < len(pts)-1; i++ {
		lengths[i] = math.Hypot(pts[i+1].X-pts[i].X, pts[i+1].Y-pts[i].Y)
		total += lengths[i]
	}
	target := total / 2
	acc := 0.0
	for i, l := range lengths {
		if acc+l >= target || i == len(lengths)-1 {
			frac := 0.0
			if l > 0 {
				frac = (target - acc) / l
			}
			return render.Point{
				X: pts[i].X + (pts[i+1].X-pts[i].X)*frac,
				Y: pts[i].Y + (pts[i+1].Y-pts[i].Y)*frac,
			}, i
		}
		acc += l
	}
	return pts[len(pts)-1], len(pts) - 2
}
