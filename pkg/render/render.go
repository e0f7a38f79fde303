// Package render implements the Renderer Adapter: it
// walks a solved diagram in a fixed draw order and emits it to
// whichever Surface backend the caller supplies.
package render

import "github.com/orthogram/orthogram/pkg/attrs"

// Point is a coordinate in final drawing space (after Config.Scale has
// already been applied by the Constraint Sizer).
type Point struct{ X, Y float64 }

// Rect is an axis-aligned rectangle in drawing space.
type Rect struct{ Left, Top, Right, Bottom float64 }

// BlockDraw is one block's resolved geometry and style, ready to paint.
type BlockDraw struct {
	Name  string
	Rect  Rect
	Attrs attrs.Attributes
}

// Label is one piece of text anchored at a point, used for block
// labels, connection start/middle/end labels, and the diagram label.
type Label struct {
	Text  string
	At    Point
	Attrs attrs.Attributes
}

// ConnectionDraw is one connection's resolved polyline, group, and
// drawing priority.
type ConnectionDraw struct {
	Group           string
	Priority        int
	DefinitionIndex int
	Points          []Point
	Attrs           attrs.Attributes
	Labels          []Label
	ArrowForward    bool
	ArrowBack       bool
}

// Diagram is the fully solved drawing: every block and connection with
// final coordinates, plus diagram-level background and label.
type Diagram struct {
	Width, Height float64
	Background    attrs.Attributes
	Label         string
	LabelAttrs    attrs.Attributes
	Blocks        []BlockDraw // already in draw order
	Connections   []ConnectionDraw
}

// Surface is the drawing back-end contract. Implementations translate
// each call into their own output format (SVG markup, a raster canvas,
// a PDF page); Render calls them in a fixed order and never reorders or
// skips a step on the caller's behalf.
type Surface interface {
	Begin(width, height float64)
	Background(a attrs.Attributes)
	BlockFill(b BlockDraw)
	BlockStroke(b BlockDraw)
	BlockLabel(b BlockDraw)
	ConnectionBuffer(c ConnectionDraw)
	ConnectionStroke(c ConnectionDraw)
	Arrowheads(c ConnectionDraw)
	ConnectionLabels(c ConnectionDraw)
	DiagramLabel(text string, a attrs.Attributes, width, height float64)
	End() []byte
}

// Render walks d and issues the draw calls in order: background, then
// every block (fill, stroke, label) in draw order,
// then every connection group in ascending priority order (ties broken
// by definition order) drawing buffer, stroke, arrowheads, and labels
// for each connection, and finally the diagram label.
func Render(d Diagram, s Surface) []byte {
	s.Begin(d.Width, d.Height)
	s.Background(d.Background)

	for _, b := range d.Blocks {
		s.BlockFill(b)
		s.BlockStroke(b)
		s.BlockLabel(b)
	}

	for _, c := range orderConnections(d.Connections) {
		s.ConnectionBuffer(c)
		s.ConnectionStroke(c)
		s.Arrowheads(c)
		s.ConnectionLabels(c)
	}

	s.DiagramLabel(d.Label, d.LabelAttrs, d.Width, d.Height)
	return s.End()
}

// orderConnections sorts by ascending drawing priority, then by
// definition order within a priority tier, without mutating the input.
func orderConnections(conns []ConnectionDraw) []ConnectionDraw {
	out := make([]ConnectionDraw, len(conns))
	copy(out, conns)
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && less(out[j], out[j-1]) {
			out[j], out[j-1] = out[j-1], out[j]
			j--
		}
	}
	return out
}

func less(a, b ConnectionDraw) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.DefinitionIndex < b.DefinitionIndex
}
