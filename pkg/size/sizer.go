package size

import (
	"fmt"

	"github.com/orthogram/orthogram/pkg/errors"
	"github.com/orthogram/orthogram/pkg/grid"
)

// Rect is an axis-aligned rectangle in solved drawing coordinates
// (before the final scale multiplication is applied by Build).
type Rect struct {
	Left, Top, Right, Bottom float64
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// RowChannels and ColChannels tell the sizer how many offset slots the
// Segment Optimizer actually used on each side of each logical row/
// column's interior, so the sizer can size channel tracks to fit them
// without re-deriving that count from the refinement grid's own
// sub-track count.
type RowChannels struct{ North, South int }
type ColChannels struct{ West, East int }

// Config carries the spacing and default-size parameters the Constraint
// Sizer needs beyond what is already resolved onto each Block's
// Attributes.
type Config struct {
	ConnectionDistance float64
	ArrowLength        float64
	DefaultMinWidth    float64
	DefaultMinHeight   float64
	DefaultPadding     float64
	Scale              float64
}

// Result is the fully solved layout: every row/column line coordinate,
// each block's rectangle, and the overall drawing size, all already
// multiplied by Config.Scale.
type Result struct {
	// RowLines/ColLines hold every flattened boundary-line coordinate;
	// row i's interior band is [RowLines[i*3+1], RowLines[i*3+2]], its
	// outer band is [RowLines[i*3], RowLines[i*3+3]] (columns analogous).
	RowLines []float64
	ColLines []float64
	Blocks   map[string]Rect
	Width    float64
	Height   float64
}

// line variable name helpers. Rows and columns are modeled as one
// flattened sequence of boundary lines each: line g of the row axis is
// "row i's boundary j" where g = i*3 + j and j indexes
// {outer/channel-start, inner-top, inner-bottom} relative to that row,
// with consecutive rows sharing a line (row i's last line IS row i+1's
// first line), which stitches them for free.
func rowLine(i int) string { return fmt.Sprintf("row.%d", i) }
func colLine(i int) string { return fmt.Sprintf("col.%d", i) }

// Each logical row contributes 4 lines: outer-top, inner-top,
// inner-bottom, outer-bottom; row i's outer-bottom is shared with row
// i+1's outer-top via the global index mapping below.
const linesPerRow = 3 // outer-top, inner-top, inner-bottom (outer-bottom is the next row's outer-top)

func rowGlobalLine(i, sub int) string { return rowLine(i*linesPerRow + sub) }
func colGlobalLine(i, sub int) string { return colLine(i*linesPerRow + sub) }

// Build runs the Constraint Sizer: it declares a line
// variable for every row/column boundary (block rectangles are expressed
// as constraints between those lines), adds the required strong
// constraints, solves once, and
// retries with defaulted mins if the first solve is infeasible. On a
// second failure it reports InfeasibleLayout (CodeSizing).
func Build(g grid.Grid, blocks []grid.Block, rowCh []RowChannels, colCh []ColChannels, cfg Config) (Result, error) {
	res, err := build(g, blocks, rowCh, colCh, cfg, false)
	if err == nil {
		return res, nil
	}
	res, err2 := build(g, blocks, rowCh, colCh, cfg, true)
	if err2 != nil {
		return Result{}, errors.Wrap(errors.CodeSizing, err, "layout remains infeasible after relaxing minimum sizes to defaults")
	}
	return res, nil
}

func build(g grid.Grid, blocks []grid.Block, rowCh []RowChannels, colCh []ColChannels, cfg Config, relaxed bool) (Result, error) {
	s := NewSolver()

	totalRowLines := g.Rows*linesPerRow + 1
	totalColLines := g.Cols*linesPerRow + 1
	for i := 0; i < totalRowLines; i++ {
		s.Var(rowLine(i))
	}
	for i := 0; i < totalColLines; i++ {
		s.Var(colLine(i))
	}

	// Monotonic ordering + channel spacing for every row.
	for i := 0; i < g.Rows; i++ {
		north, south := 0, 0
		if i < len(rowCh) {
			north, south = rowCh[i].North, rowCh[i].South
		}
		outerBottom := rowLine((i + 1) * linesPerRow) // shared with row i+1's outer-top
		chargeChannel(s, rowGlobalLine(i, 0), rowGlobalLine(i, 1), north, cfg.ConnectionDistance)
		s.AddGE(rowGlobalLine(i, 2), rowGlobalLine(i, 1), 0) // inner span, widened by block mins below
		chargeChannel(s, rowGlobalLine(i, 2), outerBottom, south, cfg.ConnectionDistance)
	}
	for i := 0; i < g.Cols; i++ {
		west, east := 0, 0
		if i < len(colCh) {
			west, east = colCh[i].West, colCh[i].East
		}
		outerRight := colLine((i + 1) * linesPerRow)
		chargeChannel(s, colGlobalLine(i, 0), colGlobalLine(i, 1), west, cfg.ConnectionDistance)
		s.AddGE(colGlobalLine(i, 2), colGlobalLine(i, 1), 0)
		chargeChannel(s, colGlobalLine(i, 2), outerRight, east, cfg.ConnectionDistance)
	}

	minW, minH := cfg.DefaultMinWidth, cfg.DefaultMinHeight
	padding := cfg.DefaultPadding

	// Each block's inner rectangle is bounded by its bounding rows' and
	// columns' already-declared interior lines; no separate alias
	// variables are needed, which keeps every constraint forward-facing
	// in declaration order (required by the longest-path solver).
	for _, b := range blocks {
		top := rowGlobalLine(b.Cover.MinRow, 1)
		bottom := rowGlobalLine(b.Cover.MaxRow, 2)
		left := colGlobalLine(b.Cover.MinCol, 1)
		right := colGlobalLine(b.Cover.MaxCol, 2)

		w, h := minW, minH
		padL, padR, padT, padB := padding, padding, padding, padding
		if !relaxed {
			if b.Attrs.MinWidth != nil {
				w = *b.Attrs.MinWidth
			}
			if b.Attrs.MinHeight != nil {
				h = *b.Attrs.MinHeight
			}
			if b.Attrs.PaddingLeft != nil {
				padL = *b.Attrs.PaddingLeft
			}
			if b.Attrs.PaddingRight != nil {
				padR = *b.Attrs.PaddingRight
			}
			if b.Attrs.PaddingTop != nil {
				padT = *b.Attrs.PaddingTop
			}
			if b.Attrs.PaddingBottom != nil {
				padB = *b.Attrs.PaddingBottom
			}
		}
		s.AddGE(bottom, top, h+padT+padB)
		s.AddGE(right, left, w+padL+padR)

		// Outer rectangle = inner rect ± margins: each side's margin (or,
		// if larger, the arrow-termination clearance whenever that side
		// carries a margin at all) pushes the block's inner edge away
		// from its row/column's channel boundary.
		outerTop := rowGlobalLine(b.Cover.MinRow, 0)
		outerBottom := rowLine((b.Cover.MaxRow + 1) * linesPerRow)
		outerLeft := colGlobalLine(b.Cover.MinCol, 0)
		outerRight := colLine((b.Cover.MaxCol + 1) * linesPerRow)

		reserveMargin(s, top, outerTop, marginOf(b, "top"), cfg.ArrowLength)
		reserveMargin(s, outerBottom, bottom, marginOf(b, "bottom"), cfg.ArrowLength)
		reserveMargin(s, left, outerLeft, marginOf(b, "left"), cfg.ArrowLength)
		reserveMargin(s, outerRight, right, marginOf(b, "right"), cfg.ArrowLength)
	}

	values, err := s.Solve()
	if err != nil {
		return Result{}, err
	}

	rowLines := make([]float64, totalRowLines)
	for i := 0; i < totalRowLines; i++ {
		rowLines[i] = values[rowLine(i)]
	}
	colLines := make([]float64, totalColLines)
	for i := 0; i < totalColLines; i++ {
		colLines[i] = values[colLine(i)]
	}

	rects := make(map[string]Rect, len(blocks))
	for _, b := range blocks {
		rects[b.Name] = Rect{
			Left:   values[colGlobalLine(b.Cover.MinCol, 1)],
			Top:    values[rowGlobalLine(b.Cover.MinRow, 1)],
			Right:  values[colGlobalLine(b.Cover.MaxCol, 2)],
			Bottom: values[rowGlobalLine(b.Cover.MaxRow, 2)],
		}
	}

	// colLines measures the horizontal axis, rowLines the vertical one.
	width := colLines[len(colLines)-1]
	height := rowLines[len(rowLines)-1]

	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}
	for i := range rowLines {
		rowLines[i] *= scale
	}
	for i := range colLines {
		colLines[i] *= scale
	}
	for name, r := range rects {
		rects[name] = Rect{Left: r.Left * scale, Top: r.Top * scale, Right: r.Right * scale, Bottom: r.Bottom * scale}
	}

	return Result{
		RowLines: rowLines,
		ColLines: colLines,
		Blocks:   rects,
		Width:    width * scale,
		Height:   height * scale,
	}, nil
}

// chargeChannel adds the spacing required to fit slotCount parallel
// connection offset slots between two boundary lines. Each slot gets an
// equal minDist-wide share of the band, so geo.rowY/geo.colX can place
// slot rank at the midpoint of its share (rank+0.5)/slotCount; when the
// band is exactly that wide, adjacent slots end up minDist apart and the
// outermost ones minDist/2 from the band's own edges.
func chargeChannel(s *Solver, from, to string, slotCount int, minDist float64) {
	required := 0.0
	if slotCount > 0 {
		required = float64(slotCount) * minDist
	}
	s.AddGE(to, from, required)
}

// reserveMargin requires at least max(margin, ArrowLength-if-margin-set)
// clearance between to and from, which already satisfy to >= from in the
// declared line ordering. A positive margin always pushes the outer line
// away from the inner one by its own amount; if the side also needs room
// for an arrow to terminate there, that clearance floor applies too.
func reserveMargin(s *Solver, to, from string, margin, arrowLength float64) {
	required := margin
	if margin > 0 && arrowLength > required {
		required = arrowLength
	}
	s.AddGE(to, from, required)
}

func marginOf(b grid.Block, side string) float64 {
	switch side {
	case "top":
		if b.Attrs.MarginTop != nil {
			return *b.Attrs.MarginTop
		}
	case "bottom":
		if b.Attrs.MarginBottom != nil {
			return *b.Attrs.MarginBottom
		}
	case "left":
		if b.Attrs.MarginLeft != nil {
			return *b.Attrs.MarginLeft
		}
	case "right":
		if b.Attrs.MarginRight != nil {
			return *b.Attrs.MarginRight
		}
	}
	return 0
}
