// Package grid implements the Grid Builder: it maps user
// tags placed on a rectangular grid to named blocks occupying rectangular
// cell covers, synthesizing autoblocks for leftover tags.
package grid

import "github.com/orthogram/orthogram/pkg/errors"

// Grid is an R×C matrix of cells. Each cell carries at most one tag; the
// empty string marks an anonymous cell. Rows are padded to the width of
// the longest row.
type Grid struct {
	Rows, Cols int
	cells      [][]string
}

// NewGrid pads rows to a common width and returns the resulting Grid. A
// nil or empty-string entry in a row is an anonymous cell.
func NewGrid(rows [][]string) Grid {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		padded := make([]string, cols)
		copy(padded, r)
		cells[i] = padded
	}
	return Grid{Rows: len(rows), Cols: cols, cells: cells}
}

// Tag returns the tag at (row, col), or "" if out of bounds or anonymous.
func (g Grid) Tag(row, col int) string {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return ""
	}
	return g.cells[row][col]
}

// cellsWithTags returns, in row-major order, the positions of every cell
// whose tag is a member of tags.
func (g Grid) cellsWithTags(tags map[string]bool) []Pos {
	var out []Pos
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if t := g.cells[r][c]; t != "" && tags[t] {
				out = append(out, Pos{Row: r, Col: c})
			}
		}
	}
	return out
}

// firstAppearanceOrder returns every distinct non-empty tag in the grid in
// the row-major order of its first occurrence.
func (g Grid) firstAppearanceOrder() []string {
	seen := make(map[string]bool)
	var order []string
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			t := g.cells[r][c]
			if t != "" && !seen[t] {
				seen[t] = true
				order = append(order, t)
			}
		}
	}
	return order
}

// Pos is a single grid cell coordinate.
type Pos struct {
	Row, Col int
}

// Cover is an inclusive rectangular span of grid cells.
type Cover struct {
	MinRow, MaxRow, MinCol, MaxCol int
}

// Contains reports whether (row, col) lies within the cover.
func (c Cover) Contains(row, col int) bool {
	return row >= c.MinRow && row <= c.MaxRow && col >= c.MinCol && col <= c.MaxCol
}

// Width returns the number of logical columns spanned.
func (c Cover) Width() int { return c.MaxCol - c.MinCol + 1 }

// Height returns the number of logical rows spanned.
func (c Cover) Height() int { return c.MaxRow - c.MinRow + 1 }

func coverOf(positions []Pos) Cover {
	c := Cover{MinRow: positions[0].Row, MaxRow: positions[0].Row, MinCol: positions[0].Col, MaxCol: positions[0].Col}
	for _, p := range positions[1:] {
		if p.Row < c.MinRow {
			c.MinRow = p.Row
		}
		if p.Row > c.MaxRow {
			c.MaxRow = p.Row
		}
		if p.Col < c.MinCol {
			c.MinCol = p.Col
		}
		if p.Col > c.MaxCol {
			c.MaxCol = p.Col
		}
	}
	return c
}

func zeroCoverError(name string) error {
	return errors.New(errors.CodeLayout, "block %q has an empty cover (no grid cell carries its name or tags)", name)
}

func foreignCellError(name string, row, col int, foreignTag string) error {
	return errors.New(errors.CodeLayout,
		"block %q's cover at (%d,%d) contains cell tagged %q, which belongs to another block", name, row, col, foreignTag)
}
