package grid

import (
	"testing"

	"github.com/orthogram/orthogram/pkg/attrs"
	"github.com/orthogram/orthogram/pkg/errors"
)

func TestBuildMinimalDiagonalDiagram(t *testing.T) {
	rows := [][]string{{"a"}, {"", "b"}}
	defs := []Def{{Name: "a"}, {Name: "b"}}

	g, blocks, err := Build(rows, defs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Rows != 2 || g.Cols != 2 {
		t.Fatalf("expected padded 2x2 grid, got %dx%d", g.Rows, g.Cols)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	byName := map[string]Block{}
	for _, b := range blocks {
		byName[b.Name] = b
	}
	if byName["a"].Cover != (Cover{0, 0, 0, 0}) {
		t.Errorf("block a cover = %+v", byName["a"].Cover)
	}
	if byName["b"].Cover != (Cover{1, 1, 1, 1}) {
		t.Errorf("block b cover = %+v", byName["b"].Cover)
	}
}

func TestBuildFrameDrawnFirstWhenAutogeneratedAbsent(t *testing.T) {
	rows := [][]string{{"a", "b"}}
	defs := []Def{
		{Name: "frame", Tags: []string{"a", "b"}},
		{Name: "a"},
		{Name: "b"},
	}
	_, blocks, err := Build(rows, defs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No leftover tags here (a, b both explicitly owned), so draw order is
	// purely definition order: frame, a, b.
	want := []string{"frame", "a", "b"}
	for i, w := range want {
		if blocks[i].Name != w {
			t.Fatalf("draw order[%d] = %q, want %q", i, blocks[i].Name, w)
		}
	}
	frame := blocks[0]
	if frame.Cover != (Cover{0, 0, 0, 1}) {
		t.Fatalf("frame cover = %+v, want full row", frame.Cover)
	}
}

func TestAutoblocksDrawnBeforeExplicitBlocks(t *testing.T) {
	rows := [][]string{{"x", "a"}}
	defs := []Def{{Name: "a"}}

	_, blocks, err := Build(rows, defs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected autoblock x plus explicit block a, got %d", len(blocks))
	}
	if blocks[0].Name != "x" || !blocks[0].Autogenerated {
		t.Fatalf("expected autoblock x drawn first, got %+v", blocks[0])
	}
	if blocks[1].Name != "a" || blocks[1].Autogenerated {
		t.Fatalf("expected explicit block a drawn second, got %+v", blocks[1])
	}
}

func TestBuildRejectsForeignCellInCover(t *testing.T) {
	rows := [][]string{{"a", "x", "a"}}
	defs := []Def{{Name: "a"}, {Name: "b", Tags: []string{"x"}}}
	// a's cells span columns 0-2, so its cover takes in the middle cell,
	// which carries x: one of block b's explicit tags, i.e. a foreign cell.

	_, _, err := Build(rows, defs, nil)
	if err == nil {
		t.Fatal("expected a foreign-cell LayoutError")
	}
	if !errors.Is(err, errors.CodeLayout) {
		t.Fatalf("expected CodeLayout, got %v", err)
	}
}

func TestBuildRejectsDuplicateBlockName(t *testing.T) {
	rows := [][]string{{"a"}}
	defs := []Def{{Name: "a"}, {Name: "a"}}
	_, _, err := Build(rows, defs, nil)
	if !errors.Is(err, errors.CodeLayout) {
		t.Fatalf("expected duplicate-name LayoutError, got %v", err)
	}
}

func TestBuildRejectsZeroCoverBlock(t *testing.T) {
	rows := [][]string{{"a"}}
	defs := []Def{{Name: "a"}, {Name: "ghost"}}
	_, _, err := Build(rows, defs, nil)
	if !errors.Is(err, errors.CodeLayout) {
		t.Fatalf("expected zero-cover LayoutError, got %v", err)
	}
}

func TestBuildRejectsTagClaimedByTwoBlocks(t *testing.T) {
	rows := [][]string{{"a", "b"}}
	defs := []Def{{Name: "a", Tags: []string{"shared"}}, {Name: "b", Tags: []string{"shared"}}}
	_, _, err := Build(rows, defs, nil)
	if !errors.Is(err, errors.CodeLayout) {
		t.Fatalf("expected tag-conflict LayoutError, got %v", err)
	}
}

func TestBuildAppliesDefaultBlockStyleToAutoblocks(t *testing.T) {
	rows := [][]string{{"leftover"}}
	styles := attrs.Styles{
		attrs.DefaultBlockStyleName: {MinWidth: f64ptr(99)},
	}
	_, blocks, err := Build(rows, nil, styles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocks[0].Attrs.MinWidth == nil || *blocks[0].Attrs.MinWidth != 99 {
		t.Fatalf("expected default_block style applied to autoblock, got %+v", blocks[0].Attrs.MinWidth)
	}
}

func f64ptr(v float64) *float64 { return &v }
