package refine

import (
	"testing"

	"github.com/orthogram/orthogram/pkg/grid"
)

func singleBlockGrid() (grid.Grid, []grid.Block) {
	g := grid.NewGrid([][]string{{"a"}})
	blocks := []grid.Block{{Name: "a", Cover: grid.Cover{MinRow: 0, MaxRow: 0, MinCol: 0, MaxCol: 0}}}
	return g, blocks
}

func TestBuildDefaultsToKThreeWhenTooSmall(t *testing.T) {
	g, blocks := singleBlockGrid()
	rg := Build(g, blocks, 1)
	if rg.K != DefaultK {
		t.Fatalf("K = %d, want default %d", rg.K, DefaultK)
	}
}

func TestSingleCellBlockHasInteriorAndBorderNodes(t *testing.T) {
	g, blocks := singleBlockGrid()
	rg := Build(g, blocks, 3)

	info, ok := rg.Info(Node{Row: 0, RowSub: 1, Col: 0, ColSub: 1})
	if !ok || info.Class != Inside || info.Block != "a" {
		t.Fatalf("expected interior node classified Inside/a, got %+v ok=%v", info, ok)
	}

	border, ok := rg.Info(Node{Row: 0, RowSub: 0, Col: 0, ColSub: 1})
	if !ok || border.Class != Border || border.Side != Top {
		t.Fatalf("expected top border node, got %+v ok=%v", border, ok)
	}
}

func TestNeighborsStayWithinLatticeBounds(t *testing.T) {
	g, blocks := singleBlockGrid()
	rg := Build(g, blocks, 3)
	corner := Node{Row: 0, RowSub: 0, Col: 0, ColSub: 0}
	steps := rg.Neighbors(corner)
	for _, s := range steps {
		if s.Node.Row < 0 || s.Node.Col < 0 {
			t.Fatalf("neighbor escaped lattice bounds: %+v", s.Node)
		}
	}
	if len(steps) != 2 {
		t.Fatalf("expected exactly 2 neighbors (right, down) from the single-cell corner, got %d", len(steps))
	}
}

func TestPassableRespectsPassThrough(t *testing.T) {
	inside := NodeInfo{Class: Inside, Block: "middle", PassThrough: false}
	if Passable(inside, "start", "end") {
		t.Fatal("non-endpoint block without pass_through must not be passable")
	}
	inside.PassThrough = true
	if !Passable(inside, "start", "end") {
		t.Fatal("pass_through block should be passable")
	}
	endpoint := NodeInfo{Class: Inside, Block: "start"}
	if !Passable(endpoint, "start", "end") {
		t.Fatal("the start block's own interior must be passable for its connection")
	}
}

func TestEdgeCostChargesBendSurchargeOnDirectionChange(t *testing.T) {
	rows, cols := 2, 2
	wBend := WBend(rows, cols)
	if wBend < float64(rows+cols) {
		t.Fatalf("WBend = %v, want >= R+C = %d", wBend, rows+cols)
	}

	step := Step{Node: Node{Row: 0, Col: 1}, Dir: Direction{DCol: 1}}
	straight := EdgeCost(step, Direction{DCol: 1}, NodeInfo{}, "", rows, cols)
	if straight != 1 {
		t.Fatalf("straight step cost = %v, want 1", straight)
	}
	bent := EdgeCost(step, Direction{DRow: 1}, NodeInfo{}, "", rows, cols)
	if bent != 1+wBend {
		t.Fatalf("bent step cost = %v, want %v", bent, 1+wBend)
	}
}

func TestManhattanHeuristicNeverExceedsTrueLength(t *testing.T) {
	a := Node{Row: 0, Col: 0}
	b := Node{Row: 3, Col: 4}
	h := ManhattanHeuristic(a, b)
	if h > float64(7) {
		t.Fatalf("heuristic %v exceeds true minimum length %d", h, 7)
	}
}
