package route

import (
	"testing"

	"github.com/orthogram/orthogram/pkg/errors"
	"github.com/orthogram/orthogram/pkg/grid"
	"github.com/orthogram/orthogram/pkg/refine"
)

// buildRow lays out three 1x1 blocks side by side: a, (gap), b, (gap), c.
func buildRow(t *testing.T) *refine.Graph {
	t.Helper()
	g := grid.NewGrid([][]string{{"a", "x", "b", "y", "c"}})
	blocks := []grid.Block{
		{Name: "a", Cover: grid.Cover{MinRow: 0, MaxRow: 0, MinCol: 0, MaxCol: 0}},
		{Name: "b", Cover: grid.Cover{MinRow: 0, MaxRow: 0, MinCol: 2, MaxCol: 2}},
		{Name: "c", Cover: grid.Cover{MinRow: 0, MaxRow: 0, MinCol: 4, MaxCol: 4}},
	}
	return refine.Build(g, blocks, 3)
}

func TestFindRoutesBetweenAdjacentBlocks(t *testing.T) {
	rg := buildRow(t)
	route, err := Find(rg, Connection{StartBlock: "a", EndBlock: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route.Points) < 2 {
		t.Fatalf("expected a multi-point route, got %+v", route.Points)
	}
	first, last := route.Points[0], route.Points[len(route.Points)-1]
	if first.Col >= last.Col {
		t.Fatalf("expected route to progress left-to-right, got %+v -> %+v", first, last)
	}
}

func TestFindCollapsesCollinearPoints(t *testing.T) {
	rg := buildRow(t)
	route, err := Find(rg, Connection{StartBlock: "a", EndBlock: "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(route.Points)-1; i++ {
		if sameDirection(route.Points[i-1], route.Points[i], route.Points[i+1]) {
			t.Fatalf("collinear triple survived collapsing at index %d: %+v", i, route.Points)
		}
	}
}

func TestFindRespectsExitAndEntranceSides(t *testing.T) {
	rg := buildRow(t)
	route, err := Find(rg, Connection{
		StartBlock: "a",
		EndBlock:   "b",
		Exits:      []refine.Side{refine.Left}, // a may only be left through its left side...
		Entrances:  []refine.Side{refine.Left}, // ...and b only entered through its left side.
	})
	// Border and channel tracks are routable, so such a path exists.
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, _ := rg.Info(route.Points[0])
	last, _ := rg.Info(route.Points[len(route.Points)-1])
	if first.Block != "a" || first.Side != refine.Left {
		t.Fatalf("expected route to start on a's left side, got %+v", first)
	}
	if last.Block != "b" || last.Side != refine.Left {
		t.Fatalf("expected route to end on b's left side, got %+v", last)
	}
}

func TestFindReturnsUnroutableForUnknownBlock(t *testing.T) {
	rg := buildRow(t)
	_, err := Find(rg, Connection{StartBlock: "a", EndBlock: "ghost"})
	if !errors.Is(err, errors.CodeRouting) {
		t.Fatalf("expected CodeRouting for unknown end block, got %v", err)
	}
}

func TestCollapseKeepsEndpointsOfStraightLine(t *testing.T) {
	pts := []refine.Node{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3},
	}
	got := collapse(pts)
	if len(got) != 2 {
		t.Fatalf("expected a straight line to collapse to 2 points, got %+v", got)
	}
	if got[0] != pts[0] || got[1] != pts[len(pts)-1] {
		t.Fatalf("collapse must preserve endpoints, got %+v", got)
	}
}
