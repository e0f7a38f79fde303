package debugdot

import (
	"strings"
	"testing"

	"github.com/orthogram/orthogram/pkg/attrs"
	"github.com/orthogram/orthogram/pkg/grid"
	"github.com/orthogram/orthogram/pkg/refine"
	"github.com/orthogram/orthogram/pkg/route"
)

func sampleGraph() *refine.Graph {
	g := grid.NewGrid([][]string{{"a"}})
	blocks := []grid.Block{{Name: "a", Cover: grid.Cover{MinRow: 0, MaxRow: 0, MinCol: 0, MaxCol: 0}, Attrs: attrs.Attributes{}}}
	return refine.Build(g, blocks, refine.DefaultK)
}

func TestToDOTProducesADigraphWithOneNodePerLatticePoint(t *testing.T) {
	rg := sampleGraph()
	dot := ToDOT(rg, nil)
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Fatalf("expected a digraph, got: %s", dot)
	}
	wantNodes := rg.K * rg.K
	if got := strings.Count(dot, "label="); got != wantNodes {
		t.Fatalf("expected %d labeled nodes, got %d", wantNodes, got)
	}
}

func TestToDOTHighlightsRoutePoints(t *testing.T) {
	rg := sampleGraph()
	n := refine.Node{Row: 0, RowSub: 1, Col: 0, ColSub: 1}
	dot := ToDOT(rg, &route.Route{Points: []refine.Node{n}})
	if !strings.Contains(dot, "fillcolor=red") {
		t.Fatalf("expected the route's node to be highlighted, got: %s", dot)
	}
}
