// Package debugdot dumps a refinement grid's node-link structure to
// Graphviz DOT for diagnosing routing decisions.
package debugdot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/orthogram/orthogram/pkg/refine"
	"github.com/orthogram/orthogram/pkg/route"
)

// ToDOT renders rg's lattice as a DOT digraph: one node per lattice point,
// labeled with its class, and one edge per lattice step to an in-bounds
// neighbour (passability is not checked). highlight, if non-nil, marks a found route's nodes so a
// human can see which path the router actually chose.
func ToDOT(rg *refine.Graph, highlight *route.Route) string {
	onPath := make(map[refine.Node]bool)
	if highlight != nil {
		for _, n := range highlight.Points {
			onPath[n] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=point, width=0.08];\n")
	buf.WriteString("  edge [arrowsize=0.5];\n\n")

	for _, n := range rg.AllNodes() {
		info, _ := rg.Info(n)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n), nodeAttrs(info, onPath[n]))
	}

	buf.WriteString("\n")
	seen := make(map[[2]refine.Node]bool)
	for _, n := range rg.AllNodes() {
		for _, step := range rg.Neighbors(n) {
			key := [2]refine.Node{n, step.Node}
			if seen[key] {
				continue
			}
			seen[key] = true
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(n), nodeID(step.Node))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(n refine.Node) string {
	return fmt.Sprintf("r%dc%d-%d,%d", n.Row, n.Col, n.RowSub, n.ColSub)
}

func nodeAttrs(info refine.NodeInfo, onPath bool) string {
	label := fmt.Sprintf("label=%q", info.Class.String())
	switch {
	case onPath:
		return label + `, style=filled, fillcolor=red, width=0.15`
	case info.Class == refine.Inside:
		return label + `, style=filled, fillcolor=lightgrey`
	case info.Class == refine.Border:
		return label + `, style=filled, fillcolor=steelblue`
	default:
		return label + `, style=filled, fillcolor=white`
	}
}

// RenderSVG renders dot to SVG bytes via Graphviz, the same engine the
// teacher's node-link DOT exporter uses for its own debug diagrams.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
