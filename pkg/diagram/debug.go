package diagram

import (
	"github.com/orthogram/orthogram/pkg/ddf"
	"github.com/orthogram/orthogram/pkg/grid"
	"github.com/orthogram/orthogram/pkg/refine"
	"github.com/orthogram/orthogram/pkg/route"
)

// BuildDebugGraph runs the Grid Builder, the Node Graph and the Router
// the same way Build does, but stops short of optimization and sizing
// and hands back the refinement lattice and every connection's route so
// a caller can dump them for routing diagnostics (pkg/render/debugdot).
func BuildDebugGraph(doc ddf.Document, opts Options) (*refine.Graph, []route.Route, error) {
	opts = opts.withDefaults()

	defs := make([]grid.Def, len(doc.Blocks))
	for i, b := range doc.Blocks {
		defs[i] = grid.Def{Name: b.Name, Tags: b.Tags, Own: b.Attrs, StyleNames: b.StyleNames}
	}
	g, blocks, err := grid.Build(doc.Rows, defs, doc.Styles)
	if err != nil {
		return nil, nil, err
	}

	blockNames := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		blockNames[b.Name] = true
	}

	rg := refine.Build(g, blocks, opts.K)

	conns := doc.Expand()
	routes := make([]route.Route, len(conns))
	for i, c := range conns {
		resolved := resolveConnectionAttrs(doc, c)
		rc, err := toRouteConnection(g, blockNames, c, resolved)
		if err != nil {
			return nil, nil, err
		}
		rt, err := route.Find(rg, rc)
		if err != nil {
			return nil, nil, err
		}
		routes[i] = rt
	}

	return rg, routes, nil
}
