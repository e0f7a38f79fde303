// Package pkg provides the core libraries for orthogram's block-diagram
// layout and routing engine.
//
// # Overview
//
// orthogram lays out and routes block diagrams described in Diagram
// Definition Files (DDF): named blocks placed on a row/column grid,
// connected by orthogonal lines that stay clear of the blocks they
// don't touch. The pkg directory contains reusable Go libraries
// organized into the engine's pipeline stages:
//
//  1. Document parsing ([ddf])
//  2. Grid construction ([grid])
//  3. Lattice refinement ([refine])
//  4. Routing ([route])
//  5. Segment optimization ([optimize])
//  6. Constraint sizing ([size])
//  7. Rendering ([render])
//  8. Pipeline orchestration ([diagram])
//
// # Architecture
//
// The data flow through orthogram's Build pass ([diagram.Build]):
//
//	DDF document
//	     ↓
//	[grid] package (place blocks on a row/column grid)
//	     ↓
//	[refine] package (expand the grid into a routable lattice)
//	     ↓
//	[route] package (find an orthogonal path per connection)
//	     ↓
//	[optimize] package (decompose, collapse and offset overlapping segments)
//	     ↓
//	[size] package (solve block and channel dimensions under constraints)
//	     ↓
//	[render] package (draw to SVG, PNG or PDF)
//
// # Quick Start
//
// Load a DDF document and render it:
//
//	import (
//	    "github.com/orthogram/orthogram/pkg/ddf"
//	    "github.com/orthogram/orthogram/pkg/diagram"
//	    "github.com/orthogram/orthogram/pkg/render"
//	)
//
//	doc, _ := ddf.Load("diagram.yaml")
//	d, _ := diagram.Build(doc, diagram.DefaultOptions())
//	svg := render.RenderSVG(d)
//
// # Main Packages
//
// [ddf] - Parses Diagram Definition Files: blocks placed on a grid of
// rows, connections between them, attributes and named styles, and
// file includes.
//
// [grid] - Places parsed blocks onto a row/column grid and resolves
// their spans and attributes.
//
// [refine] - Expands the block grid into a finer lattice of routable
// points, classified by whether they sit inside, on the border of, or
// outside a block.
//
// [route] - Finds an orthogonal path for each connection across the
// refined lattice, respecting block occlusion and entry-side
// constraints.
//
// [optimize] - Decomposes routes into axis-aligned segments, collapses
// parallel segments sharing a connection group, and assigns draw
// offsets so overlapping lines stay visually distinct.
//
// [size] - Solves final block and channel dimensions from content size,
// minimum constraints and the space routed connections need.
//
// [render] - Draws a solved diagram to SVG and converts SVG to PNG/PDF.
// [render/debugdot] renders a Graphviz dump of the refinement lattice
// and a connection's route, for diagnosing routing decisions.
//
// [diagram] - Orchestrates the full pipeline end to end, and its
// [diagram.Runner] wraps a cache-aware Build/Render pass for repeated
// invocations (the CLI and the HTTP server both use it).
//
// [attrs] - The shared attribute catalogue (colors, fonts, arrows,
// spacing) that blocks, connections and styles resolve against.
//
// [cache] - Pluggable result caching (no-op, filesystem, Redis) for
// built diagrams and rendered artifacts.
//
// [observability] - Stage/cache hook interfaces and a global registry
// for them, so a library never imports a logger. [diagram] and [cache]
// do not call these hooks, so a registered implementation (such as the
// CLI's progress UI) sees only the events a caller emits itself.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/route/...              # Specific package
//	go test -run Example ./pkg/...       # Examples only
package pkg
