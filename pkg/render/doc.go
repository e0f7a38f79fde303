// Package render draws a solved diagram to SVG and converts SVG to
// other raster/vector formats.
//
// # Overview
//
// [Surface] abstracts over an output format; [SVGSurface] (built by
// [NewSVGSurface]) is the engine's native surface, drawing blocks,
// connections, labels and arrowheads directly as SVG, and [RenderSVG]
// runs [Render] against a fresh one. [RenderPDF] and [RenderPNG] render
// a diagram to SVG the same way and convert it using the external
// rsvg-convert tool (from librsvg).
//
//	d, _ := diagram.Build(doc, diagram.DefaultOptions())
//	svg := render.RenderSVG(d)
//	pdf, err := render.RenderPDF(d)
//	png, err := render.RenderPNG(d, render.WithPNGScale(2.0)) // 2x scale
//
// # Routing diagnostics
//
// The [debugdot] subpackage renders a Graphviz dump of the refinement
// lattice produced by [diagram.BuildDebugGraph], with a connection's
// chosen route highlighted, for diagnosing routing decisions.
//
//	rg, routes, _ := diagram.BuildDebugGraph(doc, opts)
//	svg, err := debugdot.RenderSVG(debugdot.ToDOT(rg, &routes[0]))
//
// [debugdot]: github.com/orthogram/orthogram/pkg/render/debugdot
package render
