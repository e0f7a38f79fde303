// Package diagram ties the whole engine together: it runs a parsed DDF
// Document through the Grid Builder, the Node Graph, the Router, the
// Segment Optimizer and the Constraint Sizer, and assembles the result
// into a render.Diagram ready for a Surface to draw.
package diagram

import (
	"github.com/orthogram/orthogram/pkg/attrs"
	"github.com/orthogram/orthogram/pkg/ddf"
	"github.com/orthogram/orthogram/pkg/grid"
	"github.com/orthogram/orthogram/pkg/optimize"
	"github.com/orthogram/orthogram/pkg/refine"
	"github.com/orthogram/orthogram/pkg/render"
	"github.com/orthogram/orthogram/pkg/route"
	"github.com/orthogram/orthogram/pkg/size"
)

// Options configures one Build pass: the refinement lattice density
// and the spacing/scale knobs the Constraint Sizer needs
// beyond what is already resolved onto block and connection attributes
//.
type Options struct {
	K                  int
	ConnectionDistance float64
	ArrowLength        float64
	DefaultMinWidth    float64
	DefaultMinHeight   float64
	DefaultPadding     float64
	Scale              float64
}

// DefaultOptions returns the engine's built-in defaults, mirroring the
// attribute catalogue's own built-in values where the two
// overlap.
func DefaultOptions() Options {
	return Options{
		K:                  refine.DefaultK,
		ConnectionDistance: 4,
		ArrowLength:        10,
		DefaultMinWidth:    0,
		DefaultMinHeight:   0,
		DefaultPadding:     4,
		Scale:              1,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.K == 0 {
		o.K = d.K
	}
	if o.ConnectionDistance == 0 {
		o.ConnectionDistance = d.ConnectionDistance
	}
	if o.ArrowLength == 0 {
		o.ArrowLength = d.ArrowLength
	}
	if o.DefaultPadding == 0 {
		o.DefaultPadding = d.DefaultPadding
	}
	if o.Scale == 0 {
		o.Scale = d.Scale
	}
	return o
}

// Build runs the full DDF → solved Diagram pipeline: build
// the grid and its blocks, refine it into a lattice, route every
// expanded connection across it, optimize the resulting segments, size
// the whole thing under constraints, and assemble final coordinates.
func Build(doc ddf.Document, opts Options) (render.Diagram, error) {
	opts = opts.withDefaults()

	defs := make([]grid.Def, len(doc.Blocks))
	for i, b := range doc.Blocks {
		defs[i] = grid.Def{Name: b.Name, Tags: b.Tags, Own: b.Attrs, StyleNames: b.StyleNames}
	}
	g, blocks, err := grid.Build(doc.Rows, defs, doc.Styles)
	if err != nil {
		return render.Diagram{}, err
	}

	blockNames := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		blockNames[b.Name] = true
	}

	diagramAttrs := attrs.Resolve(doc.DiagramAttrs, doc.DiagramStyleNames, doc.Styles, attrs.KindDiagram)

	rg := refine.Build(g, blocks, opts.K)
	interior := opts.K / 2

	conns := doc.Expand()
	resolved := make([]attrs.Attributes, len(conns))
	for i, c := range conns {
		resolved[i] = resolveConnectionAttrs(doc, c)
	}

	// Group reordering decides each connection's final
	// drawing priority and draw position before any routing happens, so
	// the Segment Optimizer's collapse/offset passes see connections
	// already in their group-contiguous order.
	metas := make([]optimize.ConnMeta, len(conns))
	for i, a := range resolved {
		metas[i] = optimize.ConnMeta{Index: i, Group: groupOf(a), Priority: priorityOf(a)}
	}
	reordered := optimize.ReorderByGroup(metas)

	finalPriority := make([]int, len(conns))
	finalGroup := make([]string, len(conns))
	for _, m := range reordered {
		finalPriority[m.Index] = m.Priority
		finalGroup[m.Index] = m.Group
	}

	routes := make([]route.Route, len(conns))
	for i, c := range conns {
		rc, err := toRouteConnection(g, blockNames, c, resolved[i])
		if err != nil {
			return render.Diagram{}, err
		}
		rt, err := route.Find(rg, rc)
		if err != nil {
			return render.Diagram{}, err
		}
		routes[i] = rt
	}

	var allSegments []optimize.Segment
	for _, m := range reordered {
		i := m.Index
		key := groupKey(i, finalGroup[i])
		allSegments = append(allSegments, optimize.Decompose(routes[i].Points, i, key, m.Priority)...)
	}

	collapseEnabled := make(map[string]bool)
	for i, a := range resolved {
		if collapseOf(a) {
			collapseEnabled[groupKey(i, finalGroup[i])] = true
		}
	}
	collapsed := optimize.Collapse(allSegments, func(group string) bool { return collapseEnabled[group] })
	optimize.AssignOffsets(collapsed)

	bySAxis := make(map[optimize.Axis][]optimize.Segment, len(collapsed))
	for _, s := range collapsed {
		bySAxis[s.Axis] = append(bySAxis[s.Axis], s)
	}

	rowSlots := buildChannelSlots(bySAxis, true, interior)
	colSlots := buildChannelSlots(bySAxis, false, interior)

	rowCh := make([]size.RowChannels, g.Rows)
	for i := 0; i < g.Rows; i++ {
		rowCh[i] = size.RowChannels{North: rowSlots.total(i, false), South: rowSlots.total(i, true)}
	}
	colCh := make([]size.ColChannels, g.Cols)
	for i := 0; i < g.Cols; i++ {
		colCh[i] = size.ColChannels{West: colSlots.total(i, false), East: colSlots.total(i, true)}
	}

	sizeCfg := size.Config{
		ConnectionDistance: opts.ConnectionDistance,
		ArrowLength:        opts.ArrowLength,
		DefaultMinWidth:    opts.DefaultMinWidth,
		DefaultMinHeight:   opts.DefaultMinHeight,
		DefaultPadding:     opts.DefaultPadding,
		Scale:              opts.Scale,
	}
	sized, err := size.Build(g, blocks, rowCh, colCh, sizeCfg)
	if err != nil {
		return render.Diagram{}, err
	}

	geo := newGeometry(sized, bySAxis, rowSlots, colSlots, interior)

	blockDraws := make([]render.BlockDraw, len(blocks))
	for i, b := range blocks {
		r := sized.Blocks[b.Name]
		blockDraws[i] = render.BlockDraw{
			Name:  b.Name,
			Rect:  render.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom},
			Attrs: b.Attrs,
		}
	}

	connDraws := make([]render.ConnectionDraw, len(conns))
	for i, c := range conns {
		a := resolved[i]
		pts := make([]render.Point, len(routes[i].Points))
		for j, n := range routes[i].Points {
			pts[j] = geo.point(i, n)
		}
		fwd, back := true, false
		if a.ArrowForward != nil {
			fwd = *a.ArrowForward
		}
		if a.ArrowBack != nil {
			back = *a.ArrowBack
		}
		connDraws[i] = render.ConnectionDraw{
			Group:           finalGroup[i],
			Priority:        finalPriority[i],
			DefinitionIndex: c.DefinitionIndex,
			Points:          pts,
			Attrs:           a,
			Labels:          buildLabels(c, pts, a),
			ArrowForward:    fwd,
			ArrowBack:       back,
		}
	}

	label := ""
	if diagramAttrs.Label != nil {
		label = *diagramAttrs.Label
	}

	return render.Diagram{
		Width:       sized.Width,
		Height:      sized.Height,
		Background:  diagramAttrs,
		Label:       label,
		LabelAttrs:  diagramAttrs,
		Blocks:      blockDraws,
		Connections: connDraws,
	}, nil
}
