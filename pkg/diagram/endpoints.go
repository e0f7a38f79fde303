package diagram

import (
	"fmt"

	"github.com/orthogram/orthogram/pkg/attrs"
	"github.com/orthogram/orthogram/pkg/ddf"
	"github.com/orthogram/orthogram/pkg/errors"
	"github.com/orthogram/orthogram/pkg/grid"
	"github.com/orthogram/orthogram/pkg/refine"
	"github.com/orthogram/orthogram/pkg/route"
)

// resolveConnectionAttrs folds a connection's attributes the way
// attrs.Resolve folds a block's, plus the one inheritance step Resolve
// cannot express: the DDF's top-level `groups` mapping attaches
// attributes to a connection's Group, not to its own style list
//. A connection's final Group can itself come from a style
// rather than from its own attributes, so this runs the fold twice: a
// first pass discovers the Group attrs.Resolve would have produced
// anyway, then, if that group has an entry in doc.Groups, a second pass
// re-folds with the group's attributes inserted between
// default_connection and the connection's own style list.
func resolveConnectionAttrs(doc ddf.Document, c ddf.Connection) attrs.Attributes {
	discover := attrs.Resolve(c.Attrs, c.StyleNames, doc.Styles, attrs.KindConnection)

	groupName := groupOf(discover)
	groupAttrs, hasGroup := doc.Groups[groupName]
	if groupName == "" || !hasGroup {
		return discover
	}

	base := attrs.Attributes{}
	if def, ok := doc.Styles[attrs.DefaultConnectionStyleName]; ok {
		base = attrs.Merge(base, def)
	}
	base = attrs.Merge(base, groupAttrs)
	for _, name := range c.StyleNames {
		if s, ok := doc.Styles[name]; ok {
			base = attrs.Merge(base, s)
		}
	}
	base = attrs.Merge(base, c.Attrs)
	return attrs.Merge(attrs.Defaults(attrs.KindConnection), base)
}

func groupOf(a attrs.Attributes) string {
	if a.Group != nil {
		return *a.Group
	}
	return ""
}

func priorityOf(a attrs.Attributes) int {
	if a.DrawingPriority != nil {
		return *a.DrawingPriority
	}
	return 0
}

func collapseOf(a attrs.Attributes) bool {
	return a.CollapseConnections != nil && *a.CollapseConnections
}

// groupKey returns the disambiguated group identity the Segment
// Optimizer's own ReorderByGroup uses internally: a connection's real
// group name if it has one, else a key scoped to its own index so an
// ungrouped connection never collapses or reorders against another
//.
func groupKey(idx int, group string) string {
	if group != "" {
		return group
	}
	return fmt.Sprintf("\x00solo:%d", idx)
}

func toRefineSides(ss []attrs.Side) []refine.Side {
	if len(ss) == 0 {
		return nil
	}
	out := make([]refine.Side, len(ss))
	for i, s := range ss {
		out[i] = refine.Side(s)
	}
	return out
}

// toRouteConnection resolves a DDF connection's endpoints to block
// names (and, for `{block: tag}` endpoints, specific cells) and carries
// its entry/exit side restrictions into a route.Connection.
func toRouteConnection(g grid.Grid, blockNames map[string]bool, c ddf.Connection, a attrs.Attributes) (route.Connection, error) {
	startBlock, startCell, err := resolveEndpoint(g, blockNames, c.Start)
	if err != nil {
		return route.Connection{}, errors.Wrap(errors.CodeDefinition, err, "connection %d start", c.DefinitionIndex)
	}
	endBlock, endCell, err := resolveEndpoint(g, blockNames, c.End)
	if err != nil {
		return route.Connection{}, errors.Wrap(errors.CodeDefinition, err, "connection %d end", c.DefinitionIndex)
	}
	return route.Connection{
		StartBlock: startBlock,
		EndBlock:   endBlock,
		Exits:      toRefineSides(a.Exits),
		Entrances:  toRefineSides(a.Entrances),
		StartCell:  startCell,
		EndCell:    endCell,
	}, nil
}

// resolveEndpoint validates that ep names a known block and, for a
// `{block: tag}` endpoint, resolves tag to the single grid cell that
// carries it (grid.CellOf searches the whole grid, not only that
// block's cover).
func resolveEndpoint(g grid.Grid, blockNames map[string]bool, ep ddf.Endpoint) (string, *route.Cell, error) {
	if ep.Block == "" || !blockNames[ep.Block] {
		return "", nil, fmt.Errorf("unknown block %q", ep.Block)
	}
	if ep.Tag == "" {
		return ep.Block, nil, nil
	}
	pos, ok := grid.CellOf(g, ep.Tag)
	if !ok {
		return "", nil, fmt.Errorf("tag %q does not resolve to exactly one cell in block %q", ep.Tag, ep.Block)
	}
	return ep.Block, &route.Cell{Row: pos.Row, Col: pos.Col}, nil
}
