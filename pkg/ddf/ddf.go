// Package ddf implements the Diagram Definition File loader: parsing YAML (and CSV row-only includes), resolving `include`
// chains, merging attribute and style sections across files, and
// expanding each connection's start/end lists into the Cartesian
// product of individual routable endpoints.
package ddf

import "github.com/orthogram/orthogram/pkg/attrs"

// Endpoint is one resolved connection terminus: either a whole block
// (Tag empty) or a specific tagged cell within a block.
type Endpoint struct {
	Block string
	Tag   string
}

// Label is one of a connection's start/middle/end labels, or a block's
// or diagram's label, each with its own attribute overrides.
type Label struct {
	Text  string
	Attrs attrs.Attributes
}

// RawBlock is one `blocks` entry before autoblock synthesis, which pkg/grid performs once the grid's rows are known.
type RawBlock struct {
	Name       string
	Tags       []string
	StyleNames []string // the entity's explicit style list
	Attrs      attrs.Attributes
}

// RawConnection is one `connections` entry before Cartesian-product
// expansion of its start/end lists.
type RawConnection struct {
	Starts, Ends                    []Endpoint
	StyleNames                       []string
	StartLabel, MiddleLabel, EndLabel *Label
	Attrs                            attrs.Attributes
	DefinitionIndex                  int
}

// Connection is one routable start→end pair, after Cartesian-product
// expansion: Start and End are each a single Endpoint, naming a whole
// block or a specific tagged cell within a block.
type Connection struct {
	Start, End                       Endpoint
	StyleNames                       []string
	StartLabel, MiddleLabel, EndLabel *Label
	Attrs                            attrs.Attributes
	DefinitionIndex                  int
}

// Document is a fully merged DDF: every `include` resolved and folded
// in, every section's later-file-wins-on-scalars/appends-on-sequences
// merge applied, ready for pkg/grid, pkg/route and
// pkg/size to consume.
type Document struct {
	DiagramAttrs      attrs.Attributes
	DiagramStyleNames []string
	Rows              [][]string
	Blocks            []RawBlock
	Connections       []RawConnection
	Styles            attrs.Styles
	Groups            attrs.Styles
}

// Expand returns every connection in d after Cartesian-product
// expansion of each RawConnection's start/end endpoint lists. Expanded connections are emitted in start-major, end-minor
// order within their source RawConnection, and RawConnections are
// processed in their original definition order; DefinitionIndex is
// reassigned sequentially across the whole expansion so draw-order
// tie-breaking has a single flat sequence to sort by.
func (d Document) Expand() []Connection {
	var out []Connection
	idx := 0
	for _, rc := range d.Connections {
		for _, start := range rc.Starts {
			for _, end := range rc.Ends {
				out = append(out, Connection{
					Start:           start,
					End:             end,
					StyleNames:      rc.StyleNames,
					StartLabel:      rc.StartLabel,
					MiddleLabel:     rc.MiddleLabel,
					EndLabel:        rc.EndLabel,
					Attrs:           rc.Attrs,
					DefinitionIndex: idx,
				})
				idx++
			}
		}
	}
	return out
}
