package grid

import (
	"sort"

	"github.com/orthogram/orthogram/pkg/attrs"
	"github.com/orthogram/orthogram/pkg/errors"
)

// Def is one explicit block definition from the DDF `blocks` section.
type Def struct {
	Name       string
	Tags       []string
	Own        attrs.Attributes
	StyleNames []string
}

// Build runs the Grid Builder algorithm:
//
//  1. pad rows to a common width (done by NewGrid);
//  2. for every named block, validate its cover is rectangular and
//     contains no foreign-owned cell;
//  3. synthesize an autoblock for every leftover tag;
//  4. order all blocks for drawing: autoblocks first, then explicit
//     blocks in definition order.
func Build(rows [][]string, defs []Def, styles attrs.Styles) (Grid, []Block, error) {
	g := NewGrid(rows)

	owner := make(map[string]string, len(defs)) // tag -> owning block name
	seenName := make(map[string]bool, len(defs))

	for _, d := range defs {
		if seenName[d.Name] {
			return g, nil, errors.New(errors.CodeLayout, "duplicate block name %q", d.Name)
		}
		seenName[d.Name] = true
	}

	// A block's own name always self-owns that tag: this is what lets a
	// wrapper block (e.g. "frame") list another block's name among its
	// explicit Tags without conflicting with that block's own implicit
	// name-tag. Self-ownership is recorded before any explicit Tags are
	// considered, so it always wins regardless of definition order.
	for _, d := range defs {
		owner[d.Name] = d.Name
	}

	for _, d := range defs {
		for _, tag := range d.Tags {
			if existing, ok := owner[tag]; ok {
				if existing == tag {
					// tag is some block's own name; that block stays the
					// sole owner and d merely wraps its cells.
					continue
				}
				if existing != d.Name {
					return g, nil, errors.New(errors.CodeLayout,
						"tag %q is claimed by both block %q and block %q", tag, existing, d.Name)
				}
				continue
			}
			owner[tag] = d.Name
		}
	}

	explicit := make([]Block, 0, len(defs))
	for _, d := range defs {
		own := d.ownedSet()
		cells := g.cellsWithTags(own)
		if len(cells) == 0 {
			return g, nil, zeroCoverError(d.Name)
		}
		cover := coverOf(cells)
		if err := checkForeignFree(g, cover, d.Name, own, owner); err != nil {
			return g, nil, err
		}
		explicit = append(explicit, Block{
			Name:  d.Name,
			Tags:  d.Tags,
			Cover: cover,
			Attrs: attrs.Resolve(d.Own, d.StyleNames, styles, attrs.KindBlock),
		})
	}

	autoDefaults, autoStyleNames := autoblockDefaults(styles)
	autoblocks := make([]Block, 0)
	for _, tag := range g.firstAppearanceOrder() {
		if _, owned := owner[tag]; owned {
			continue
		}
		own := map[string]bool{tag: true}
		cells := g.cellsWithTags(own)
		cover := coverOf(cells)
		if err := checkForeignFree(g, cover, tag, own, owner); err != nil {
			return g, nil, err
		}
		autoblocks = append(autoblocks, Block{
			Name:          tag,
			Cover:         cover,
			Attrs:         attrs.Resolve(autoDefaults, autoStyleNames, styles, attrs.KindBlock),
			Autogenerated: true,
		})
	}

	all := make([]Block, 0, len(autoblocks)+len(explicit))
	all = append(all, autoblocks...)
	all = append(all, explicit...)
	for i := range all {
		all[i].DrawOrder = i
	}
	return g, all, nil
}

// ownedSet returns {Name} ∪ Tags as a membership set.
func (d Def) ownedSet() map[string]bool {
	set := map[string]bool{d.Name: true}
	for _, t := range d.Tags {
		set[t] = true
	}
	return set
}

// checkForeignFree validates that no cell within cover carries a tag owned
// by a block other than the one being built.
func checkForeignFree(g Grid, cover Cover, name string, own map[string]bool, owner map[string]string) error {
	for r := cover.MinRow; r <= cover.MaxRow; r++ {
		for c := cover.MinCol; c <= cover.MaxCol; c++ {
			tag := g.Tag(r, c)
			if tag == "" || own[tag] {
				continue
			}
			if ownerName, ok := owner[tag]; ok && ownerName != name {
				return foreignCellError(name, r, c, tag)
			}
		}
	}
	return nil
}

// autoblockDefaults resolves the default_block style, if any, as the base
// attributes for every synthesized autoblock.
func autoblockDefaults(styles attrs.Styles) (attrs.Attributes, []string) {
	if _, ok := styles[attrs.DefaultBlockStyleName]; ok {
		return attrs.Attributes{}, []string{attrs.DefaultBlockStyleName}
	}
	return attrs.Attributes{}, nil
}

// SortedBlockNames is a small helper used by callers that need a
// deterministic iteration order over a name set (e.g. error reporting).
func SortedBlockNames(blocks []Block) []string {
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.Name
	}
	sort.Strings(names)
	return names
}
