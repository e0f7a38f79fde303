package grid

import "github.com/orthogram/orthogram/pkg/attrs"

// Block is a named rectangle covering the minimal axis-aligned bounding
// rectangle of all cells carrying its tags.
type Block struct {
	Name          string
	Tags          []string // extra tags beyond Name, as given in the definition
	Cover         Cover
	Attrs         attrs.Attributes
	Autogenerated bool

	// DrawOrder is the block's position in the final draw sequence:
	// autoblocks first (first-appearance order of their tag), then
	// explicit blocks in definition order.
	DrawOrder int
}

// ownTags returns the set of tags (Name plus Tags) that this block's cover
// was computed from.
func (b Block) ownTags() map[string]bool {
	set := map[string]bool{b.Name: true}
	for _, t := range b.Tags {
		set[t] = true
	}
	return set
}

// CellOf returns the position of the single cell in the whole grid
// tagged tag, used to resolve a `{block: tag}` connection endpoint to a
// specific cell rather than the whole block; it does not check that the
// cell lies inside any block's cover. ok is false if no cell in the grid
// carries tag, or more than one does.
func CellOf(g Grid, tag string) (pos Pos, ok bool) {
	var found []Pos
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Tag(r, c) == tag {
				found = append(found, Pos{Row: r, Col: c})
			}
		}
	}
	if len(found) != 1 {
		return Pos{}, false
	}
	return found[0], true
}
