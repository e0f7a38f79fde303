package optimize

import "sort"

// Collapse merges, within each group, any two segments that share an
// axis line and have overlapping extents. Non-overlapping
// collinear segments of the same group are left separate. Segments from
// different groups are never merged, even if collinear and overlapping.
// collapseEnabled reports whether collapsing applies to a given group
// (the DDF's per-connection collapse_connections attribute, resolved to
// a single decision per group by the caller).
func Collapse(segments []Segment, collapseEnabled func(group string) bool) []Segment {
	byGroup := make(map[string][]Segment)
	var groupOrder []string
	for _, s := range segments {
		if _, ok := byGroup[s.Group]; !ok {
			groupOrder = append(groupOrder, s.Group)
		}
		byGroup[s.Group] = append(byGroup[s.Group], s)
	}

	out := make([]Segment, 0, len(segments))
	for _, g := range groupOrder {
		group := byGroup[g]
		if !collapseEnabled(g) {
			out = append(out, group...)
			continue
		}
		out = append(out, collapseGroup(group)...)
	}
	return out
}

// collapseGroup merges same-axis overlapping segments within one group.
func collapseGroup(group []Segment) []Segment {
	byAxis := make(map[Axis][]Segment)
	var axisOrder []Axis
	for _, s := range group {
		if _, ok := byAxis[s.Axis]; !ok {
			axisOrder = append(axisOrder, s.Axis)
		}
		byAxis[s.Axis] = append(byAxis[s.Axis], s)
	}

	var out []Segment
	for _, axis := range axisOrder {
		segs := byAxis[axis]
		sort.SliceStable(segs, func(i, j int) bool { return segs[i].Begin < segs[j].Begin })
		merged := segs[0]
		for _, s := range segs[1:] {
			if s.Begin < merged.End {
				if s.End > merged.End {
					merged.End = s.End
				}
				merged.Connections = append(merged.Connections, s.Connections...)
				continue
			}
			out = append(out, merged)
			merged = s
		}
		out = append(out, merged)
	}
	return out
}
