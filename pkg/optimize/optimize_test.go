package optimize

import (
	"testing"

	"github.com/orthogram/orthogram/pkg/refine"
)

func TestReorderByGroupAnchorsAtFirstAppearance(t *testing.T) {
	metas := []ConnMeta{
		{Index: 0, Group: "", Priority: 0},
		{Index: 1, Group: "g", Priority: 1},
		{Index: 2, Group: "", Priority: 0},
		{Index: 3, Group: "g", Priority: 5},
	}
	got := ReorderByGroup(metas)
	want := []int{0, 1, 3, 2}
	for i, w := range want {
		if got[i].Index != w {
			t.Fatalf("order[%d] = %d, want %d (full: %+v)", i, got[i].Index, w, got)
		}
	}
	for _, m := range got {
		if m.Group == "g" && m.Priority != 5 {
			t.Fatalf("expected group g members to adopt max priority 5, got %+v", m)
		}
	}
}

func TestCollapseMergesOverlappingSameGroupSegments(t *testing.T) {
	axis := Axis{Horizontal: true, Row: 0, RowSub: 1}
	segs := []Segment{
		{Axis: axis, Begin: 0, End: 10, Connections: []int{0}, Group: "g"},
		{Axis: axis, Begin: 5, End: 15, Connections: []int{1}, Group: "g"},
	}
	got := Collapse(segs, func(string) bool { return true })
	if len(got) != 1 {
		t.Fatalf("expected overlapping segments to merge into 1, got %d: %+v", len(got), got)
	}
	if got[0].Begin != 0 || got[0].End != 15 {
		t.Fatalf("expected merged extent [0,15], got [%d,%d]", got[0].Begin, got[0].End)
	}
	if len(got[0].Connections) != 2 {
		t.Fatalf("expected merged segment to carry both connections, got %v", got[0].Connections)
	}
}

func TestCollapseLeavesNonOverlappingSegmentsSeparate(t *testing.T) {
	axis := Axis{Horizontal: true}
	segs := []Segment{
		{Axis: axis, Begin: 0, End: 5, Connections: []int{0}, Group: "g"},
		{Axis: axis, Begin: 10, End: 15, Connections: []int{1}, Group: "g"},
	}
	got := Collapse(segs, func(string) bool { return true })
	if len(got) != 2 {
		t.Fatalf("expected non-overlapping segments to stay separate, got %d", len(got))
	}
}

func TestCollapseDoesNotMergeAcrossGroups(t *testing.T) {
	axis := Axis{Horizontal: true}
	segs := []Segment{
		{Axis: axis, Begin: 0, End: 10, Connections: []int{0}, Group: "a"},
		{Axis: axis, Begin: 5, End: 15, Connections: []int{1}, Group: "b"},
	}
	got := Collapse(segs, func(string) bool { return true })
	if len(got) != 2 {
		t.Fatalf("expected cross-group segments to stay separate, got %d", len(got))
	}
}

func TestAssignOffsetsGivesDistinctSlotsToOverlapping(t *testing.T) {
	axis := Axis{Horizontal: true}
	segs := []Segment{
		{Axis: axis, Begin: 0, End: 10},
		{Axis: axis, Begin: 5, End: 15},
		{Axis: axis, Begin: 20, End: 25}, // disjoint from both, should reuse a slot
	}
	AssignOffsets(segs)
	if segs[0].OffsetSlot == segs[1].OffsetSlot {
		t.Fatalf("overlapping segments must get distinct slots, got %d and %d", segs[0].OffsetSlot, segs[1].OffsetSlot)
	}
	if segs[2].OffsetSlot != segs[0].OffsetSlot {
		t.Fatalf("expected the disjoint segment to reuse slot %d, got %d", segs[0].OffsetSlot, segs[2].OffsetSlot)
	}
}

func TestDecomposeSplitsPolylineIntoAxisAlignedSegments(t *testing.T) {
	points := []refine.Node{
		{Row: 0, Col: 0}, {Row: 0, Col: 3}, {Row: 2, Col: 3},
	}
	segs := Decompose(points, 0, "", 0)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if !segs[0].Axis.Horizontal || segs[1].Axis.Horizontal {
		t.Fatalf("expected first segment horizontal, second vertical, got %+v", segs)
	}
}
