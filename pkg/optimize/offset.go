package optimize

import (
	"container/heap"
	"sort"
)

// AssignOffsets assigns each segment an OffsetSlot on its axis line such
// that any two overlapping segments receive distinct slots. It treats each axis line's segments as an interval graph and
// colours it with the earliest-deadline-first greedy, the standard
// minimum-colouring heuristic for interval graphs: process intervals in
// start order, reusing the slot of whichever active interval frees
// soonest. Slot order is stable under connection (definition) order,
// since ties in Begin are broken by the segment's position in the input
// slice, which callers are expected to have already ordered by
// ReorderByGroup.
func AssignOffsets(segments []Segment) {
	byAxis := make(map[Axis][]int) // axis -> indices into segments
	for i, s := range segments {
		byAxis[s.Axis] = append(byAxis[s.Axis], i)
	}
	for _, idxs := range byAxis {
		assignAxisOffsets(segments, idxs)
	}
}

func assignAxisOffsets(segments []Segment, idxs []int) {
	sort.SliceStable(idxs, func(i, j int) bool {
		return segments[idxs[i]].Begin < segments[idxs[j]].Begin
	})

	free := &endHeap{}
	heap.Init(free)
	nextSlot := 0
	for _, i := range idxs {
		seg := &segments[i]
		if free.Len() > 0 && (*free)[0].end <= seg.Begin {
			reused := heap.Pop(free).(slotEnd)
			seg.OffsetSlot = reused.slot
		} else {
			seg.OffsetSlot = nextSlot
			nextSlot++
		}
		heap.Push(free, slotEnd{slot: seg.OffsetSlot, end: seg.End})
	}
}

type slotEnd struct {
	slot int
	end  int
}

type endHeap []slotEnd

func (h endHeap) Len() int            { return len(h) }
func (h endHeap) Less(i, j int) bool  { return h[i].end < h[j].end }
func (h endHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *endHeap) Push(x any)         { *h = append(*h, x.(slotEnd)) }
func (h *endHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
