package optimize

import (
	"fmt"
	"sort"
)

// ConnMeta is the per-connection bookkeeping the reordering step needs:
// its position in definition order, its group name (empty if ungrouped),
// and its own drawing priority before group propagation.
type ConnMeta struct {
	Index    int
	Group    string
	Priority int
}

// ReorderByGroup implements group reordering: connections sharing a
// group are moved to appear contiguously, anchored at the
// index of the group's first member in definition order, with
// definition order preserved within the group. Every member of a group
// ends up with the group's max priority. Ungrouped connections are
// unaffected (each is its own singleton group, anchored at its own
// position).
func ReorderByGroup(metas []ConnMeta) []ConnMeta {
	key := func(m ConnMeta) string {
		if m.Group != "" {
			return m.Group
		}
		return fmt.Sprintf("\x00solo:%d", m.Index)
	}

	anchor := make(map[string]int)
	maxPriority := make(map[string]int)
	var order []string // group keys in first-appearance order
	for _, m := range metas {
		k := key(m)
		if _, seen := anchor[k]; !seen {
			anchor[k] = m.Index
			order = append(order, k)
			maxPriority[k] = m.Priority
		}
		if m.Priority > maxPriority[k] {
			maxPriority[k] = m.Priority
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return anchor[order[i]] < anchor[order[j]] })

	members := make(map[string][]ConnMeta, len(order))
	for _, m := range metas {
		k := key(m)
		members[k] = append(members[k], m)
	}

	out := make([]ConnMeta, 0, len(metas))
	for _, k := range order {
		for _, m := range members[k] {
			m.Priority = maxPriority[k]
			out = append(out, m)
		}
	}
	return out
}
