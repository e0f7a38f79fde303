package route

import (
	"container/heap"

	"github.com/orthogram/orthogram/pkg/refine"
)

// item is one entry in the search frontier: a candidate (node, cost,
// bends) triple. Stale entries (superseded by a later, better relax)
// are filtered out lazily when popped, the standard technique for using
// container/heap as a decrease-key priority queue.
type item struct {
	node  refine.Node
	cost  float64
	bends int
}

// priorityQueue is a binary min-heap ordered by (cost, bends, node), mirroring
// the hand-rolled array-backed min-heap pattern used for Dijkstra search
// elsewhere in the example pack, expressed here via container/heap.
type priorityQueue []*item

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	if pq[i].bends != pq[j].bends {
		return pq[i].bends < pq[j].bends
	}
	return nodeLess(pq[i].node, pq[j].node)
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) { *pq = append(*pq, x.(*item)) }

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}

func (pq *priorityQueue) push(it *item) { heap.Push(pq, it) }

func (pq *priorityQueue) pop() *item { return heap.Pop(pq).(*item) }
