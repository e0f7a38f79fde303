package route

import "github.com/orthogram/orthogram/pkg/refine"

// search is one connection's search bookkeeping: best known cost and bend
// count to reach each visited node, and enough to reconstruct the path.
type search struct {
	rg     *refine.Graph
	conn   Connection
	best   map[refine.Node]label
	frontier priorityQueue
}

// label records the best entry found so far for a node: the total cost,
// the number of bends on that best path, the direction the path arrived
// from (for bend detection on the next hop), and the predecessor node.
type label struct {
	cost  float64
	bends int
	dir   refine.Direction
	prev  refine.Node
	has   bool // false for the synthetic start state (no predecessor)
}

func newSearch(rg *refine.Graph, conn Connection) *search {
	return &search{rg: rg, conn: conn, best: make(map[refine.Node]label)}
}

// relax offers a candidate (cost, bends) pair for reaching n via dir from
// prev (the synthetic source if hasPrev is false); it updates the
// frontier only if this is strictly better than any previously known
// entry: (a) lower cost, or (b) equal cost and fewer bends. Frontier
// entries equal on both are popped in order of (c) lexicographically
// smaller node (see priorityQueue.Less).
func (s *search) relax(n refine.Node, dir refine.Direction, cost float64, bends int, prev refine.Node, hasPrev bool) {
	cur, seen := s.best[n]
	if seen && !better(cost, bends, cur.cost, cur.bends) {
		return
	}
	lbl := label{cost: cost, bends: bends, dir: dir, prev: prev, has: hasPrev}
	s.best[n] = lbl
	s.frontier.push(&item{node: n, cost: cost, bends: bends})
}

func better(cost float64, bends int, bestCost float64, bestBends int) bool {
	if cost != bestCost {
		return cost < bestCost
	}
	return bends < bestBends
}

// run drains the frontier until a node in sinks is popped with its final
// (lowest-cost) label, returning that node. ok is false if the frontier
// empties first.
func (s *search) run(sinks map[refine.Node]bool) (refine.Node, bool) {
	visited := make(map[refine.Node]bool)
	for s.frontier.Len() > 0 {
		it := s.frontier.pop()
		if visited[it.node] {
			continue
		}
		cur := s.best[it.node]
		// A stale heap entry: the node's label has since improved.
		if it.cost != cur.cost || it.bends != cur.bends {
			continue
		}
		visited[it.node] = true
		if sinks[it.node] {
			return it.node, true
		}
		for _, step := range s.rg.Neighbors(it.node) {
			info, _ := s.rg.Info(step.Node)
			if !refine.Passable(info, s.conn.StartBlock, s.conn.EndBlock) {
				continue
			}
			edgeCost := refine.EdgeCost(step, cur.dir, info, s.conn.PreferredSide, s.rg.Rows, s.rg.Cols)
			bends := cur.bends
			if cur.has && cur.dir != step.Dir {
				bends++
			}
			s.relax(step.Node, step.Dir, cur.cost+edgeCost, bends, it.node, true)
		}
	}
	return refine.Node{}, false
}

// reconstruct walks best[] backwards from goal to the synthetic start to
// build the ordered polyline.
func (s *search) reconstruct(goal refine.Node) []refine.Node {
	var rev []refine.Node
	n := goal
	for {
		rev = append(rev, n)
		lbl := s.best[n]
		if !lbl.has {
			break
		}
		n = lbl.prev
	}
	out := make([]refine.Node, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return out
}
