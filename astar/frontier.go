package astar

// frontierItem is one open cell in the frontier heap.
type frontierItem struct {
	idx   int     // row-major cell index
	f     float64 // ranking key, g + h
	h     float64 // first tie-break
	seq   uint64  // insertion order, second tie-break; survives relaxation
	index int     // position in the heap, maintained by Swap/Push/Pop
}

// frontier is a min-heap of *frontierItem ordered by (f, h, seq) ascending.
// Unlike the lazy Dijkstra queue, every open cell has exactly one entry:
// relaxations update the entry in place and call heap.Fix, so the heap never
// holds stale duplicates.
type frontier []*frontierItem

// Len returns the number of open cells.
func (pq frontier) Len() int { return len(pq) }

// Less ranks by lowest f, then lowest h, then earliest insertion.
func (pq frontier) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

// Swap swaps two elements and keeps their heap positions current.
func (pq frontier) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

// Push adds x onto the heap. Called by heap.Push; x must be *frontierItem.
func (pq *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *frontier) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]

	return item
}
