package gridgraph

import (
	"container/list"
	"fmt"
)

// MinimalBreach finds a path from a to b that crosses the fewest obstacle
// cells, and returns that path (a and b inclusive) together with the number of
// obstacles on it. It answers "what is the least I must clear to connect these
// two cells" after a search reported no path.
//
// Behavior:
//  1. Validate both endpoints are in bounds.
//  2. 0–1 BFS from a:
//     • Moving into a free cell     → cost 0
//     • Moving into an obstacle     → cost 1
//  3. Stop when b is dequeued.
//  4. Reconstruct path via predecessor indices.
//
// An obstacle at a itself counts toward the cost. With obstacles included the
// grid is always connected, so b is always reached.
//
// Complexity: O(W·H·d), Memory: O(W·H) for distance and prev arrays.
func (gg *GridGraph) MinimalBreach(a, b Cell) (path []Cell, cost int, err error) {
	if !gg.Contains(a) {
		return nil, 0, fmt.Errorf("%w: %v", ErrOutOfBounds, a)
	}
	if !gg.Contains(b) {
		return nil, 0, fmt.Errorf("%w: %v", ErrOutOfBounds, b)
	}

	gg.mu.RLock()
	defer gg.mu.RUnlock()

	N := gg.width * gg.height
	const inf = int(^uint(0) >> 1)
	dist := make([]int, N)
	prev := make([]int, N)
	for i := range dist {
		dist[i] = inf
		prev[i] = -1
	}

	src, dst := gg.Index(a), gg.Index(b)
	dist[src] = 0
	if gg.blocked[src] {
		dist[src] = 1
	}

	// 0–1 BFS: deque processes cost0 at front, cost1 at back
	dq := list.New()
	dq.PushFront(src)
	done := make([]bool, N)

	for dq.Len() > 0 {
		e := dq.Front()
		dq.Remove(e)
		u := e.Value.(int)
		if done[u] {
			continue
		}
		done[u] = true
		if u == dst {
			break
		}
		uc := gg.Coordinate(u)
		for _, d := range gg.offsets {
			vx, vy := uc.X+d[0], uc.Y+d[1]
			if !gg.InBounds(vx, vy) {
				continue
			}
			v := vy*gg.width + vx
			step := 0
			if gg.blocked[v] {
				step = 1
			}
			nd := dist[u] + step
			if nd < dist[v] {
				dist[v] = nd
				prev[v] = u
				if step == 0 {
					dq.PushFront(v)
				} else {
					dq.PushBack(v)
				}
			}
		}
	}

	// Reconstruct path
	for at := dst; at >= 0; at = prev[at] {
		path = append(path, gg.Coordinate(at))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist[dst], nil
}
