package astar

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// solvedRunner returns a runner that finished a 4×1 corridor search.
func solvedRunner(t *testing.T) *runner {
	t.Helper()
	g, err := gridgraph.NewGridGraph(4, 1, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	opts := DefaultOptions()
	r := newRunner(g, &opts, gridgraph.C(0, 0), gridgraph.C(3, 0))
	require.NoError(t, r.init())
	for r.status == Running {
		r.step()
	}
	require.Equal(t, Succeeded, r.status)
	return r
}

// TestReconstructBrokenChain corrupts parent links and expects
// ErrInconsistentState instead of a wrong path.
func TestReconstructBrokenChain(t *testing.T) {
	t.Run("intact", func(t *testing.T) {
		path, err := solvedRunner(t).reconstruct()
		require.NoError(t, err)
		require.Len(t, path, 4)
	})

	t.Run("orphan goal", func(t *testing.T) {
		r := solvedRunner(t)
		r.nodes[r.goal].parent = -1
		_, err := r.reconstruct()
		require.ErrorIs(t, err, ErrInconsistentState)
	})

	t.Run("unvisited link", func(t *testing.T) {
		r := solvedRunner(t)
		r.nodes[2].state = Unvisited
		_, err := r.reconstruct()
		require.ErrorIs(t, err, ErrInconsistentState)
	})

	t.Run("cycle", func(t *testing.T) {
		r := solvedRunner(t)
		r.nodes[1].parent = 2
		_, err := r.reconstruct()
		require.ErrorIs(t, err, ErrInconsistentState)
	})

	t.Run("not finished", func(t *testing.T) {
		r := solvedRunner(t)
		r.status = Running
		_, err := r.reconstruct()
		require.ErrorIs(t, err, ErrInconsistentState)
	})
}

// TestFrontierOrder pops items by (f, h, seq).
func TestFrontierOrder(t *testing.T) {
	g, _ := gridgraph.NewGridGraph(8, 1, gridgraph.DefaultGridOptions())
	opts := DefaultOptions()
	r := newRunner(g, &opts, gridgraph.C(0, 0), gridgraph.C(7, 0))

	r.push(0, 2, 1, -1) // f=3 h=1 seq0
	r.push(1, 1, 2, -1) // f=3 h=2
	r.push(2, 3, 0, -1) // f=3 h=0
	r.push(3, 0, 1, -1) // f=1
	r.push(4, 2, 1, -1) // f=3 h=1 seq4

	// a relaxed entry keeps its insertion sequence
	r.nodes[1].g = 0.5
	r.nodes[1].item.f = 2.5
	heap.Fix(&r.open, r.nodes[1].item.index)

	var got []int
	for r.open.Len() > 0 {
		got = append(got, heap.Pop(&r.open).(*frontierItem).idx)
	}
	require.Equal(t, []int{3, 1, 2, 0, 4}, got)
}
