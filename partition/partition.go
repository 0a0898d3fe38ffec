// Package partition implements stage S1 of the schedule block layout
// pipeline: assigning each block a room (Depth) so that conflicting blocks
// never share a room, using the fewest rooms possible.
package partition

import (
	"container/heap"
	"sort"

	"github.com/blockrender/scheduleblock/core"
)

// Method selects which interval-partitioning algorithm Schedule runs.
type Method int

const (
	// Greedy is the O(n^2) method that, among rooms free by isTolerance,
	// always assigns the lowest-index room (Renderer's intervalScheduling).
	Greedy Method = 1

	// PriorityQueue is the classical O(n log n) method using a min-heap of
	// room end times (Renderer's intervalScheduling2).
	PriorityQueue Method = 2
)

// Schedule sorts reordered by start time (ties broken by longer duration
// first) and assigns each block's Depth in [0, total-1], where total is the
// minimum number of rooms needed so that no two conflicting blocks share a
// room. blocks and reordered must have the same length; Schedule fills
// reordered with pointers into blocks and then sorts it (only the pointer
// slice is permuted, never the backing Block values).
//
// isTolerance shifts the "room is free" test, in opposite directions for
// the two methods: under Greedy a room is reusable once its last block's
// EndMin <= candidate.StartMin + isTolerance; under PriorityQueue only
// once EndMin + isTolerance <= candidate.StartMin.
//
// If len(blocks) == 0, Schedule returns 0 without touching reordered.
func Schedule(blocks []core.Block, reordered []*core.Block, method Method, isTolerance int16) int {
	n := len(blocks)
	if n == 0 {
		return 0
	}
	for i := range blocks {
		reordered[i] = &blocks[i]
	}
	sortByStartTime(reordered)

	if method == PriorityQueue {
		return scheduleByHeap(reordered, isTolerance)
	}
	return scheduleGreedy(reordered, isTolerance)
}

func sortByStartTime(reordered []*core.Block) {
	sort.Slice(reordered, func(i, j int) bool {
		bi, bj := reordered[i], reordered[j]
		if bi.StartMin != bj.StartMin {
			return bi.StartMin < bj.StartMin
		}
		// ties: longer events first
		return bi.Duration > bj.Duration
	})
}

// scheduleGreedy implements Method Greedy: among rooms whose last block
// ended early enough, always reuse the room with the smallest Depth index,
// opening a new room only when none qualify. This is worst case O(n^2) but
// biases room indices low, which callers value for stable-looking layouts.
func scheduleGreedy(reordered []*core.Block, isTolerance int16) int {
	occupied := make([]*core.Block, 1, len(reordered))
	occupied[0] = reordered[0]
	reordered[0].Depth = 0
	numRooms := 1

	for i := 1; i < len(reordered); i++ {
		block := reordered[i]
		bestSlot := -1
		bestDepth := int(^uint(0) >> 1) // max int
		for k, prev := range occupied {
			if prev.EndMin <= block.StartMin+isTolerance && prev.Depth < bestDepth {
				bestDepth = prev.Depth
				bestSlot = k
			}
		}
		if bestSlot == -1 {
			block.Depth = numRooms
			numRooms++
			occupied = append(occupied, block)
		} else {
			block.Depth = occupied[bestSlot].Depth
			occupied[bestSlot] = block
		}
	}
	return numRooms
}

// room is one entry of the scheduleByHeap min-heap: the end time of the
// room's most recently assigned block, and that block's Depth.
type room struct {
	end   int16
	depth int
}

type roomHeap []room

func (h roomHeap) Len() int { return len(h) }
func (h roomHeap) Less(i, j int) bool {
	if h[i].end != h[j].end {
		return h[i].end < h[j].end
	}
	return h[i].depth < h[j].depth
}
func (h roomHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *roomHeap) Push(x interface{}) { *h = append(*h, x.(room)) }
func (h *roomHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// scheduleByHeap implements Method PriorityQueue: the classical O(n log n)
// interval partitioning via a min-heap keyed by room end time.
func scheduleByHeap(reordered []*core.Block, isTolerance int16) int {
	h := &roomHeap{}
	heap.Init(h)

	first := reordered[0]
	first.Depth = 0
	heap.Push(h, room{end: first.EndMin, depth: 0})

	numRooms := 1
	for i := 1; i < len(reordered); i++ {
		block := reordered[i]
		top := (*h)[0]
		if top.end+isTolerance > block.StartMin {
			block.Depth = numRooms
			numRooms++
		} else {
			block.Depth = top.depth
			heap.Pop(h)
		}
		heap.Push(h, room{end: block.EndMin, depth: block.Depth})
	}
	return numRooms
}
