// Package seed implements stage S4: the DFS-based greedy width expansion
// that seeds initial Left/Width values before LP refinement, using the
// same explicit-stack traversal style used throughout this module, but
// specialized to the single pass this stage needs — there is no general
// callback surface here, only the one traversal the pipeline runs.
package seed

import (
	"sort"

	"github.com/blockrender/scheduleblock/core"
)

// Expand sorts reordered by Depth descending and, for every unvisited
// block, walks everything reachable from it along CLeftN edges iteratively
// (an explicit stack, not recursion, matching the iterative-reformulation
// note used throughout this module for traversal stages). Because blocks
// are visited deepest first, the walk's start is the deepest block of its
// chain; every block the walk reaches gets PathDepth set to the start's
// Depth+1, after which Left = Depth/PathDepth and Width = 1/PathDepth.
//
// total is the room count from partition.Schedule; it is only used by the
// applyDFS=false branch below (Disable).
func Expand(blocks []core.Block, reordered []*core.Block, total int) {
	sort.Slice(reordered, func(i, j int) bool { return reordered[i].Depth > reordered[j].Depth })

	stack := make([]*core.Block, 0, len(blocks))
	for _, start := range reordered {
		if start.Visited {
			continue
		}
		walkChain(start, start.Depth+1, &stack)
	}

	for i := range blocks {
		b := &blocks[i]
		b.Left = float64(b.Depth) / float64(b.PathDepth)
		b.Width = 1.0 / float64(b.PathDepth)
	}
}

// walkChain marks start and every block reachable via CLeftN edges with
// PathDepth = maxDepth, using stack as scratch (reused across calls by the
// caller to avoid reallocating per component).
func walkChain(start *core.Block, maxDepth int, stack *[]*core.Block) {
	*stack = append((*stack)[:0], start)
	for len(*stack) > 0 {
		n := len(*stack) - 1
		node := (*stack)[n]
		*stack = (*stack)[:n]

		node.Visited = true
		node.PathDepth = maxDepth
		for _, adj := range node.CLeftN {
			if !adj.Visited {
				*stack = append(*stack, adj)
			}
		}
	}
}

// Disable seeds every block with the uniform Left=Depth/total, Width=1/total
// layout, skipping the DFS chain walk (the applyDFS=false branch).
func Disable(blocks []core.Block, total int) {
	for i := range blocks {
		b := &blocks[i]
		b.Left = float64(b.Depth) / float64(total)
		b.Width = 1.0 / float64(total)
	}
}

// ClearVisited resets the Visited scratch flag on every block, required
// after Expand so that fixedpoint.Detect can reuse the same field.
func ClearVisited(blocks []core.Block) {
	for i := range blocks {
		blocks[i].Visited = false
	}
}
