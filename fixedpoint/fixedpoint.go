// Package fixedpoint implements stage S5: marking blocks "numerically
// fixed" once their (Left, Width) has converged, by propagating fixedness
// from the frame boundary inward through chains of tight abutments.
//
// The recursive DFSFindFixedNumerical of the original algorithm is
// implemented here with an explicit stack rather than recursion, per the
// design note that recommends this for deep conflict chains (stack
// overflow risk). The fold over cleftN neighbors is written so every
// neighbor is visited even once one has already set flag=true — an early
// return there would silently leave transitive predecessors unfixed.
package fixedpoint

import (
	"math"

	"github.com/blockrender/scheduleblock/core"
)

// frame is one level of the explicit DFS stack: the block being decided,
// how far through its CLeftN children we've walked, and the running
// fixed-or accumulated from children processed so far.
type frame struct {
	block *core.Block
	idx   int
	flag  bool
}

// Detect runs the fixed-detection walk rooted at start and returns whether
// start ended up fixed. It mutates start.IsFixed (and that of every block
// it recurses into) as a side effect, matching the original's contract.
//
// A block is fixed outright when its Left is within core.DoubleEPS of 0.
// Otherwise it is fixed iff at least one CLeftN neighbor abuts it exactly
// (|start.Left - (neighbor.Left+neighbor.Width)| < eps) and that neighbor
// is itself fixed (recursively).
func Detect(start *core.Block) bool {
	start.Visited = true
	stack := []*frame{{block: start}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.idx == 0 && math.Abs(top.block.Left) < core.DoubleEPS {
			top.block.IsFixed = true
			finish(&stack)
			continue
		}

		children := top.block.CLeftN
		if top.idx >= len(children) {
			top.block.IsFixed = top.flag
			finish(&stack)
			continue
		}

		adj := children[top.idx]
		top.idx++
		if !abuts(top.block, adj) {
			continue
		}
		if adj.Visited {
			top.flag = top.flag || adj.IsFixed
			continue
		}
		adj.Visited = true
		stack = append(stack, &frame{block: adj})
	}

	return start.IsFixed
}

// finish pops the top frame and, if a parent frame remains, folds the
// popped block's IsFixed result into the parent's running flag — this is
// the non-recursive equivalent of "flag = DFSFindFixedNumerical(adj) ||
// flag" unwinding back up the call stack.
func finish(stack *[]*frame) {
	n := len(*stack)
	done := (*stack)[n-1]
	*stack = (*stack)[:n-1]
	if len(*stack) > 0 {
		parent := (*stack)[len(*stack)-1]
		parent.flag = parent.flag || done.block.IsFixed
	}
}

// abuts reports whether b's left edge sits exactly at adj's right edge,
// within core.DoubleEPS.
func abuts(b, adj *core.Block) bool {
	d := b.Left - (adj.Left + adj.Width)
	if d < 0 {
		d = -d
	}
	return d < core.DoubleEPS
}
