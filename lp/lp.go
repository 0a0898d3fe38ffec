// Package lp implements stage S6: the iterative LP refinement loop that
// tightens the S4-seeded (Left, Width) values towards the layout's
// objective (maximize total width, then equalize it) without ever
// re-opening a block that fixedpoint.Detect has already locked.
//
// Grounded on the original algorithm's BFS-per-component refinement loop
// (original_source's Renderer.cpp compute()): each connected component of
// the condensed conflict graph (cleftN/crightN) that still has an
// unfixed block gets its own small LP, solved independently, after which
// freshly-abutting blocks are re-checked for fixedness and the loop
// repeats until no new block becomes fixed.
package lp

import (
	"math"

	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/fixedpoint"
)

// Model selects which of the two LP formulations buildModel1/buildModel2
// Refine uses for every component.
type Model int

const (
	// Model1 gives every block its own width variable, then minimizes the
	// sum of absolute deviations from the mean width as a second phase.
	Model1 Model = 1
	// Model2 shares a single width variable across the whole component,
	// trivially equalizing widths at the cost of Model1's per-block width
	// freedom.
	Model2 Model = 2
)

type buildFunc func(component []*core.Block, idxMap []int)

// Refine runs up to iters rounds of: solve one LP per unfixed connected
// component, re-check fixedness, stop early once a round fixes no new
// block. idxMap must be longer than the largest core.Block.Idx in blocks
// (core.Buffers.IdxMap is the intended backing array); buf is BFS
// scratch space reused across components (core.Buffers.BlockBuffer).
func Refine(blocks []core.Block, idxMap []int, buf []*core.Block, model Model, iters int) {
	build := buildFunc(buildModel1)
	if model == Model2 {
		build = buildModel2
	}

	for i := range blocks {
		b := &blocks[i]
		if b.Visited {
			continue
		}
		if right := b.Left + b.Width; math.Abs(right-1.0) < core.DoubleEPS {
			fixedpoint.Detect(b)
		}
	}
	prevFixed := syncVisitedToFixed(blocks)

	for iter := 0; iter < iters; iter++ {
		for i := range blocks {
			b := &blocks[i]
			if b.Visited {
				continue
			}
			buf = bfsComponent(b, buf)
			build(buf, idxMap)
		}

		for i := range blocks {
			blocks[i].Visited = blocks[i].IsFixed
		}
		for i := range blocks {
			b := &blocks[i]
			if b.Visited {
				continue
			}
			right := b.Left + b.Width
			if math.Abs(right-1.0) < core.DoubleEPS {
				fixedpoint.Detect(b)
				continue
			}
			for _, n := range b.RightN {
				if n.IsFixed && math.Abs(right-n.Left) < core.DoubleEPS {
					fixedpoint.Detect(b)
					break
				}
			}
		}

		fixedCount := syncVisitedToFixed(blocks)
		if fixedCount == prevFixed {
			break
		}
		prevFixed = fixedCount
	}
}

// syncVisitedToFixed sets every block's Visited to its current IsFixed
// (the pipeline's convention for "already solved, skip in future rounds")
// and returns the resulting fixed count.
func syncVisitedToFixed(blocks []core.Block) int {
	count := 0
	for i := range blocks {
		blocks[i].Visited = blocks[i].IsFixed
		if blocks[i].Visited {
			count++
		}
	}
	return count
}

// bfsComponent gathers start and every block transitively reachable from
// it via CLeftN/CRightN edges into buf (reset to length 0 first, capacity
// reused across calls), marking each Visited as it is enqueued so a
// fixed (already-Visited) neighbor never joins the component.
func bfsComponent(start *core.Block, buf []*core.Block) []*core.Block {
	buf = append(buf[:0], start)
	start.Visited = true
	for i := 0; i < len(buf); i++ {
		node := buf[i]
		for _, n := range node.CLeftN {
			if !n.Visited {
				n.Visited = true
				buf = append(buf, n)
			}
		}
		for _, n := range node.CRightN {
			if !n.Visited {
				n.Visited = true
				buf = append(buf, n)
			}
		}
	}
	return buf
}
