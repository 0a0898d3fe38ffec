package seed

import (
	"math"
	"testing"

	"github.com/blockrender/scheduleblock/conflict"
	"github.com/blockrender/scheduleblock/condense"
	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/partition"
)

func buildAndCondense(intervals [][2]int16) ([]core.Block, []*core.Block, int) {
	blocks := make([]core.Block, len(intervals))
	reordered := make([]*core.Block, len(intervals))
	for i, iv := range intervals {
		blocks[i].Reset(i, iv[0], iv[1])
	}
	total := partition.Schedule(blocks, reordered, partition.Greedy, 0)
	matrix := core.NewMatrix(len(blocks))
	conflict.Build(reordered, matrix, 0)
	condense.Reduce(blocks, matrix)
	return blocks, reordered, total
}

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestExpand_SingleBlockFullWidth(t *testing.T) {
	blocks, reordered, total := buildAndCondense([][2]int16{{0, 60}})
	Expand(blocks, reordered, total)
	if !approxEqual(blocks[0].Left, 0) || !approxEqual(blocks[0].Width, 1) {
		t.Fatalf("expected left=0 width=1, got left=%v width=%v", blocks[0].Left, blocks[0].Width)
	}
}

func TestExpand_TwoOverlappingHalves(t *testing.T) {
	blocks, reordered, total := buildAndCondense([][2]int16{{0, 60}, {30, 90}})
	Expand(blocks, reordered, total)
	for i := range blocks {
		if !approxEqual(blocks[i].Width, 0.5) {
			t.Errorf("block %d: expected width 0.5, got %v", i, blocks[i].Width)
		}
		if blocks[i].Left+blocks[i].Width > 1+1e-9 {
			t.Errorf("block %d: left+width exceeds 1", i)
		}
	}
}

func TestExpand_WidthLowerBoundUnderApplyDFS(t *testing.T) {
	// DFS seeding must never leave a block narrower than the uniform
	// Disable fallback would: width >= 1/total for every block.
	blocks, reordered, total := buildAndCondense([][2]int16{{0, 60}, {15, 75}, {30, 90}, {45, 105}})
	Expand(blocks, reordered, total)
	for i := range blocks {
		if blocks[i].Width < 1.0/float64(total)-1e-9 {
			t.Errorf("block %d: width %v below 1/total=%v", i, blocks[i].Width, 1.0/float64(total))
		}
	}
}

func TestDisable_UniformWidth(t *testing.T) {
	blocks, _, total := buildAndCondense([][2]int16{{0, 60}, {30, 90}, {60, 120}})
	Disable(blocks, total)
	for i := range blocks {
		if !approxEqual(blocks[i].Width, 1.0/float64(total)) {
			t.Errorf("block %d: expected uniform width %v, got %v", i, 1.0/float64(total), blocks[i].Width)
		}
		if !approxEqual(blocks[i].Left, float64(blocks[i].Depth)/float64(total)) {
			t.Errorf("block %d: expected left depth/total", i)
		}
	}
}

func TestClearVisited(t *testing.T) {
	blocks, reordered, total := buildAndCondense([][2]int16{{0, 60}, {30, 90}})
	Expand(blocks, reordered, total)
	ClearVisited(blocks)
	for i := range blocks {
		if blocks[i].Visited {
			t.Errorf("block %d: expected Visited cleared", i)
		}
	}
}
