package condense

import (
	"testing"

	"github.com/blockrender/scheduleblock/conflict"
	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/partition"
)

func buildGraph(intervals [][2]int16) ([]core.Block, *core.Matrix) {
	blocks := make([]core.Block, len(intervals))
	reordered := make([]*core.Block, len(intervals))
	for i, iv := range intervals {
		blocks[i].Reset(i, iv[0], iv[1])
	}
	partition.Schedule(blocks, reordered, partition.Greedy, 0)
	matrix := core.NewMatrix(len(blocks))
	conflict.Build(reordered, matrix, 0)
	return blocks, matrix
}

// TestReduce_CLeftNIsSubsetOfLeftN checks that the transitive reduction
// never introduces an edge absent from the full conflict graph: cleftN ⊆ leftN.
func TestReduce_CLeftNIsSubsetOfLeftN(t *testing.T) {
	blocks, matrix := buildGraph([][2]int16{{0, 30}, {10, 40}, {20, 50}, {5, 45}})
	Reduce(blocks, matrix)

	for i := range blocks {
		b := &blocks[i]
		for _, v := range b.CLeftN {
			found := false
			for _, w := range b.LeftN {
				if w == v {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("block %d: CLeftN contains %v not present in LeftN", b.Idx, v.Idx)
			}
		}
	}
}

// TestReduce_ChainOfFourCollapsesToAdjacentEdgesOnly exercises a
// four-block pairwise-conflict clique: every pair overlaps, forcing a
// total order on Depth, and the transitive reduction of a total order
// keeps only the Hasse-diagram edges between adjacent depths.
func TestReduce_ChainOfFourCollapsesToAdjacentEdgesOnly(t *testing.T) {
	blocks, matrix := buildGraph([][2]int16{{0, 60}, {15, 75}, {30, 90}, {45, 105}})
	Reduce(blocks, matrix)

	byDepth := make(map[int]*core.Block, 4)
	for i := range blocks {
		byDepth[blocks[i].Depth] = &blocks[i]
	}
	deepest := byDepth[3]
	if len(deepest.LeftN) != 3 {
		t.Fatalf("expected the 4-clique's deepest block to conflict with all 3 others, got %d", len(deepest.LeftN))
	}
	if len(deepest.CLeftN) != 1 || deepest.CLeftN[0].Depth != 2 {
		t.Fatalf("expected transitive reduction to keep only the depth-2 edge, got %d edges", len(deepest.CLeftN))
	}
}

func TestReduce_EmptyLeftNProducesEmptyCLeftN(t *testing.T) {
	blocks, matrix := buildGraph([][2]int16{{0, 60}})
	Reduce(blocks, matrix)
	if len(blocks[0].CLeftN) != 0 || len(blocks[0].CRightN) != 0 {
		t.Fatalf("single block should have no conflict edges at all")
	}
}
