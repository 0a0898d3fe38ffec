package conflict

import (
	"testing"

	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/partition"
)

func setup(intervals [][2]int16, method partition.Method) ([]core.Block, []*core.Block, *core.Matrix) {
	blocks := make([]core.Block, len(intervals))
	reordered := make([]*core.Block, len(intervals))
	for i, iv := range intervals {
		blocks[i].Reset(i, iv[0], iv[1])
	}
	partition.Schedule(blocks, reordered, method, 0)
	matrix := core.NewMatrix(len(blocks))
	return blocks, reordered, matrix
}

func TestBuild_Staircase(t *testing.T) {
	// {0,60},{30,90},{60,120}: middle conflicts with both ends.
	blocks, reordered, matrix := setup([][2]int16{{0, 60}, {30, 90}, {60, 120}}, partition.Greedy)
	Build(reordered, matrix, 0)

	first, middle, third := &blocks[0], &blocks[1], &blocks[2]
	if len(first.RightN) == 0 && len(first.LeftN) == 0 {
		t.Fatalf("expected first block to have a conflict neighbor")
	}
	if len(third.RightN) == 0 && len(third.LeftN) == 0 {
		t.Fatalf("expected third block to have a conflict neighbor")
	}
	// the two ends never conflict with each other directly
	for _, v := range first.LeftN {
		if v == third || v == &blocks[2] {
			t.Fatalf("first and third should not directly conflict")
		}
	}
	_ = middle
}

func TestBuild_MatrixIsConsistentWithAdjacency(t *testing.T) {
	blocks, reordered, matrix := setup([][2]int16{{0, 60}, {30, 90}}, partition.Greedy)
	Build(reordered, matrix, 0)

	a, b := &blocks[0], &blocks[1]
	var lower, higher *core.Block
	if a.Depth < b.Depth {
		lower, higher = a, b
	} else {
		lower, higher = b, a
	}
	if !matrix.At(higher.Idx, lower.Idx) {
		t.Fatalf("expected matrix[higher][lower] == true")
	}
	found := false
	for _, v := range higher.LeftN {
		if v == lower {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected lower block present in higher block's LeftN")
	}
}

func TestBuild_NoConflictBeyondTolerance(t *testing.T) {
	blocks, reordered, matrix := setup([][2]int16{{0, 60}, {60, 120}}, partition.Greedy)
	Build(reordered, matrix, 0)
	if len(blocks[0].LeftN) != 0 || len(blocks[0].RightN) != 0 {
		t.Fatalf("touching, non-overlapping blocks should not conflict")
	}
}
