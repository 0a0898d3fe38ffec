// Package condense implements stage S3: the transitive reduction of the
// conflict graph built by conflict.Build. The condensed adjacency
// (CLeftN/CRightN) preserves the Hasse diagram of the "left-of" partial
// order and is what keeps the S6 LP constraint count near-linear in the
// adjacency size rather than quadratic.
package condense

import "github.com/blockrender/scheduleblock/core"

// Reduce computes CLeftN and CRightN for every block in blocks.
//
// v is kept in b.CLeftN iff no other w in b.LeftN has v in w's LeftN too —
// i.e. v is not reachable from b via any other direct left-neighbor, so
// the edge b->v is not implied by a longer path through LeftN and must be
// kept in the reduction. CRightN is the mirror on the right side.
//
// Complexity is O(sum of |LeftN|^2 + |RightN|^2) across all blocks, using
// matrix for O(1) reachability checks.
func Reduce(blocks []core.Block, matrix *core.Matrix) {
	for i := range blocks {
		block := &blocks[i]
		for _, v := range block.LeftN {
			if !reachableFromAnyOther(block.LeftN, v, matrix) {
				block.CLeftN = append(block.CLeftN, v)
			}
		}
		for _, v := range block.RightN {
			if !reachableFromAnyOtherRight(block.RightN, v, matrix) {
				block.CRightN = append(block.CRightN, v)
			}
		}
	}
}

// reachableFromAnyOther reports whether v is in the LeftN of some other
// member w of leftN (matrix.At(w.Idx, v.Idx) == true means "v is left of
// w", i.e. v is reachable from w in one hop).
func reachableFromAnyOther(leftN []*core.Block, v *core.Block, matrix *core.Matrix) bool {
	for _, w := range leftN {
		if w == v {
			continue
		}
		if matrix.At(w.Idx, v.Idx) {
			return true
		}
	}
	return false
}

// reachableFromAnyOtherRight is the mirror of reachableFromAnyOther for
// RightN: v is reachable from some other member w of rightN when v is
// itself in w's RightN, i.e. matrix.At(v.Idx, w.Idx).
func reachableFromAnyOtherRight(rightN []*core.Block, v *core.Block, matrix *core.Matrix) bool {
	for _, w := range rightN {
		if w == v {
			continue
		}
		if matrix.At(v.Idx, w.Idx) {
			return true
		}
	}
	return false
}
