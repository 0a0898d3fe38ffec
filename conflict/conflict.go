// Package conflict implements stage S2: building the left/right adjacency
// lists and the boolean reachability matrix for every pair of blocks whose
// time intervals conflict, using a dense adjacency-matrix representation
// (O(1) lookups, O(V^2) memory, acceptable because N is a per-render event
// count).
package conflict

import "github.com/blockrender/scheduleblock/core"

// Build assumes reordered is already sorted by StartMin (partition.Schedule
// leaves it that way) and scans each pair once: for block i, it walks j > i
// until reordered[j].StartMin+dfsTolerance >= reordered[i].EndMin, at which
// point no further j can conflict with i either (the list is start-sorted).
//
// For every conflicting pair, the lower-Depth block is recorded in the
// higher-Depth block's LeftN (and vice versa for RightN), and
// matrix.Set(higher.Idx, lower.Idx) is marked — matrix[i][j] == true means
// "j is left of i", matching core.Matrix's documented convention.
func Build(reordered []*core.Block, matrix *core.Matrix, dfsTolerance int16) {
	n := len(reordered)
	for i := 0; i < n; i++ {
		bi := reordered[i]
		for j := i + 1; j < n; j++ {
			bj := reordered[j]
			if bj.StartMin+dfsTolerance >= bi.EndMin {
				break
			}
			link(bi, bj, matrix)
		}
	}
}

// link records the conflict between bi and bj, whichever has the lower
// Depth goes into the other's LeftN.
func link(bi, bj *core.Block, matrix *core.Matrix) {
	if bi.Depth < bj.Depth {
		matrix.Set(bj.Idx, bi.Idx)
		bj.LeftN = append(bj.LeftN, bi)
		bi.RightN = append(bi.RightN, bj)
	} else {
		matrix.Set(bi.Idx, bj.Idx)
		bj.RightN = append(bj.RightN, bi)
		bi.LeftN = append(bi.LeftN, bj)
	}
}
