// Package core defines the Block type and the sentinel errors shared across
// every stage of the schedule block layout pipeline (partition, conflict,
// condense, seed, fixedpoint, lp, milp, aggregate).
//
// Block ownership follows one rule: a *Block is only ever mutated by the
// stage whose job it is, and only for the lifetime of a single
// engine.Engine.Compute call. leftN/rightN/cleftN/crightN hold non-owning
// back-references into the same backing array; they are valid only within
// that call and are truncated (not reallocated) at the start of the next.
package core

import "errors"

// DoubleEPS is the numeric-equality tolerance used across the pipeline for
// fixed-point detection (fixedpoint.Detect) and LP phase coupling (lp).
const DoubleEPS = 1e-8

// BigM is the disjunction-relaxation constant used by the MILP formulation
// (milp.Solve) for non-overlap constraints.
const BigM = 10.0

// MILPTimeLimit bounds the MILP branch-and-bound wall-clock budget.
const MILPTimeLimit = 10 // seconds

// Sentinel errors for invalid input, per the error taxonomy of a schedule
// block layout computation: callers must validate before calling Compute,
// and get a distinct error kind back when they don't.
var (
	// ErrInvalidInterval indicates a block with endMin <= startMin.
	ErrInvalidInterval = errors.New("core: endMin must be greater than startMin")

	// ErrNegativeCount indicates a negative block count was requested.
	ErrNegativeCount = errors.New("core: block count must be non-negative")
)

// Block is one scheduled event on the layout axis.
//
// idx is the stable original input index; it is the key used everywhere
// adjacency and LP variable bookkeeping needs a dense, order-independent
// handle on a block (core.Block.Idx, not a pointer identity).
type Block struct {
	// Idx is the stable original input index, 0..N-1.
	Idx int

	// StartMin, EndMin is the half-open time interval in integer minutes.
	StartMin, EndMin int16

	// Duration caches EndMin-StartMin.
	Duration int16

	// Depth is the 0-based room/column index assigned by partition.Schedule.
	Depth int

	// PathDepth is the total rooms attributed to the cleftN-chain this
	// block lies on, set by seed.Expand.
	PathDepth int

	// Left, Width is the output layout fraction in [0,1].
	Left, Width float64

	// LeftN holds blocks that conflict with this one and have strictly
	// lower Depth. RightN is the mirror: conflicting blocks with strictly
	// higher Depth. Both are non-owning and valid only within one Compute
	// call.
	LeftN, RightN []*Block

	// CLeftN, CRightN are the transitive reduction of LeftN/RightN,
	// computed by condense.Reduce.
	CLeftN, CRightN []*Block

	// IsFixed marks a block whose (Left, Width) has converged; lp.Refine
	// treats fixed blocks as constants.
	IsFixed bool

	// Visited is scratch state shared by the traversal passes in the
	// pipeline (seeding, fixed-point detection, lp component BFS). The
	// stages do not reset it on entry: Reset clears it, seed.ClearVisited
	// clears it after seed.Expand, and lp.Refine re-syncs it to IsFixed
	// between rounds.
	Visited bool
}

// reset clears b back to the state expected at the start of a Compute call,
// retaining slice capacity on LeftN/RightN/CLeftN/CRightN (length -> 0) so
// repeated Compute calls on the same engine do not re-allocate per block.
func (b *Block) reset(idx int, startMin, endMin int16) {
	b.Idx = idx
	b.StartMin = startMin
	b.EndMin = endMin
	b.Duration = endMin - startMin
	b.Depth = 0
	b.PathDepth = 0
	b.Left = 0
	b.Width = 0
	b.IsFixed = false
	b.Visited = false
	b.LeftN = b.LeftN[:0]
	b.RightN = b.RightN[:0]
	b.CLeftN = b.CLeftN[:0]
	b.CRightN = b.CRightN[:0]
}

// Reset is the exported form of reset, used by packages that seed blocks
// outside of engine.Engine (tests, alternative orchestrators).
func (b *Block) Reset(idx int, startMin, endMin int16) { b.reset(idx, startMin, endMin) }

// Conflicts reports whether a and b's intervals overlap under tolerance:
// max(a.StartMin, b.StartMin) + tolerance < min(a.EndMin, b.EndMin).
func Conflicts(a, b *Block, tolerance int16) bool {
	lo := a.StartMin
	if b.StartMin > lo {
		lo = b.StartMin
	}
	hi := a.EndMin
	if b.EndMin < hi {
		hi = b.EndMin
	}
	return lo+tolerance < hi
}
