// Package engine implements the top-level orchestration of the schedule
// block layout pipeline: one Engine owns every buffer the S1-S8 pipeline
// needs and exposes the four calls a caller makes (SetOptions, Compute,
// GetSum, GetSumSq), growing its buffers monotonically across calls the
// way the original's realloc-based blocks/blocksReordered/matrix arrays
// do.
package engine

import (
	"time"

	"github.com/blockrender/scheduleblock/aggregate"
	"github.com/blockrender/scheduleblock/conflict"
	"github.com/blockrender/scheduleblock/condense"
	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/lp"
	"github.com/blockrender/scheduleblock/milp"
	"github.com/blockrender/scheduleblock/partition"
	"github.com/blockrender/scheduleblock/seed"
	"github.com/blockrender/scheduleblock/telemetry"
)

// Input is one event to lay out: a half-open interval in integer minutes.
type Input struct {
	StartMin, EndMin int16
}

// Options is the Go mapping of the original setOptions parameters. The
// zero value is not a valid Options — use DefaultOptions.
type Options struct {
	// IsTolerance widens partition.Schedule's room-reuse test.
	IsTolerance int16
	// Method selects partition.Greedy or partition.PriorityQueue.
	Method partition.Method
	// ApplyDFS selects seed.Expand (true) over seed.Disable (false) for
	// stage S4.
	ApplyDFS bool
	// DFSTolerance widens conflict.Build's (and, under MILP, the
	// pairwise disjunction's) overlap test.
	DFSTolerance int16
	// LPIters bounds stage S6's refinement rounds.
	LPIters int
	// LPModel selects lp.Model1 or lp.Model2.
	LPModel lp.Model
	// MILP runs stage S7 instead of S2-S6 entirely.
	MILP bool
	// MILPTimeLimitSeconds bounds stage S7's branch-and-bound search.
	MILPTimeLimitSeconds float64
}

// DefaultOptions matches the original algorithm's module-level defaults:
// greedy partitioning, DFS seeding enabled, 100 LP iterations, Model 1, no
// MILP.
func DefaultOptions() Options {
	return Options{
		Method:               partition.Greedy,
		ApplyDFS:             true,
		LPIters:              100,
		LPModel:              lp.Model1,
		MILPTimeLimitSeconds: core.MILPTimeLimit,
	}
}

// Engine runs the schedule block layout pipeline. It is not safe for
// concurrent use: one Engine must never have two Compute calls in flight
// at once, a constraint this type relies on rather than enforces with a
// lock.
type Engine struct {
	opts Options
	buf  core.Buffers
	last aggregate.Result

	// rec is optional. When set via SetRecorder, every stage Compute
	// runs reports its wall-clock time through it.
	rec *telemetry.Recorder
}

// New constructs an Engine with DefaultOptions.
func New() *Engine { return &Engine{opts: DefaultOptions()} }

// SetOptions replaces the Engine's options for every subsequent Compute
// call.
func (e *Engine) SetOptions(opts Options) { e.opts = opts }

// SetRecorder attaches a telemetry.Recorder that every subsequent Compute
// call reports per-stage durations to. A nil Recorder disables reporting.
func (e *Engine) SetRecorder(rec *telemetry.Recorder) { e.rec = rec }

// observe runs fn and, if a Recorder is attached, reports its wall-clock
// duration under stage.
func (e *Engine) observe(stage string, fn func()) {
	if e.rec == nil {
		fn()
		return
	}
	start := time.Now()
	fn()
	e.rec.Observe(stage, time.Since(start).Seconds())
}

// Compute runs the full pipeline over inputs and returns the resulting
// blocks (owned by the Engine; valid until the next Compute call).
//
// It rejects any input whose EndMin does not strictly exceed its StartMin
// with core.ErrInvalidInterval, checked before any buffer is mutated so a
// rejected call leaves the Engine's prior result intact.
func (e *Engine) Compute(inputs []Input) ([]core.Block, error) {
	for _, in := range inputs {
		if in.EndMin <= in.StartMin {
			return nil, core.ErrInvalidInterval
		}
	}

	n := len(inputs)
	e.buf.Grow(n)
	for i, in := range inputs {
		e.buf.Blocks[i].Reset(i, in.StartMin, in.EndMin)
	}

	var total int
	e.observe(telemetry.StagePartition, func() {
		total = partition.Schedule(e.buf.Blocks, e.buf.BlocksReordered, e.opts.Method, e.opts.IsTolerance)
	})

	if e.opts.MILP {
		var ok bool
		e.observe(telemetry.StageMILP, func() {
			ok = milp.Solve(e.buf.BlocksReordered, total, e.opts.DFSTolerance, e.opts.MILPTimeLimitSeconds)
		})
		if !ok {
			e.observe(telemetry.StageSeed, func() {
				seed.Disable(e.buf.Blocks, total) // no incumbent within budget, fall back to the S4 seed
			})
		}
		return e.finish(), nil
	}

	if total <= 1 {
		e.observe(telemetry.StageSeed, func() { seed.Disable(e.buf.Blocks, total) })
		return e.finish(), nil
	}

	e.observe(telemetry.StageConflict, func() {
		conflict.Build(e.buf.BlocksReordered, e.buf.Matrix, e.opts.DFSTolerance)
	})
	e.observe(telemetry.StageCondense, func() { condense.Reduce(e.buf.Blocks, e.buf.Matrix) })

	e.observe(telemetry.StageSeed, func() {
		if e.opts.ApplyDFS {
			seed.Expand(e.buf.Blocks, e.buf.BlocksReordered, total)
			seed.ClearVisited(e.buf.Blocks)
		} else {
			seed.Disable(e.buf.Blocks, total)
		}
	})

	e.observe(telemetry.StageLP, func() {
		lp.Refine(e.buf.Blocks, e.buf.IdxMap, e.buf.BlockBuffer, e.opts.LPModel, e.opts.LPIters)
	})

	return e.finish(), nil
}

// finish computes and caches this call's aggregate (the original's
// computeResult), the last step on every exit path of the original
// compute(), then returns the block slice.
func (e *Engine) finish() []core.Block {
	e.observe(telemetry.StageAggregate, func() { e.last = aggregate.Compute(e.buf.Blocks) })
	return e.buf.Blocks
}

// GetSum returns the sum of percentage widths from the last Compute call.
func (e *Engine) GetSum() float64 { return e.last.Sum }

// GetSumSq returns the sum of squared percentage widths from the last
// Compute call.
func (e *Engine) GetSumSq() float64 { return e.last.SumSq }
