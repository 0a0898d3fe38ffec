// Package milp implements stage S7: the big-M mixed-integer alternative to
// the S2-S6 pipeline. Where lp.Refine only ever tightens widths within a
// room assignment that partition.Schedule already fixed, Solve lets a
// binary variable per conflicting pair choose which block sits left of the
// other, searching a strictly larger feasible region at the cost of much
// higher solve time (bounded by a wall-clock budget).
package milp

import (
	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/solver"
)

// Solve builds and solves the MILP formulation directly over reordered
// (sorted by start time, as partition.Schedule leaves it) without
// consulting the conflict/condense graph: every conflicting pair gets a
// fresh disjunction, since the binary assignment variable lets the solver
// choose which block goes left instead of relying on a precomputed
// room-based direction the way lp.Refine's constraints do.
//
// total seeds every block's width lower bound at 1/total;
// dfsTolerance is the same conflict tolerance used throughout the
// pipeline. timeLimitSeconds bounds the branch-and-bound search
// (core.MILPTimeLimit in engine.Engine); on expiry the best incumbent
// found so far is still applied. Solve reports whether it found any
// feasible assignment at all; on false, reordered is left untouched and
// the caller is expected to fall back to the S4 seed.
func Solve(reordered []*core.Block, total int, dfsTolerance int16, timeLimitSeconds float64) bool {
	n := len(reordered)
	if n == 0 {
		return true
	}

	p := solver.New()
	defer p.Dispose()
	leftCols := make([]int, n)
	widthCols := make([]int, n)
	structural := p.AddColumns(n * 2)
	for i := 0; i < n; i++ {
		leftCols[i] = structural[2*i]
		widthCols[i] = structural[2*i+1]
	}

	var triplets []solver.Triplet
	addRow := func(kind solver.BoundKind, lo, hi float64, entries ...solver.Triplet) {
		row := p.AddRows(1)[0]
		p.SetRowBounds(row, kind, lo, hi)
		for _, e := range entries {
			e.Row = row
			triplets = append(triplets, e)
		}
	}

	for i := 0; i < n; i++ {
		bi := reordered[i]
		for j := i + 1; j < n; j++ {
			bj := reordered[j]
			if bj.StartMin+dfsTolerance >= bi.EndMin {
				break
			}
			yCol := p.AddColumns(1)[0]
			p.SetColKind(yCol, solver.Binary)
			p.SetObjCoef(yCol, 0)

			// li + wi - lj - M*y <= 0  (bi left of bj when y=0)
			addRow(solver.Upper, 0, 0,
				solver.Triplet{Col: leftCols[i], Coef: 1},
				solver.Triplet{Col: widthCols[i], Coef: 1},
				solver.Triplet{Col: leftCols[j], Coef: -1},
				solver.Triplet{Col: yCol, Coef: -core.BigM},
			)
			// lj + wj - li + M*y <= M  (bj left of bi when y=1)
			addRow(solver.Upper, 0, core.BigM,
				solver.Triplet{Col: leftCols[j], Coef: 1},
				solver.Triplet{Col: widthCols[j], Coef: 1},
				solver.Triplet{Col: leftCols[i], Coef: -1},
				solver.Triplet{Col: yCol, Coef: core.BigM},
			)
		}

		// li + wi <= 1
		addRow(solver.Upper, 0, 1,
			solver.Triplet{Col: leftCols[i], Coef: 1},
			solver.Triplet{Col: widthCols[i], Coef: 1},
		)
		p.SetColBounds(leftCols[i], solver.Double, 0, 1)
		p.SetObjCoef(leftCols[i], 0)
		p.SetColBounds(widthCols[i], solver.Double, 1.0/float64(total), 1)
		p.SetObjCoef(widthCols[i], 1)
	}

	p.SetDirection(solver.Maximize)
	p.LoadMatrix(triplets)
	status, err := p.Solve(solver.SolveOptions{TimeLimitSeconds: timeLimitSeconds})
	if err != nil || (status != solver.Optimal && status != solver.TimeLimit) {
		return false
	}
	if status == solver.TimeLimit && p.ColumnPrimal(widthCols[0]) <= 0 {
		return false // branch-and-bound ran out of time before finding any incumbent
	}

	for i := 0; i < n; i++ {
		reordered[i].Left = p.ColumnPrimal(leftCols[i])
		reordered[i].Width = p.ColumnPrimal(widthCols[i])
	}
	return true
}
