package lp

import (
	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/solver"
)

// buildModel2 solves LP Model 2 for one connected component: a
// single shared width variable across every block in the component, which
// trivially equalizes widths (there is only one to optimize) at the cost
// of giving up Model 1's per-block flexibility.
func buildModel2(component []*core.Block, idxMap []int) {
	nc := len(component)
	if nc == 0 {
		return
	}

	p := solver.New()
	defer p.Dispose()
	cols := p.AddColumns(nc + 1)
	widthVar := cols[nc]
	for i, b := range component {
		idxMap[b.Idx] = cols[i]
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

	for i, block := range component {
		leftVar := cols[i]

		maxLeftFixed := 0.0
		minRightFixed := 1.0
		for _, v := range block.CLeftN {
			if v.IsFixed {
				if r := v.Left + v.Width; r > maxLeftFixed {
					maxLeftFixed = r
				}
				continue
			}
			// li >= lj + w
			addRow(solver.Lower, 0, 0,
				solver.Triplet{Col: leftVar, Coef: 1},
				solver.Triplet{Col: idxMap[v.Idx], Coef: -1},
				solver.Triplet{Col: widthVar, Coef: -1},
			)
		}
		for _, v := range block.CRightN {
			if v.IsFixed && v.Left < minRightFixed {
				minRightFixed = v.Left
			}
		}

		// li + w <= minRightFixed
		addRow(solver.Upper, 0, minRightFixed,
			solver.Triplet{Col: leftVar, Coef: 1},
			solver.Triplet{Col: widthVar, Coef: 1},
		)

		p.SetColBounds(leftVar, solver.Lower, maxLeftFixed, 0)
		p.SetObjCoef(leftVar, 0)
	}
	p.SetColBounds(widthVar, solver.Double, 0, 1)
	p.SetObjCoef(widthVar, 1)

	p.SetDirection(solver.Maximize)
	p.LoadMatrix(triplets)
	status, err := p.Solve(solver.SolveOptions{})
	if err != nil || status != solver.Optimal {
		return
	}

	w := p.ColumnPrimal(widthVar)
	for i, block := range component {
		block.Left = p.ColumnPrimal(cols[i])
		block.Width = w
	}
}
