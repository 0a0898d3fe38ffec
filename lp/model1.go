package lp

import (
	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/solver"
)

// buildModel1 solves LP Model 1 for one connected component: a
// per-block left/width variable pair, maximized for total width in phase
// one, then re-solved in the same solver.Problem (more columns and rows
// appended, never a fresh one — mirroring the original's single glp_prob
// reused across glp_set_obj_dir calls) to minimize the sum of absolute
// deviations from the mean width without giving up any of that total.
func buildModel1(component []*core.Block, idxMap []int) {
	nc := len(component)
	if nc == 0 {
		return
	}

	p := solver.New()
	defer p.Dispose()
	cols := p.AddColumns(nc * 2)
	for i, b := range component {
		idxMap[b.Idx] = cols[2*i]
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
		leftVar := cols[2*i]
		widthVar := cols[2*i+1]

		maxLeftFixed := 0.0
		minRightFixed := 1.0
		for _, v := range block.CLeftN {
			if v.IsFixed {
				if r := v.Left + v.Width; r > maxLeftFixed {
					maxLeftFixed = r
				}
				continue
			}
			// li >= lj + wj
			addRow(solver.Lower, 0, 0,
				solver.Triplet{Col: leftVar, Coef: 1},
				solver.Triplet{Col: idxMap[v.Idx], Coef: -1},
				solver.Triplet{Col: idxMap[v.Idx] + 1, Coef: -1},
			)
		}
		for _, v := range block.CRightN {
			if v.IsFixed && v.Left < minRightFixed {
				minRightFixed = v.Left
			}
		}

		// li + wi <= minRightFixed
		addRow(solver.Upper, 0, minRightFixed,
			solver.Triplet{Col: leftVar, Coef: 1},
			solver.Triplet{Col: widthVar, Coef: 1},
		)

		p.SetColBounds(leftVar, solver.Lower, maxLeftFixed, 0)
		p.SetColBounds(widthVar, solver.Lower, block.Width, 0)
		p.SetObjCoef(leftVar, 0)
		p.SetObjCoef(widthVar, 1)
	}

	p.SetDirection(solver.Maximize)
	p.LoadMatrix(triplets)
	status, err := p.Solve(solver.SolveOptions{})
	if err != nil || status != solver.Optimal {
		return
	}
	sumWidth := p.ObjectiveValue()
	phase1Left := make([]float64, nc)
	phase1Width := make([]float64, nc)
	for i := range component {
		phase1Left[i] = p.ColumnPrimal(cols[2*i])
		phase1Width[i] = p.ColumnPrimal(cols[2*i+1])
	}

	// phase 2: minimize sum|w_i - mean| while keeping sum w_i at sumWidth.
	meanWidth := sumWidth / float64(nc)
	tCols := p.AddColumns(nc)
	for i := range component {
		widthVar := cols[2*i+1]
		tVar := tCols[i]

		// ti >= meanWidth - wi
		addRow(solver.Lower, meanWidth, 0,
			solver.Triplet{Col: tVar, Coef: 1},
			solver.Triplet{Col: widthVar, Coef: 1},
		)
		// ti >= wi - meanWidth
		addRow(solver.Lower, -meanWidth, 0,
			solver.Triplet{Col: tVar, Coef: 1},
			solver.Triplet{Col: widthVar, Coef: -1},
		)
		p.SetObjCoef(widthVar, 0)
		p.SetObjCoef(tVar, 1)
	}
	sumEntries := make([]solver.Triplet, nc)
	for i := range component {
		sumEntries[i] = solver.Triplet{Col: cols[2*i+1], Coef: 1}
	}
	addRow(solver.Lower, sumWidth-core.DoubleEPS, 0, sumEntries...)

	p.SetDirection(solver.Minimize)
	p.LoadMatrix(triplets)
	status, err = p.Solve(solver.SolveOptions{})
	if err != nil || status != solver.Optimal {
		// keep the phase-1 result rather than discard it; invariant 6
		// (widths never shrink across a refinement round) still holds
		// because phase 1's solve already ran.
		for i, block := range component {
			block.Left = phase1Left[i]
			block.Width = phase1Width[i]
		}
		return
	}
	for i, block := range component {
		block.Left = p.ColumnPrimal(cols[2*i])
		block.Width = p.ColumnPrimal(cols[2*i+1])
	}
}
