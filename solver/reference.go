package solver

import (
	"errors"
	"math"
)

// ErrNotSolved is a sentinel for reading results from a problem that has
// not been solved. Nothing in this package returns it: reference's
// ColumnPrimal and ObjectiveValue simply return 0 in that case. It is
// exported so callers have a sentinel to check against if they choose to.
var ErrNotSolved = errors.New("solver: problem has not been solved")

type colSpec struct {
	kind   BoundKind
	lo, hi float64
	vkind  ColumnKind
	obj    float64
}

type rowSpec struct {
	kind   BoundKind
	lo, hi float64
}

// reference is the in-module Problem implementation: a Big-M simplex
// (simplex.go) for continuous LPs, and a branch-and-bound wrapper
// (branchbound.go) whenever a binary column is present.
type reference struct {
	dir      Direction
	cols     []colSpec
	rows     []rowSpec
	triplets []Triplet

	solved bool
	status Status
	primal []float64
	objVal float64
}

// New constructs an empty Problem. Column and row indices returned by
// AddColumns/AddRows are 1-based and stable for the lifetime of the
// problem.
func New() Problem { return &reference{} }

func (p *reference) AddColumns(n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		p.cols = append(p.cols, colSpec{kind: Lower, lo: 0, hi: math.Inf(1)})
		out[i] = len(p.cols)
	}
	return out
}

func (p *reference) AddRows(n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		p.rows = append(p.rows, rowSpec{})
		out[i] = len(p.rows)
	}
	return out
}

func (p *reference) SetColBounds(col int, kind BoundKind, lo, hi float64) {
	p.cols[col-1].kind = kind
	p.cols[col-1].lo = lo
	p.cols[col-1].hi = hi
}

func (p *reference) SetColKind(col int, kind ColumnKind) {
	p.cols[col-1].vkind = kind
	if kind == Binary {
		p.cols[col-1].kind = Double
		p.cols[col-1].lo = 0
		p.cols[col-1].hi = 1
	}
}

func (p *reference) SetRowBounds(row int, kind BoundKind, lo, hi float64) {
	p.rows[row-1].kind = kind
	p.rows[row-1].lo = lo
	p.rows[row-1].hi = hi
}

func (p *reference) SetObjCoef(col int, coef float64) { p.cols[col-1].obj = coef }

func (p *reference) SetDirection(dir Direction) { p.dir = dir }

func (p *reference) LoadMatrix(triplets []Triplet) {
	p.triplets = make([]Triplet, len(triplets))
	copy(p.triplets, triplets)
}

func (p *reference) Solve(opts SolveOptions) (Status, error) {
	hasBinary := false
	for _, c := range p.cols {
		if c.vkind == Binary {
			hasBinary = true
			break
		}
	}

	var status Status
	var x []float64
	if hasBinary {
		status, x = branchAndBound(p, opts)
	} else {
		status, x = p.solveRelaxation(p.cols)
	}

	p.solved = true
	p.status = status
	p.primal = x
	p.objVal = 0
	if x != nil {
		for j, c := range p.cols {
			p.objVal += c.obj * x[j]
		}
	}
	return status, nil
}

func (p *reference) ColumnPrimal(col int) float64 {
	if p.primal == nil || col-1 >= len(p.primal) {
		return 0
	}
	return p.primal[col-1]
}

func (p *reference) ObjectiveValue() float64 { return p.objVal }

func (p *reference) Dispose() {}

// solveRelaxation builds the canonical rows for cols' bounds (overriding
// p.cols's bounds for the duration of one solve, so branchAndBound can pass
// tightened per-branch bounds without mutating the problem) and runs
// simplexSolve, mapping its substituted solution back to original variable
// space.
func (p *reference) solveRelaxation(cols []colSpec) (Status, []float64) {
	n := len(cols)
	base := make([]float64, n)
	hasUB := make([]bool, n)
	ub := make([]float64, n)

	for j, c := range cols {
		switch c.kind {
		case Free:
			base[j] = -unboundedLarge
			hasUB[j] = true
			ub[j] = 2 * unboundedLarge
		case Lower:
			base[j] = c.lo
		case Upper:
			base[j] = c.hi - unboundedLarge
			hasUB[j] = true
			ub[j] = unboundedLarge
		case Double:
			base[j] = c.lo
			hasUB[j] = true
			ub[j] = c.hi - c.lo
		case Fixed:
			base[j] = c.lo
			hasUB[j] = true
			ub[j] = 0
		}
	}

	dense := make([][]float64, len(p.rows))
	for i := range dense {
		dense[i] = make([]float64, n)
	}
	for _, t := range p.triplets {
		dense[t.Row-1][t.Col-1] = t.Coef
	}

	var canon []canonRow
	for i, r := range p.rows {
		offset := 0.0
		for j := 0; j < n; j++ {
			offset += dense[i][j] * base[j]
		}
		switch r.kind {
		case Lower:
			canon = append(canon, canonRow{coef: dense[i], op: opGE, rhs: r.lo - offset})
		case Upper:
			canon = append(canon, canonRow{coef: dense[i], op: opLE, rhs: r.hi - offset})
		case Double:
			canon = append(canon, canonRow{coef: dense[i], op: opGE, rhs: r.lo - offset})
			canon = append(canon, canonRow{coef: dense[i], op: opLE, rhs: r.hi - offset})
		case Fixed:
			canon = append(canon, canonRow{coef: dense[i], op: opEQ, rhs: r.lo - offset})
		case Free:
			// unconstrained row: nothing to add.
		}
	}
	for j := 0; j < n; j++ {
		if !hasUB[j] {
			continue
		}
		row := make([]float64, n)
		row[j] = 1
		canon = append(canon, canonRow{coef: row, op: opLE, rhs: ub[j]})
	}

	c := make([]float64, n)
	for j, col := range cols {
		if p.dir == Maximize {
			c[j] = -col.obj
		} else {
			c[j] = col.obj
		}
	}

	res := simplexSolve(n, canon, c)
	if res.status != Optimal {
		return res.status, nil
	}
	x := make([]float64, n)
	for j := range x {
		x[j] = res.x[j] + base[j]
	}
	return Optimal, x
}
