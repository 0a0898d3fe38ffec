// Package solver defines the abstract LP/MILP solving contract the
// schedule block layout pipeline depends on: construct a problem, add
// columns/rows, bound them, set an objective, load a sparse constraint
// matrix, solve, and read primal values back. lp.Refine and
// milp.Solve are written entirely against Problem; no caller ever reaches
// into a concrete solver implementation.
//
// No third-party Go LP/MILP library is present anywhere in this module's
// grounding corpus (see DESIGN.md), so this package also ships the one
// conforming implementation (New), built the way
// crillab-gophersat/solver builds its own from-scratch SAT engine behind
// an equally abstract Interface/Result contract: a small, self-contained
// reference, not a production solver. Swapping it for a real LP/MILP
// engine later only touches this package.
package solver

// Direction selects whether Solve maximizes or minimizes the objective.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// BoundKind selects the shape of a column's or row's feasible range.
type BoundKind int

const (
	// Free: unconstrained, (-inf, +inf).
	Free BoundKind = iota
	// Lower: [lo, +inf).
	Lower
	// Upper: (-inf, hi].
	Upper
	// Double: [lo, hi].
	Double
	// Fixed: {lo} (hi is ignored).
	Fixed
)

// ColumnKind selects whether a column must take an integer 0/1 value.
type ColumnKind int

const (
	Continuous ColumnKind = iota
	Binary
)

// Status is the outcome of a Solve call.
type Status int

const (
	// Optimal means Solve found a provably optimal solution (LP) or the
	// best incumbent within the branch-and-bound time budget (MILP).
	Optimal Status = iota
	// Infeasible means no point satisfies every constraint.
	Infeasible
	// TimeLimit means a MILP search exhausted its wall-clock budget
	// before proving optimality; ColumnPrimal still returns the best
	// incumbent found, if any.
	TimeLimit
)

// Triplet is one non-zero entry of the constraint matrix in sparse form,
// 1-indexed per this package's contract: (Row, Col, Coef).
type Triplet struct {
	Row, Col int
	Coef     float64
}

// SolveOptions configures one Solve call.
type SolveOptions struct {
	// TimeLimitSeconds bounds MILP branch-and-bound search; 0 means no
	// limit. Ignored by problems with no binary columns.
	TimeLimitSeconds float64
}

// Problem is the abstract LP/MILP contract this package defines. Column
// and row indices are 1-based, matching the sparse triplet convention, and
// are returned by AddColumns/AddRows for the caller to remember.
type Problem interface {
	// AddColumns preallocates n structural variables and returns their
	// 1-based column indices in order.
	AddColumns(n int) []int

	// AddRows preallocates n constraint rows and returns their 1-based
	// row indices in order.
	AddRows(n int) []int

	// SetColBounds constrains column col per kind; lo/hi are read
	// according to kind (both ignored for Free, hi ignored for Lower and
	// Fixed, lo ignored for Upper).
	SetColBounds(col int, kind BoundKind, lo, hi float64)

	// SetColKind marks col Continuous (default) or Binary. Binary implies
	// bounds [0,1] regardless of any prior SetColBounds call.
	SetColKind(col int, kind ColumnKind)

	// SetRowBounds constrains row's linear combination per kind, with the
	// same lo/hi semantics as SetColBounds.
	SetRowBounds(row int, kind BoundKind, lo, hi float64)

	// SetObjCoef sets column col's coefficient in the objective.
	SetObjCoef(col int, coef float64)

	// SetDirection selects maximize or minimize; default is Minimize.
	SetDirection(dir Direction)

	// LoadMatrix replaces the constraint matrix with the given sparse
	// triplets. Safe to call once after all rows/columns are sized.
	LoadMatrix(triplets []Triplet)

	// Solve runs the LP simplex (no binary columns) or MILP
	// branch-and-bound (binary columns present) and returns the outcome.
	Solve(opts SolveOptions) (Status, error)

	// ColumnPrimal reads back col's primal value from the last Solve.
	// Only meaningful after a Solve returning Optimal or TimeLimit with
	// an incumbent.
	ColumnPrimal(col int) float64

	// ObjectiveValue reads back the objective value of the last Solve.
	ObjectiveValue() float64

	// Dispose releases the problem's resources. The reference
	// implementation's Dispose is a no-op (everything is GC-managed), but
	// callers must still call it: a real solver binding would need it.
	Dispose()
}
