package solver

import (
	"math"
	"time"
)

const integralTol = 1e-6

// bbNode is one open branch: a full copy of the problem's column bounds
// with zero or more binary columns pinned Fixed by earlier branching
// decisions on the path from the root.
type bbNode struct {
	cols []colSpec
}

func cloneCols(cols []colSpec) []colSpec {
	out := make([]colSpec, len(cols))
	copy(out, cols)
	return out
}

// branchAndBound implements the MILP half of stage S7: solve the LP
// relaxation at each node, and if every binary column already landed on
// 0/1 within integralTol the node is an integral incumbent candidate;
// otherwise branch on the first fractional binary column, fixing it to 0
// in one child and 1 in the other. The agenda is an explicit stack (DFS),
// matching this module's preference for explicit-stack traversal over
// recursion wherever a traversal's depth is data-dependent.
//
// opts.TimeLimitSeconds bounds wall-clock search time; 0 (or a negative
// value) means no limit. On expiry the best incumbent found so far (if
// any) is returned with status TimeLimit, never discarded.
func branchAndBound(p *reference, opts SolveOptions) (Status, []float64) {
	var deadline time.Time
	hasDeadline := opts.TimeLimitSeconds > 0
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(opts.TimeLimitSeconds * float64(time.Second)))
	}

	better := func(a, b float64) bool {
		if p.dir == Maximize {
			return a > b
		}
		return a < b
	}
	worstFirst := math.Inf(1)
	if p.dir == Maximize {
		worstFirst = math.Inf(-1)
	}

	var bestX []float64
	bestObj := worstFirst
	timedOut := false

	stack := []bbNode{{cols: cloneCols(p.cols)}}
	for len(stack) > 0 {
		if hasDeadline && time.Now().After(deadline) {
			timedOut = true
			break
		}

		n := len(stack) - 1
		node := stack[n]
		stack = stack[:n]

		status, x := p.solveRelaxation(node.cols)
		if status != Optimal {
			continue
		}

		relaxObj := 0.0
		for j, c := range node.cols {
			relaxObj += c.obj * x[j]
		}
		if bestX != nil && !better(relaxObj, bestObj) {
			continue // bound: this subtree cannot beat the incumbent
		}

		fracCol := -1
		for j, c := range node.cols {
			if c.vkind != Binary {
				continue
			}
			d := x[j] - math.Round(x[j])
			if d < 0 {
				d = -d
			}
			if d > integralTol {
				fracCol = j
				break
			}
		}

		if fracCol == -1 {
			if bestX == nil || better(relaxObj, bestObj) {
				bestObj = relaxObj
				bestX = x
			}
			continue
		}

		for _, val := range [2]float64{1, 0} {
			child := cloneCols(node.cols)
			child[fracCol].kind = Fixed
			child[fracCol].lo = val
			child[fracCol].hi = val
			stack = append(stack, bbNode{cols: child})
		}
	}

	switch {
	case bestX == nil && timedOut:
		return TimeLimit, nil
	case bestX == nil:
		return Infeasible, nil
	case timedOut:
		return TimeLimit, bestX
	default:
		return Optimal, bestX
	}
}
