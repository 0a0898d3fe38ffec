// Package aggregate implements stage S8: reducing the final per-block
// widths into the two summary statistics engine.Engine.GetSum and
// GetSumSq expose.
package aggregate

import "github.com/blockrender/scheduleblock/core"

// Result holds the two running sums computeResult() accumulates in the
// original algorithm: the sum of percentage widths and the sum of their
// squares (the two moments needed to report a mean and a variance without
// keeping every width around).
type Result struct {
	Sum   float64
	SumSq float64
}

// Compute scales every block's Width to a percentage (expressed in units
// of 100*width, matching how a caller would display "38.2%" rather than
// "0.382") and accumulates both moments.
func Compute(blocks []core.Block) Result {
	var r Result
	for i := range blocks {
		w := blocks[i].Width * 100
		r.Sum += w
		r.SumSq += w * w
	}
	return r
}
