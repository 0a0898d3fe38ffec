package fixedpoint

import (
	"testing"

	"github.com/blockrender/scheduleblock/core"
)

func TestDetect_LeftZeroIsFixed(t *testing.T) {
	b := &core.Block{Left: 0, Width: 1}
	if !Detect(b) || !b.IsFixed {
		t.Fatalf("expected a block at left=0 to be fixed")
	}
}

func TestDetect_LeftWithinEpsilonOfZeroIsFixed(t *testing.T) {
	// A swapped-in LP solver is not guaranteed to emit an exact zero bit
	// pattern; Detect must tolerate a small positive residual.
	b := &core.Block{Left: core.DoubleEPS / 2, Width: 1}
	if !Detect(b) || !b.IsFixed {
		t.Fatalf("expected a block at left within DoubleEPS of 0 to be fixed")
	}
}

func TestDetect_PropagatesThroughAbuttingChain(t *testing.T) {
	// a (left=0) <- b (left=0.5, abuts a's right edge) <- c (left=0.75, abuts b's right edge)
	a := &core.Block{Left: 0, Width: 0.5}
	b := &core.Block{Left: 0.5, Width: 0.25}
	c := &core.Block{Left: 0.75, Width: 0.25}
	b.CLeftN = []*core.Block{a}
	c.CLeftN = []*core.Block{b}

	if !Detect(c) {
		t.Fatalf("expected fixedness to propagate through the abutting chain to c")
	}
	if !a.IsFixed || !b.IsFixed || !c.IsFixed {
		t.Fatalf("expected every block in the chain fixed, got a=%v b=%v c=%v", a.IsFixed, b.IsFixed, c.IsFixed)
	}
}

func TestDetect_NoAbuttingFixedNeighborIsNotFixed(t *testing.T) {
	a := &core.Block{Left: 0.3, Width: 0.3} // right edge at 0.6
	b := &core.Block{Left: 0.5, Width: 0.5} // left edge 0.5, doesn't abut a's right edge (0.6)
	b.CLeftN = []*core.Block{a}

	if Detect(b) {
		t.Fatalf("expected b to remain unfixed: no exact abutment to a fixed neighbor")
	}
}

func TestDetect_VisitsEveryNeighborAfterAnUnfixedOne(t *testing.T) {
	// Two CLeftN neighbors both abut b; the first one found unfixed should
	// not short-circuit evaluation of the second, which is fixed.
	unfixedNeighbor := &core.Block{Left: 0.3, Width: 0.2} // right edge 0.5, abuts b
	fixedRoot := &core.Block{Left: 0, Width: 0.5}         // right edge 0.5, abuts b, and is fixed (left==0)
	b := &core.Block{Left: 0.5, Width: 0.5}
	b.CLeftN = []*core.Block{unfixedNeighbor, fixedRoot}

	if !Detect(b) {
		t.Fatalf("expected b fixed via the second (fixed) neighbor despite the first being unfixed")
	}
	if unfixedNeighbor.IsFixed {
		t.Fatalf("first neighbor should genuinely be unfixed (no cleftN of its own, left != 0)")
	}
}

func TestDetect_DeepChainDoesNotPanic(t *testing.T) {
	// A long chain of 10,000 abutting blocks must not overflow a recursive
	// implementation's call stack; this is the scenario the iterative
	// reformulation exists for.
	const n = 10000
	blocks := make([]*core.Block, n)
	width := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		blocks[i] = &core.Block{Left: float64(i) * width, Width: width}
		if i > 0 {
			blocks[i].CLeftN = []*core.Block{blocks[i-1]}
		}
	}
	if !Detect(blocks[n-1]) {
		t.Fatalf("expected the deep chain to resolve to fixed")
	}
}
