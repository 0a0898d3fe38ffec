package engine

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/telemetry"
)

func approxEq(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

func TestCompute_RejectsInvalidInterval(t *testing.T) {
	e := New()
	_, err := e.Compute([]Input{{StartMin: 10, EndMin: 10}})
	if !errors.Is(err, core.ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestCompute_EmptyInputIsNoop(t *testing.T) {
	e := New()
	blocks, err := e.Compute(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
	if e.GetSum() != 0 || e.GetSumSq() != 0 {
		t.Fatalf("expected zero aggregates for empty input")
	}
}

func TestCompute_SingleEventFillsFullWidth(t *testing.T) {
	e := New()
	blocks, err := e.Compute([]Input{{StartMin: 0, EndMin: 60}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEq(blocks[0].Left, 0) {
		t.Fatalf("expected left 0, got %v", blocks[0].Left)
	}
	if !approxEq(blocks[0].Width, 1) {
		t.Fatalf("expected width 1, got %v", blocks[0].Width)
	}
	if !approxEq(e.GetSum(), 100) {
		t.Fatalf("expected GetSum 100, got %v", e.GetSum())
	}
}

func TestCompute_DisableDFSKeepsBlocksWithinAxis(t *testing.T) {
	e := New()
	opts := DefaultOptions()
	opts.ApplyDFS = false
	e.SetOptions(opts)

	blocks, err := e.Compute([]Input{{StartMin: 0, EndMin: 60}, {StartMin: 30, EndMin: 90}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range blocks {
		if blocks[i].Left+blocks[i].Width > 1+1e-6 {
			t.Errorf("block %d: left+width exceeds 1", i)
		}
	}
}

func TestCompute_MILPProducesAFeasibleLayout(t *testing.T) {
	e := New()
	opts := DefaultOptions()
	opts.MILP = true
	opts.MILPTimeLimitSeconds = 5
	e.SetOptions(opts)

	blocks, err := e.Compute([]Input{{StartMin: 0, EndMin: 60}, {StartMin: 30, EndMin: 90}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range blocks {
		if blocks[i].Width <= 0 || blocks[i].Left+blocks[i].Width > 1+1e-4 {
			t.Errorf("block %d: expected a feasible layout, got left=%v width=%v", i, blocks[i].Left, blocks[i].Width)
		}
	}
}

func TestCompute_SetRecorderObservesEveryStageRun(t *testing.T) {
	e := New()
	rec := telemetry.New()
	e.SetRecorder(rec)

	if _, err := e.Compute([]Input{{StartMin: 0, EndMin: 60}, {StartMin: 30, EndMin: 90}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	for _, stage := range []string{telemetry.StagePartition, telemetry.StageConflict, telemetry.StageCondense, telemetry.StageSeed, telemetry.StageLP, telemetry.StageAggregate} {
		if !strings.Contains(body, `stage="`+stage+`"`) {
			t.Errorf("expected stage %q to have been observed, got:\n%s", stage, body)
		}
	}
}

func TestCompute_ReusesBuffersAcrossGrowingCalls(t *testing.T) {
	e := New()
	if _, err := e.Compute([]Input{{StartMin: 0, EndMin: 60}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocks, err := e.Compute([]Input{{StartMin: 0, EndMin: 60}, {StartMin: 60, EndMin: 120}, {StartMin: 120, EndMin: 180}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks after growing, got %d", len(blocks))
	}
}
