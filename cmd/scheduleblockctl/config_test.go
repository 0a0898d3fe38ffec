package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/lp"
	"github.com/blockrender/scheduleblock/partition"
)

func TestLoadConfig_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts := cfg.toOptions()
	if opts.LPModel != lp.Model1 {
		t.Errorf("expected default LPModel1, got %v", opts.LPModel)
	}
	if opts.Method != partition.Greedy {
		t.Errorf("expected default Greedy method, got %v", opts.Method)
	}
}

func TestLoadConfig_ReadsYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "method: priority_queue\nlp_model: 2\nmilp: true\ndfs_tolerance: 3\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts := cfg.toOptions()
	if opts.Method != partition.PriorityQueue {
		t.Errorf("expected PriorityQueue, got %v", opts.Method)
	}
	if opts.LPModel != lp.Model2 {
		t.Errorf("expected Model2, got %v", opts.LPModel)
	}
	if !opts.MILP {
		t.Error("expected MILP true")
	}
	if opts.DFSTolerance != 3 {
		t.Errorf("expected DFSTolerance 3, got %v", opts.DFSTolerance)
	}
}

func TestValidateCount_RejectsNegative(t *testing.T) {
	if err := validateCount(-1); !errors.Is(err, core.ErrNegativeCount) {
		t.Fatalf("expected ErrNegativeCount, got %v", err)
	}
	if err := validateCount(0); err != nil {
		t.Fatalf("expected no error for zero, got %v", err)
	}
}
