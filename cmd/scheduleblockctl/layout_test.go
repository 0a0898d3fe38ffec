package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestApp() *app {
	return &app{logger: log.New(io.Discard)}
}

func TestLayoutCommand_PrintsOneRowPerBlock(t *testing.T) {
	a := newTestApp()
	cmd := a.layoutCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(`[{"label":"a","startMin":0,"endMin":60},{"label":"b","startMin":30,"endMin":90}]`))
	cmd.SetArgs([]string{"-"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := out.String()
	if !strings.Contains(body, "a") || !strings.Contains(body, "b") {
		t.Fatalf("expected both event labels in the table, got:\n%s", body)
	}
}

func TestLayoutCommand_MetricsFlagAppendsStageTimings(t *testing.T) {
	a := newTestApp()
	cmd := a.layoutCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(`[{"startMin":0,"endMin":60}]`))
	cmd.SetArgs([]string{"-", "--metrics"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "scheduleblock_stage_duration_seconds") {
		t.Fatalf("expected stage timing metrics in output, got:\n%s", out.String())
	}
}
