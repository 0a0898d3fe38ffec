package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/blockrender/scheduleblock/engine"
)

// event is the JSON shape of one input event. Label is an optional,
// purely-cosmetic identifier for CLI display; the engine itself never
// sees it, since engine.Input carries only the bare interval.
type event struct {
	Label    string `json:"label,omitempty"`
	StartMin int16  `json:"startMin"`
	EndMin   int16  `json:"endMin"`
}

// decodeEvents reads a JSON array of events from r.
func decodeEvents(r io.Reader) ([]event, error) {
	var events []event
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// toInputs strips the display-only Label field, the boundary engine.Input
// crosses into the core pipeline.
func toInputs(events []event) []engine.Input {
	inputs := make([]engine.Input, len(events))
	for i, e := range events {
		inputs[i] = engine.Input{StartMin: e.StartMin, EndMin: e.EndMin}
	}
	return inputs
}

// labelFor returns events[i].Label, or a short synthetic one if it was
// left blank in the input JSON.
func labelFor(events []event, i int) string {
	if events[i].Label != "" {
		return events[i].Label
	}
	return fmt.Sprintf("evt-%d", i)
}

// newLabel mints a fresh display label for synthetic events (generate
// subcommand), grounded on the single google/uuid.NewString() call the
// retrieved pack's schedule_generator_service.go makes for its ProposalID.
func newLabel() string {
	return uuid.NewString()
}
