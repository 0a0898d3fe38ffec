package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) generateCommand() *cobra.Command {
	var (
		count   int
		stepMin int
		durMin  int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a synthetic JSON event list for testing the layout command",
		Long: `Print a synthetic JSON event list of count overlapping events on
stdout, suitable for piping into "layout". Event i starts at i*step
minutes and runs for dur minutes, so consecutive events overlap whenever
dur > step.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCount(count); err != nil {
				return err
			}
			events := make([]event, count)
			for i := 0; i < count; i++ {
				start := int16(i * stepMin)
				events[i] = event{
					Label:    newLabel(),
					StartMin: start,
					EndMin:   start + int16(durMin),
				}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(events); err != nil {
				return fmt.Errorf("encode events: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 5, "number of synthetic events to generate (must be non-negative)")
	cmd.Flags().IntVar(&stepMin, "step", 30, "minutes between each event's start time")
	cmd.Flags().IntVar(&durMin, "dur", 60, "each event's duration in minutes")

	return cmd
}
