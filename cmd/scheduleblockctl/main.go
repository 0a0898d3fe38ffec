// Command scheduleblockctl is a CLI front end for the schedule block
// layout engine, grounded on matzehuels-stacktower's internal/cli
// package: a root cobra.Command carrying a charmbracelet/log logger,
// subcommands attached as methods on a shared app so they share one
// logger instance and one engine factory (newEngine builds a fresh
// engine.Engine per call).
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blockrender/scheduleblock/engine"
)

// app holds state shared by every subcommand.
type app struct {
	logger *log.Logger
}

func (a *app) newEngine() *engine.Engine { return engine.New() }

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "scheduleblockctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool
	a := &app{}

	root := &cobra.Command{
		Use:          "scheduleblockctl",
		Short:        "Lay out overlapping schedule events as non-overlapping blocks",
		Long:         `scheduleblockctl computes left/width layout fractions for overlapping calendar events, the way a week-view calendar tiles concurrent meetings side by side.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			a.logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.layoutCommand())
	root.AddCommand(a.generateCommand())

	return root
}
