package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/render"
	"github.com/blockrender/scheduleblock/telemetry"
)

func (a *app) layoutCommand() *cobra.Command {
	var (
		configPath string
		dotPath    string
		showTimes  bool
	)

	cmd := &cobra.Command{
		Use:   "layout [events.json]",
		Short: "Compute a schedule block layout from a JSON event list",
		Long: `Compute a schedule block layout from a JSON event list.

Each input is a JSON array of {"label": "...", "startMin": N, "endMin": N}
objects (label optional). Reads from the given file, or stdin if omitted
or "-". Prints one row per block: label, index, depth, left, width, fixed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			r, err := a.openInput(cmd, args)
			if err != nil {
				return err
			}
			defer r.Close()

			events, err := decodeEvents(r)
			if err != nil {
				return err
			}

			a.logger.Debug("decoded events", "count", len(events))

			rec := telemetry.New()
			e := a.newEngine()
			e.SetOptions(cfg.toOptions())
			e.SetRecorder(rec)

			blocks, err := e.Compute(toInputs(events))
			if err != nil {
				return fmt.Errorf("compute layout: %w", err)
			}

			a.logger.Info("layout computed", "blocks", len(blocks), "sum", e.GetSum(), "sumSq", e.GetSumSq())

			printLayoutTable(cmd.OutOrStdout(), events, blocks)

			if dotPath != "" {
				if err := writeDOT(dotPath, blocks); err != nil {
					return err
				}
			}
			if showTimes {
				if err := rec.WriteText(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("write stage timings: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a .scheduleblockctl.yaml config file")
	cmd.Flags().StringVar(&dotPath, "dot", "", "write the condensed conflict graph as Graphviz DOT to this path")
	cmd.Flags().BoolVar(&showTimes, "metrics", false, "print per-stage timing metrics (Prometheus text format) after the table")

	return cmd
}

// openInput opens args[0], or cmd's input stream if args is empty or
// args[0] is "-" (cmd.InOrStdin defaults to os.Stdin outside of tests,
// and to whatever SetIn was given inside them).
func (a *app) openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", args[0], err)
	}
	return f, nil
}

func writeDOT(path string, blocks []core.Block) error {
	dot := render.ToDOT(blocks, render.Options{Detailed: true})
	if err := os.WriteFile(path, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("write dot %s: %w", path, err)
	}
	return nil
}

func printLayoutTable(w io.Writer, events []event, blocks []core.Block) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"label", "idx", "depth", "left", "width", "fixed"})

	fixed := color.New(color.FgGreen)
	for i := range blocks {
		b := &blocks[i]
		row := table.Row{
			labelFor(events, i),
			b.Idx,
			b.Depth,
			fmt.Sprintf("%.4f", b.Left),
			fmt.Sprintf("%.4f", b.Width),
			b.IsFixed,
		}
		if b.IsFixed {
			for j, cell := range row {
				row[j] = fixed.Sprint(cell)
			}
		}
		tbl.AppendRow(row)
	}
	tbl.Render()
}
