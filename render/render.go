// Package render turns the condensed conflict graph a pipeline run leaves
// behind into a Graphviz DOT diagram, purely for debugging layouts — it
// never touches the calendar grid itself, which stays out of scope for
// this module.
//
// Grounded on matzehuels-stacktower's pkg/render/nodelink (ToDOT + the
// graphviz.New/ParseBytes/Render call sequence for SVG/PNG output).
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/blockrender/scheduleblock/core"
)

// Options configures ToDOT's output.
type Options struct {
	// Detailed includes Left/Width/Depth in every node's label. When
	// false, only the block's index is shown.
	Detailed bool
}

// ToDOT renders blocks and their CLeftN edges (the transitively-reduced
// "left of" partial order condense.Reduce computed) as a DOT digraph.
// Fixed blocks are filled light grey; every other block is filled white.
func ToDOT(blocks []core.Block, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for i := range blocks {
		b := &blocks[i]
		label := fmtLabel(b, opts.Detailed)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if b.IsFixed {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", b.Idx, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := range blocks {
		b := &blocks[i]
		for _, v := range b.CLeftN {
			fmt.Fprintf(&buf, "  %d -> %d;\n", v.Idx, b.Idx)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b *core.Block, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("%d", b.Idx)
	}
	return fmt.Sprintf("%d\nleft=%.3f\nwidth=%.3f\ndepth=%d", b.Idx, b.Left, b.Width, b.Depth)
}

// RenderSVG renders a DOT graph produced by ToDOT to SVG via Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("render: init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("render: parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: render SVG: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG renders a DOT graph produced by ToDOT to PNG via Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("render: init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("render: parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: render PNG: %w", err)
	}
	return buf.Bytes(), nil
}
