// Package dot draws networks as Graphviz node-link diagrams.
//
// Convert a network to DOT, then render it in-process:
//
//	src := dot.ToDOT(ntk, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(src)
//
// Inputs are drawn as triangles at the top, gates as boxes and outputs as
// inverted triangles at the bottom. Complemented edges are dashed. Only the
// nodes reachable from an output are drawn.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cutrewrite/pkg/network"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the truth table of every gate to its label.
	Detailed bool
	// Inputs and Outputs name the primary inputs and outputs. Missing names
	// are generated.
	Inputs  []string
	Outputs []string
	// Highlight fills the given nodes, for example the gates of a cut.
	Highlight []network.Node
	// Leaves outlines the given nodes in bold, for example cut leaves.
	Leaves []network.Node
}

// ToDOT converts ntk to Graphviz DOT source.
func ToDOT(ntk *network.Network, opts Options) string {
	highlight := make(map[network.Node]bool, len(opts.Highlight))
	for _, n := range opts.Highlight {
		highlight[n] = true
	}
	leaves := make(map[network.Node]bool, len(opts.Leaves))
	for _, n := range opts.Leaves {
		leaves[n] = true
	}
	pis := make(map[network.Node]int, ntk.NumPIs())
	for i, n := range ntk.PIs() {
		pis[n] = i
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	usesConst := false
	for _, co := range ntk.COs() {
		usesConst = usesConst || ntk.IsConstant(co.Node())
	}

	var edges []string
	var inputs []string
	for _, n := range ntk.Topo() {
		var attrs []string
		switch {
		case ntk.IsConstant(n):
			if !usesConst && ntk.FanoutSize(n) == 0 {
				continue
			}
			attrs = []string{`label="0"`, "shape=plaintext"}
		case ntk.IsPI(n):
			attrs = []string{fmt.Sprintf("label=%q", name(opts.Inputs, pis[n], "pi")), "shape=invtriangle"}
			inputs = append(inputs, id(n))
		case ntk.IsRO(n):
			attrs = []string{fmt.Sprintf(`label="ro%d"`, n), "shape=box", "style=\"filled\"", "fillcolor=lightgrey"}
			inputs = append(inputs, id(n))
		default:
			label := fmt.Sprintf("n%d", n)
			if opts.Detailed {
				label += "\n" + ntk.Function(n).String()
			}
			attrs = []string{fmt.Sprintf("label=%q", label)}
			for _, f := range ntk.Fanins(n) {
				edges = append(edges, edge(id(f.Node()), id(n), f.IsComplemented()))
			}
		}
		if highlight[n] {
			attrs = append(attrs, "fillcolor=lightblue")
		}
		if leaves[n] {
			attrs = append(attrs, "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", id(n), strings.Join(attrs, ", "))
	}

	for i, po := range ntk.POs() {
		fmt.Fprintf(&buf, "  po%d [label=%q, shape=triangle];\n", i, name(opts.Outputs, i, "po"))
		edges = append(edges, edge(id(po.Node()), fmt.Sprintf("po%d", i), po.IsComplemented()))
	}
	for i, ri := range ntk.RIs() {
		fmt.Fprintf(&buf, "  ri%d [label=\"ri%d\", shape=box, style=\"filled\", fillcolor=lightgrey];\n", i, i)
		edges = append(edges, edge(id(ri.Node()), fmt.Sprintf("ri%d", i), ri.IsComplemented()))
	}

	if len(inputs) > 0 {
		fmt.Fprintf(&buf, "  { rank=min; %s; }\n", strings.Join(inputs, "; "))
	}
	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func id(n network.Node) string { return fmt.Sprintf("n%d", n) }

func name(names []string, i int, prefix string) string {
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s%d", prefix, i)
}

func edge(from, to string, complemented bool) string {
	if complemented {
		return fmt.Sprintf("  %s -> %s [style=dashed];\n", from, to)
	}
	return fmt.Sprintf("  %s -> %s;\n", from, to)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the point-based size Graphviz writes with a
// viewBox anchored at the origin so the drawing scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
