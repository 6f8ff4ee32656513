// Package render turns a snapshot tree into Graphviz diagrams for
// inspection, showing the node hierarchy before a rebuild is attempted.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// Options configures tree diagram rendering.
type Options struct {
	// Detailed includes geometry and attribute counts in node labels.
	// When false, only name and kind are shown.
	Detailed bool
}

// ToDOT converts a snapshot tree to Graphviz DOT format. The resulting DOT
// string can be rendered with [ToSVG] or [ToPNG].
//
// Vector-like nodes are rendered with dashed outlines because they only
// reconstruct faithfully through markup import; text nodes are tinted to
// make font-bearing leaves easy to spot.
func ToDOT(snap *snapshot.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if snap != nil && snap.Document != nil {
		writeNode(&buf, snap.Document, "0", opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *snapshot.Node, id string, opts Options) {
	label := fmtLabel(n, opts.Detailed)
	attrs := fmtAttrs(n, label)
	fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))

	for i, c := range n.Children {
		childID := id + "." + strconv.Itoa(i)
		writeNode(buf, c, childID, opts)
		fmt.Fprintf(buf, "  %q -> %q;\n", id, childID)
	}
}

func fmtLabel(n *snapshot.Node, detailed bool) string {
	label := n.Name + "\n" + string(n.Type)
	if !detailed {
		return label
	}

	var parts []string
	if bb := n.AbsoluteBoundingBox; bb != nil {
		parts = append(parts, fmt.Sprintf("%.0fx%.0f @ (%.0f, %.0f)", bb.Width, bb.Height, bb.X, bb.Y))
	}
	if len(n.Fills) > 0 {
		parts = append(parts, fmt.Sprintf("fills: %d", len(n.Fills)))
	}
	if len(n.Effects) > 0 {
		parts = append(parts, fmt.Sprintf("effects: %d", len(n.Effects)))
	}
	if n.Characters != "" {
		parts = append(parts, fmt.Sprintf("chars: %d", len(n.Characters)))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *snapshot.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Type.VectorLike():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case n.Type == snapshot.KindText:
		attrs = append(attrs, "fillcolor=lightyellow")
	case n.Type == snapshot.KindComponent, n.Type == snapshot.KindComponentSet, n.Type == snapshot.KindInstance:
		attrs = append(attrs, "fillcolor=lavender")
	}
	return attrs
}

// ToSVG renders a DOT tree diagram to SVG using Graphviz.
func ToSVG(ctx context.Context, dot string) ([]byte, error) {
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

// ToPNG renders a DOT tree diagram to PNG using Graphviz.
func ToPNG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
