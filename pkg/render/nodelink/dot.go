package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/galdraw/pkg/lfsr"
	"github.com/matzehuels/galdraw/pkg/render"
)

// Options selects the labels drawn on the graph.
type Options struct {
	// ShowValues puts each cell's value under its name and labels the
	// feedback and output edges with the bits they carry.
	ShowValues bool
	// ShowNames labels cells x₀, x₁, and so on.
	ShowNames bool
}

const dotHeader = `digraph LFSR {
  rankdir=LR;
  bgcolor="transparent";
  nodesep=0.4;
  node [shape=box, style=filled, fillcolor=white, fontsize=24, width=0.8, height=0.8, fixedsize=true];
  "xor" [shape=circle, label="⊕", width=0.5, height=0.5];
  "out" [shape=plaintext, label="out"];
`

// ToDOT describes r as a Graphviz digraph. Cells sit on one rank joined by
// shift edges; tapped cells feed the XOR node through dashed edges and the
// XOR node feeds cell 0.
func ToDOT(r lfsr.Register, opts Options) string {
	var sb strings.Builder
	line := func(format string, args ...any) {
		sb.WriteString("  ")
		fmt.Fprintf(&sb, format, args...)
		sb.WriteByte('\n')
	}

	sb.WriteString(dotHeader)
	n := r.Len()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = strconv.Quote(cellID(i))
	}
	line("{ rank=same; %s; }", strings.Join(ids, "; "))
	for i, id := range ids {
		line("%s [label=%q];", id, cellLabel(r, i, opts))
	}

	for i := 1; i < n; i++ {
		line("%s -> %s;", ids[i-1], ids[i])
	}
	if n > 0 {
		line("%s -> \"out\"%s;", ids[n-1], edgeLabel(opts, r.Output()))
		line("\"xor\" -> %s%s;", ids[0], edgeLabel(opts, r.Feedback()))
	}
	for _, i := range r.Taps.Indices() {
		line("%s -> \"xor\" [style=dashed];", ids[i])
	}
	sb.WriteString("}\n")
	return sb.String()
}

func cellID(i int) string { return "x" + strconv.Itoa(i) }

func cellLabel(r lfsr.Register, i int, opts Options) string {
	var parts []string
	if opts.ShowNames {
		parts = append(parts, "x"+subscript(i))
	}
	if opts.ShowValues {
		parts = append(parts, strconv.Itoa(int(r.Values[i])))
	}
	return strings.Join(parts, "\n")
}

func edgeLabel(opts Options, v uint8) string {
	if !opts.ShowValues {
		return ""
	}
	return fmt.Sprintf(" [label=\"%d\"]", v)
}

// subscript renders i with Unicode subscript digits.
func subscript(i int) string {
	var sb strings.Builder
	for _, d := range strconv.Itoa(i) {
		sb.WriteRune('₀' + (d - '0'))
	}
	return sb.String()
}

// RenderSVG lays out dot in-process with Graphviz and returns SVG sized in
// user units.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("start graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer g.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &out); err != nil {
		return nil, fmt.Errorf("graphviz svg: %w", err)
	}
	return normalizeViewBox(out.Bytes()), nil
}

var (
	openSVGTag = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxDim = regexp.MustCompile(`viewBox="[0-9.]+\s+[0-9.]+\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with one
// whose width and height match a zero-origin viewBox, so the SVG scales the
// same way as the register diagrams.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxDim.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[1]), 64)
	h, _ := strconv.ParseFloat(string(m[2]), 64)
	if w <= 0 || h <= 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return openSVGTag.ReplaceAll(svg, []byte(root))
}

// RenderPDF converts the Graphviz SVG with [render.ToPDF].
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG converts the Graphviz SVG with [render.ToPNG] at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
