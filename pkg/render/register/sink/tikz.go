package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/render/register/styles"
)

// TikZOption configures TikZ rendering via [RenderTikZ].
type TikZOption func(*tikzRenderer)

type tikzRenderer struct {
	palette styles.Palette
}

// WithTikZPalette sets the colours and stroke widths.
func WithTikZPalette(p styles.Palette) TikZOption { return func(r *tikzRenderer) { r.palette = p } }

// RenderTikZ writes the stream as a standalone LaTeX document with a single
// tikzpicture. The document compiles with pdflatex and, through the
// standalone class, converts to PNG with ImageMagick at 300 dpi.
func RenderTikZ(s layout.Stream, opts ...TikZOption) []byte {
	r := tikzRenderer{palette: styles.Default()}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	r.preamble(&buf)
	for _, p := range s.Primitives {
		switch v := p.(type) {
		case layout.Box:
			r.box(&buf, s.Config, v)
		case layout.Line:
			fmt.Fprintf(&buf, "\t\\draw [line width=%scm] %s;\n", num(r.palette.LineWidth), tikzPath(v.Points))
		case layout.Arc:
			start := arcPoint(v, v.Start)
			fmt.Fprintf(&buf, "\t\\draw [line width=%scm] (%s,%s) arc(%s:%s:%s);\n",
				num(r.palette.LineWidth), num(start.X), num(start.Y), num(v.Start), num(v.End), num(v.Radius))
		case layout.Arrow:
			r.arrow(&buf, s.Config, v)
		}
	}
	fmt.Fprintf(&buf, "\\path (current bounding box.north east) +(%smm,%smm) (current bounding box.south west) +(-%smm,-%smm);\n",
		num(s.Config.Border*10), num(s.Config.Border*10), num(s.Config.Border*10), num(s.Config.Border*10))
	buf.WriteString("\n\\end{tikzpicture}\n\\end{document}\n")
	return buf.Bytes()
}

func (r *tikzRenderer) preamble(buf *bytes.Buffer) {
	buf.WriteString("\\documentclass[magick={density=300,size=1080x800,outext=.png},tikz]{standalone}\n")
	buf.WriteString("\\usepackage{xcolor}\n\\usepackage{scalerel}\n\\usepackage{amsmath}\n")
	buf.WriteString("\\usetikzlibrary{arrows.meta,backgrounds}\n")
	for _, c := range []struct{ name, hex string }{
		{"galbg", r.palette.Background},
		{"galstroke", r.palette.Stroke},
		{"galbox", r.palette.BoxFill},
		{"galtext", r.palette.Text},
	} {
		fmt.Fprintf(buf, "\\definecolor{%s}{HTML}{%s}\n", c.name, styles.HexDigits(c.hex))
	}
	buf.WriteString("\\tikzset{white background/.style={show background rectangle,tight background,background rectangle/.style={fill=galbg}}}\n")
	buf.WriteString("\n\\begin{document}\n\\begin{tikzpicture}[white background,draw=galstroke,text=galtext]\n\n")
}

func (r *tikzRenderer) box(buf *bytes.Buffer, c layout.Config, b layout.Box) {
	fmt.Fprintf(buf, "%%node %d\n", b.Index)
	opts := []string{
		"draw",
		"fill=galbox",
		fmt.Sprintf("minimum size=%scm", num(b.Size)),
		fmt.Sprintf("line width=%scm", num(r.palette.LineWidth)),
	}
	if b.Name != "" {
		base, sub := nameParts(b.Name)
		shift := b.Center.Y + b.Size/2 - b.NameAt.Y
		opts = append(opts, fmt.Sprintf("label={[yshift=-%scm] {$\\scaleto{%s_{%s}}{%spt}$}}",
			num(shift), base, sub, num(c.IndexFontSize)))
	}
	content := ""
	if b.Value != "" {
		content = fmt.Sprintf("$\\scaleto{%s}{%spt}$", b.Value, num(c.ValueFontSize))
	}
	fmt.Fprintf(buf, "\\draw node[%s] at (%s, %s) {%s};\n",
		strings.Join(opts, ", "), num(b.Center.X), num(b.Center.Y), content)
}

func (r *tikzRenderer) arrow(buf *bytes.Buffer, c layout.Config, a layout.Arrow) {
	tip := fmt.Sprintf("-Triangle[angle=90:%scm,galstroke,fill=galstroke,line width=%scm]",
		num(r.palette.ArrowHead), num(r.palette.LineWidth))
	if a.Label == "" {
		fmt.Fprintf(buf, "\t\\draw [line width=%scm,arrows={%s}] %s;\n", num(r.palette.LineWidth), tip, tikzPath(a.Points))
		return
	}

	n := len(a.Points)
	last := a.Points[n-1]
	shift := a.LabelAt.Y - last.Y
	label := fmt.Sprintf("node[midway,above,yshift=%scm] {$\\scaleto{%s}{%spt}$}", num(shift), a.Label, num(c.ValueFontSize))
	// The label sits on the final segment.
	head := tikzPath(a.Points[:n-1])
	fmt.Fprintf(buf, "\\draw[line width=%scm,arrows={%s}] %s -- %s (%s,%s);\n",
		num(r.palette.LineWidth), tip, head, label, num(last.X), num(last.Y))
}

func tikzPath(pts []layout.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = "(" + num(p.X) + "," + num(p.Y) + ")"
	}
	return strings.Join(parts, " -- ")
}
