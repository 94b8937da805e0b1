package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/matzehuels/galdraw/pkg/fonts"
	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/render/register/styles"
)

// PixelsPerUnit is the default SVG scale: CSS pixels per centimetre.
const PixelsPerUnit = 96 / 2.54

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette   styles.Palette
	scale     float64
	embedFont bool
}

// WithPalette sets the colours and stroke widths.
func WithPalette(p styles.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithPixelsPerUnit sets how many SVG user units one centimetre spans.
func WithPixelsPerUnit(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithEmbeddedFont inlines the Go Regular font so the SVG renders the same
// everywhere, at the cost of a larger file.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: styles.Default(), scale: PixelsPerUnit}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the stream as a standalone SVG document. Primitives are
// written in stream order, so later primitives paint over earlier ones.
func RenderSVG(s layout.Stream, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	f := frame{bounds: s.Bounds(), scale: r.scale}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(f.width()), num(f.height()), math.Ceil(f.width()), math.Ceil(f.height()))
	if r.embedFont {
		fmt.Fprintf(&buf, "  <defs><style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style></defs>\n",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
		num(f.width()), num(f.height()), r.palette.Background)

	for _, p := range s.Primitives {
		switch v := p.(type) {
		case layout.Box:
			r.box(&buf, f, s.Config, v)
		case layout.Line:
			r.line(&buf, f, v)
		case layout.Arc:
			r.arc(&buf, f, v)
		case layout.Arrow:
			r.arrow(&buf, f, s.Config, v)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) fontPx(pt float64) float64 {
	return pt * layout.UnitsPerPoint * r.scale
}

func (r *svgRenderer) box(buf *bytes.Buffer, f frame, c layout.Config, b layout.Box) {
	e := b.Extent()
	fmt.Fprintf(buf, `  <rect class="register" id="register-%d" x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		b.Index, num(f.x(e.MinX)), num(f.y(e.MaxY)), num(b.Size*f.scale), num(b.Size*f.scale),
		r.palette.BoxFill, r.palette.Stroke, num(r.palette.LineWidth*f.scale))
	if b.Value != "" {
		fmt.Fprintf(buf, `  <text class="value" x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			num(f.x(b.Center.X)), num(f.y(b.Center.Y)), fonts.FallbackFontFamily, num(r.fontPx(c.ValueFontSize)),
			r.palette.Text, html.EscapeString(b.Value))
	}
	if b.Name != "" {
		base, sub := nameParts(b.Name)
		fmt.Fprintf(buf, `  <text class="name" x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%s" fill="%s">%s<tspan baseline-shift="sub" font-size="70%%">%s</tspan></text>`+"\n",
			num(f.x(b.NameAt.X)), num(f.y(b.NameAt.Y)), fonts.FallbackFontFamily, num(r.fontPx(c.IndexFontSize)),
			r.palette.Text, html.EscapeString(base), html.EscapeString(sub))
	}
}

func (r *svgRenderer) line(buf *bytes.Buffer, f frame, l layout.Line) {
	fmt.Fprintf(buf, `  <polyline class="%s" points="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		l.Role, svgPoints(f, l.Points), r.palette.Stroke, num(r.palette.LineWidth*f.scale))
}

func (r *svgRenderer) arc(buf *bytes.Buffer, f frame, a layout.Arc) {
	p0, p1 := arcPoint(a, a.Start), arcPoint(a, a.End)
	large, sweep := 0, 0
	if math.Abs(a.End-a.Start) > 180 {
		large = 1
	}
	// Flipping y turns a clockwise sweep into SVG's positive direction.
	if a.End < a.Start {
		sweep = 1
	}
	rad := num(a.Radius * f.scale)
	fmt.Fprintf(buf, `  <path class="junction" d="M %s %s A %s %s 0 %d %d %s %s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		num(f.x(p0.X)), num(f.y(p0.Y)), rad, rad, large, sweep, num(f.x(p1.X)), num(f.y(p1.Y)),
		r.palette.Stroke, num(r.palette.JunctionWidth*f.scale))
}

func (r *svgRenderer) arrow(buf *bytes.Buffer, f frame, c layout.Config, a layout.Arrow) {
	head, end := arrowHead(a.Points, r.palette.ArrowHead)
	fmt.Fprintf(buf, `  <polyline class="%s" points="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		a.Role, svgPoints(f, shaft(a.Points, end)), r.palette.Stroke, num(r.palette.LineWidth*f.scale))
	fmt.Fprintf(buf, `  <polygon class="arrow-head" points="%s" fill="%s"/>`+"\n",
		svgPoints(f, head[:]), r.palette.Stroke)
	if a.Label != "" {
		fmt.Fprintf(buf, `  <text class="label" x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			num(f.x(a.LabelAt.X)), num(f.y(a.LabelAt.Y)), fonts.FallbackFontFamily, num(r.fontPx(c.ValueFontSize)),
			r.palette.Text, html.EscapeString(a.Label))
	}
}

func svgPoints(f frame, pts []layout.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(f.x(p.X)) + "," + num(f.y(p.Y))
	}
	return strings.Join(parts, " ")
}
