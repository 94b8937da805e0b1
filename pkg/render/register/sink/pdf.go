package sink

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/galdraw/pkg/fonts"
	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/render/register/styles"
)

// mmPerUnit converts diagram centimetres to canvas millimetres.
const mmPerUnit = 10

// subscriptScale is the size of a name subscript relative to its base.
const subscriptScale = 0.7

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	palette styles.Palette
}

// WithPDFPalette sets the colours and stroke widths.
func WithPDFPalette(p styles.Palette) PDFOption { return func(r *pdfRenderer) { r.palette = p } }

// RenderPDF draws the stream into a single-page vector PDF using the
// tdewolff/canvas PDF writer. The page matches the diagram bounds, so one
// centimetre in the diagram is one centimetre on paper. No external tools are
// needed.
func RenderPDF(s layout.Stream, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{palette: styles.Default()}
	for _, opt := range opts {
		opt(&r)
	}

	family := canvas.NewFontFamily("galdraw")
	if err := family.LoadFont(fonts.RegularTTF(), 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	b := s.Bounds()
	w, h := b.Width()*mmPerUnit, b.Height()*mmPerUnit
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	d := pdfDrawer{ctx: ctx, bounds: b, palette: r.palette, family: family}

	ctx.SetFillColor(canvas.Hex(r.palette.Background))
	ctx.SetStrokeColor(color.RGBA{})
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	for _, p := range s.Primitives {
		switch v := p.(type) {
		case layout.Box:
			d.box(s.Config, v)
		case layout.Line:
			d.polyline(v.Points, r.palette.LineWidth)
		case layout.Arc:
			d.arc(v)
		case layout.Arrow:
			d.arrow(s.Config, v)
		}
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfDrawer struct {
	ctx     *canvas.Context
	bounds  layout.Rect
	palette styles.Palette
	family  *canvas.FontFamily
}

// pt maps a diagram point onto the page. canvas uses a y-up coordinate
// system by default, like the diagram.
func (d pdfDrawer) pt(p layout.Point) (float64, float64) {
	return (p.X - d.bounds.MinX) * mmPerUnit, (p.Y - d.bounds.MinY) * mmPerUnit
}

func (d pdfDrawer) face(sizePt float64) *canvas.FontFace {
	return d.family.Face(sizePt, canvas.Hex(d.palette.Text), canvas.FontRegular, canvas.FontNormal)
}

func (d pdfDrawer) stroke(width float64) {
	d.ctx.SetFillColor(color.RGBA{})
	d.ctx.SetStrokeColor(canvas.Hex(d.palette.Stroke))
	d.ctx.SetStrokeWidth(width * mmPerUnit)
}

func (d pdfDrawer) box(c layout.Config, b layout.Box) {
	e := b.Extent()
	x, y := d.pt(layout.Point{X: e.MinX, Y: e.MinY})
	d.ctx.SetFillColor(canvas.Hex(d.palette.BoxFill))
	d.ctx.SetStrokeColor(canvas.Hex(d.palette.Stroke))
	d.ctx.SetStrokeWidth(d.palette.LineWidth * mmPerUnit)
	d.ctx.DrawPath(x, y, canvas.Rectangle(b.Size*mmPerUnit, b.Size*mmPerUnit))

	if b.Value != "" {
		face := d.face(c.ValueFontSize)
		cx, cy := d.pt(b.Center)
		d.ctx.DrawText(cx, cy-face.Metrics().CapHeight/2, canvas.NewTextLine(face, b.Value, canvas.Center))
	}
	if b.Name != "" {
		base, sub := nameParts(b.Name)
		bf := d.face(c.IndexFontSize)
		sf := d.face(c.IndexFontSize * subscriptScale)
		wb, ws := bf.TextWidth(base), sf.TextWidth(sub)
		nx, ny := d.pt(b.NameAt)
		left := nx - (wb+ws)/2
		d.ctx.DrawText(left, ny, canvas.NewTextLine(bf, base, canvas.Left))
		d.ctx.DrawText(left+wb, ny-bf.Metrics().CapHeight*0.3, canvas.NewTextLine(sf, sub, canvas.Left))
	}
}

func (d pdfDrawer) polyline(pts []layout.Point, width float64) {
	if len(pts) < 2 {
		return
	}
	p := &canvas.Path{}
	p.MoveTo(d.pt(pts[0]))
	for _, q := range pts[1:] {
		p.LineTo(d.pt(q))
	}
	d.stroke(width)
	d.ctx.DrawPath(0, 0, p)
}

func (d pdfDrawer) arc(a layout.Arc) {
	p := &canvas.Path{}
	p.MoveTo(d.pt(arcPoint(a, a.Start)))
	r := a.Radius * mmPerUnit
	p.Arc(r, r, 0, a.Start, a.End)
	d.stroke(d.palette.JunctionWidth)
	d.ctx.DrawPath(0, 0, p)
}

func (d pdfDrawer) arrow(c layout.Config, a layout.Arrow) {
	head, end := arrowHead(a.Points, d.palette.ArrowHead)
	d.polyline(shaft(a.Points, end), d.palette.LineWidth)

	p := &canvas.Path{}
	p.MoveTo(d.pt(head[0]))
	p.LineTo(d.pt(head[1]))
	p.LineTo(d.pt(head[2]))
	p.Close()
	d.ctx.SetFillColor(canvas.Hex(d.palette.Stroke))
	d.ctx.SetStrokeColor(color.RGBA{})
	d.ctx.DrawPath(0, 0, p)

	if a.Label != "" {
		x, y := d.pt(a.LabelAt)
		d.ctx.DrawText(x, y, canvas.NewTextLine(d.face(c.ValueFontSize), a.Label, canvas.Center))
	}
}
