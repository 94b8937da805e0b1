package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/matzehuels/galdraw/pkg/fonts"
	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/render/register/styles"
)

// DefaultDPI is the raster resolution of [RenderPNG].
const DefaultDPI = 150

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette styles.Palette
	dpi     float64
}

// WithPNGPalette sets the colours and stroke widths.
func WithPNGPalette(p styles.Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// WithDPI sets the raster resolution in dots per inch.
func WithDPI(dpi float64) PNGOption {
	return func(r *pngRenderer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// RenderPNG rasterises the stream with the gogpu/gg software renderer.
// No external tools are needed.
func RenderPNG(s layout.Stream, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{palette: styles.Default(), dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&r)
	}

	f := frame{bounds: s.Bounds(), scale: r.dpi / 2.54}
	dc := gg.NewContext(int(math.Ceil(f.width())), int(math.Ceil(f.height())))
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(r.palette.Background))

	source, err := text.NewFontSource(fonts.RegularTTF())
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	defer source.Close()

	d := pngDrawer{dc: dc, f: f, palette: r.palette, source: source}
	for _, p := range s.Primitives {
		var err error
		switch v := p.(type) {
		case layout.Box:
			err = d.box(s.Config, v)
		case layout.Line:
			err = d.polyline(v.Points, r.palette.LineWidth)
		case layout.Arc:
			err = d.arc(v)
		case layout.Arrow:
			err = d.arrow(s.Config, v)
		}
		if err != nil {
			return nil, fmt.Errorf("draw %s: %w", p.Kind(), err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

type pngDrawer struct {
	dc      *gg.Context
	f       frame
	palette styles.Palette
	source  *text.FontSource
}

func (d pngDrawer) px(pt float64) float64 { return pt * layout.UnitsPerPoint * d.f.scale }

func (d pngDrawer) box(c layout.Config, b layout.Box) error {
	e := b.Extent()
	x, y, size := d.f.x(e.MinX), d.f.y(e.MaxY), b.Size*d.f.scale

	d.dc.DrawRectangle(x, y, size, size)
	d.dc.SetHexColor(d.palette.BoxFill)
	if err := d.dc.Fill(); err != nil {
		return err
	}
	d.dc.DrawRectangle(x, y, size, size)
	d.dc.SetHexColor(d.palette.Stroke)
	d.dc.SetLineWidth(d.palette.LineWidth * d.f.scale)
	if err := d.dc.Stroke(); err != nil {
		return err
	}

	d.dc.SetHexColor(d.palette.Text)
	if b.Value != "" {
		d.dc.SetFont(d.source.Face(d.px(c.ValueFontSize)))
		d.dc.DrawStringAnchored(b.Value, d.f.x(b.Center.X), d.f.y(b.Center.Y), 0.5, 0.35)
	}
	if b.Name != "" {
		base, sub := nameParts(b.Name)
		bf := d.source.Face(d.px(c.IndexFontSize))
		sf := d.source.Face(d.px(c.IndexFontSize * subscriptScale))
		wb, hb := text.Measure(base, bf)
		ws, _ := text.Measure(sub, sf)
		left := d.f.x(b.NameAt.X) - (wb+ws)/2
		baseline := d.f.y(b.NameAt.Y)
		d.dc.SetFont(bf)
		d.dc.DrawString(base, left, baseline)
		d.dc.SetFont(sf)
		d.dc.DrawString(sub, left+wb, baseline+hb*0.2)
	}
	return nil
}

func (d pngDrawer) polyline(pts []layout.Point, width float64) error {
	if len(pts) < 2 {
		return nil
	}
	d.dc.ClearPath()
	d.dc.MoveTo(d.f.x(pts[0].X), d.f.y(pts[0].Y))
	for _, p := range pts[1:] {
		d.dc.LineTo(d.f.x(p.X), d.f.y(p.Y))
	}
	d.dc.SetHexColor(d.palette.Stroke)
	d.dc.SetLineWidth(width * d.f.scale)
	return d.dc.Stroke()
}

// arc draws in screen space where y points down, so diagram angles are
// negated. DrawArc always sweeps with increasing angle; the two endpoints
// are swapped to keep the same arc.
func (d pngDrawer) arc(a layout.Arc) error {
	a1, a2 := -a.Start, -a.End
	if a2 < a1 {
		a1, a2 = a2, a1
	}
	d.dc.ClearPath()
	d.dc.DrawArc(d.f.x(a.Center.X), d.f.y(a.Center.Y), a.Radius*d.f.scale, a1*math.Pi/180, a2*math.Pi/180)
	d.dc.SetHexColor(d.palette.Stroke)
	d.dc.SetLineWidth(d.palette.JunctionWidth * d.f.scale)
	return d.dc.Stroke()
}

func (d pngDrawer) arrow(c layout.Config, a layout.Arrow) error {
	head, end := arrowHead(a.Points, d.palette.ArrowHead)
	if err := d.polyline(shaft(a.Points, end), d.palette.LineWidth); err != nil {
		return err
	}

	d.dc.ClearPath()
	d.dc.MoveTo(d.f.x(head[0].X), d.f.y(head[0].Y))
	d.dc.LineTo(d.f.x(head[1].X), d.f.y(head[1].Y))
	d.dc.LineTo(d.f.x(head[2].X), d.f.y(head[2].Y))
	d.dc.ClosePath()
	d.dc.SetHexColor(d.palette.Stroke)
	if err := d.dc.Fill(); err != nil {
		return err
	}

	if a.Label != "" {
		d.dc.SetHexColor(d.palette.Text)
		d.dc.SetFont(d.source.Face(d.px(c.ValueFontSize)))
		d.dc.DrawStringAnchored(a.Label, d.f.x(a.LabelAt.X), d.f.y(a.LabelAt.Y), 0.5, 0)
	}
	return nil
}
