package sink

import (
	"math"
	"strconv"

	"github.com/matzehuels/galdraw/pkg/layout"
)

// frame maps diagram units (y up) onto an output surface with its origin in
// the top-left corner.
type frame struct {
	bounds layout.Rect
	scale  float64
}

func (f frame) x(v float64) float64 { return (v - f.bounds.MinX) * f.scale }
func (f frame) y(v float64) float64 { return (f.bounds.MaxY - v) * f.scale }
func (f frame) width() float64      { return f.bounds.Width() * f.scale }
func (f frame) height() float64     { return f.bounds.Height() * f.scale }

// arrowHead returns the tip and the two base corners of a triangular head on
// the last segment of pts, plus the shortened shaft end. The head opens at 90
// degrees, so its half-width equals its length.
func arrowHead(pts []layout.Point, length float64) (head [3]layout.Point, shaftEnd layout.Point) {
	tip := pts[len(pts)-1]
	prev := pts[len(pts)-2]
	dx, dy := tip.X-prev.X, tip.Y-prev.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return [3]layout.Point{tip, tip, tip}, tip
	}
	ux, uy := dx/d, dy/d
	if length > d {
		length = d
	}
	base := layout.Point{X: tip.X - ux*length, Y: tip.Y - uy*length}
	nx, ny := -uy*length, ux*length
	head = [3]layout.Point{
		tip,
		{X: base.X + nx, Y: base.Y + ny},
		{X: base.X - nx, Y: base.Y - ny},
	}
	return head, base
}

// shaft returns pts with the last point moved back to end.
func shaft(pts []layout.Point, end layout.Point) []layout.Point {
	out := make([]layout.Point, len(pts))
	copy(out, pts)
	out[len(out)-1] = end
	return out
}

// arcPoint returns the point on a at angle deg.
func arcPoint(a layout.Arc, deg float64) layout.Point {
	rad := deg * math.Pi / 180
	return layout.Point{
		X: a.Center.X + a.Radius*math.Cos(rad),
		Y: a.Center.Y + a.Radius*math.Sin(rad),
	}
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// nameParts splits a box name like "x_3" into its base and subscript.
func nameParts(name string) (base, sub string) {
	for i := 0; i < len(name); i++ {
		if name[i] == '_' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}
