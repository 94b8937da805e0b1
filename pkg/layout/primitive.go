package layout

import "math"

// Point is a position in diagram units. Y grows upwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in diagram units.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Kind tags the concrete primitive type.
type Kind string

const (
	KindBox   Kind = "box"
	KindLine  Kind = "line"
	KindArc   Kind = "arc"
	KindArrow Kind = "arrow"
)

// Role identifies which part of the diagram a primitive belongs to.
type Role string

const (
	RoleRegister Role = "register" // register cell
	RoleTap      Role = "tap"      // tap connector: line, junction, arrow
	RoleRoute    Role = "route"    // extra routing from the last tapped cell
	RoleFeedback Role = "feedback" // feedback path back to register 0
	RoleOutput   Role = "output"   // output arrow
)

// NoIndex is the Index of primitives that do not belong to one register.
const NoIndex = -1

// Primitive is a single draw command. The set of implementations is closed:
// [Box], [Line], [Arc] and [Arrow].
type Primitive interface {
	Kind() Kind
	// Part returns the diagram role and register index of the primitive.
	Part() (Role, int)
	// Extent returns the geometric bounds, excluding text labels.
	Extent() Rect
	primitive()
}

// Box is a register cell drawn as a square centred on Center.
// Value and Name are empty when hidden.
type Box struct {
	Index  int     `json:"index"`
	Center Point   `json:"center"`
	Size   float64 `json:"size"`
	Value  string  `json:"value,omitempty"`
	Name   string  `json:"name,omitempty"`
	// NameAt is the bottom centre of the name label.
	NameAt Point `json:"name_at"`
}

// Line is an open polyline.
type Line struct {
	Role   Role    `json:"role"`
	Index  int     `json:"index"`
	Points []Point `json:"points"`
}

// Arc is a circular arc. Angles are in degrees measured counter-clockwise
// from the positive x axis. The arc sweeps End-Start degrees from Start, so a
// negative sweep runs clockwise: 180 to 0 is the upper half circle.
type Arc struct {
	Role   Role    `json:"role"`
	Index  int     `json:"index"`
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
}

// Arrow is a polyline with an arrow head at its last point. Label is empty
// when hidden; LabelAt is the bottom centre of the label.
type Arrow struct {
	Role    Role    `json:"role"`
	Index   int     `json:"index"`
	Points  []Point `json:"points"`
	Label   string  `json:"label,omitempty"`
	LabelAt Point   `json:"label_at"`
}

func (Box) Kind() Kind   { return KindBox }
func (Line) Kind() Kind  { return KindLine }
func (Arc) Kind() Kind   { return KindArc }
func (Arrow) Kind() Kind { return KindArrow }

func (b Box) Part() (Role, int)   { return RoleRegister, b.Index }
func (l Line) Part() (Role, int)  { return l.Role, l.Index }
func (a Arc) Part() (Role, int)   { return a.Role, a.Index }
func (a Arrow) Part() (Role, int) { return a.Role, a.Index }

func (Box) primitive()   {}
func (Line) primitive()  {}
func (Arc) primitive()   {}
func (Arrow) primitive() {}

// Extent returns the square occupied by the box.
func (b Box) Extent() Rect {
	h := b.Size / 2
	return Rect{MinX: b.Center.X - h, MinY: b.Center.Y - h, MaxX: b.Center.X + h, MaxY: b.Center.Y + h}
}

// Extent returns the bounding box of the polyline vertices.
func (l Line) Extent() Rect { return pointsExtent(l.Points) }

// Extent returns the bounding box of the full circle. Arcs are small, so
// the overestimate is harmless.
func (a Arc) Extent() Rect {
	return Rect{
		MinX: a.Center.X - a.Radius, MinY: a.Center.Y - a.Radius,
		MaxX: a.Center.X + a.Radius, MaxY: a.Center.Y + a.Radius,
	}
}

// Extent returns the bounding box of the arrow shaft.
func (a Arrow) Extent() Rect { return pointsExtent(a.Points) }

// Start returns the first point of the arrow.
func (a Arrow) Start() Point { return a.Points[0] }

// Tip returns the point the arrow head touches.
func (a Arrow) Tip() Point { return a.Points[len(a.Points)-1] }

func pointsExtent(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		r = r.Union(Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
	}
	return r
}
