package layout

import "math"

// Fixed drawing parameters that do not scale with register length.
const (
	// DefaultOriginX and DefaultOriginY place the centre of register 0.
	DefaultOriginX = 25.0
	DefaultOriginY = 20.0

	// BoxBelowTextDistance is how far the box name label is shifted down from
	// the top edge of its box.
	BoxBelowTextDistance = 6.0

	// XORSize is the clearance between the top of a tap stub and the
	// feedback spine.
	XORSize = 1.0

	// Border is the empty frame added around the diagram (15 mm).
	Border = 1.5
)

// UnitsPerPoint converts font sizes in points to diagram units (cm).
const UnitsPerPoint = 2.54 / 72

// Config holds the drawing parameters derived from the register length.
// It is computed once per render by [NewConfig] and never mutated.
type Config struct {
	Length               int     `json:"length"`
	BoxSize              float64 `json:"box_size"`
	ValueFontSize        float64 `json:"value_font_size"`
	IndexFontSize        float64 `json:"index_font_size"`
	XORSpacing           float64 `json:"xor_spacing"`
	XORSize              float64 `json:"xor_size"`
	LeftFeedbackDistance float64 `json:"left_feedback_distance"`
	BoxBelowTextDistance float64 `json:"box_below_text_distance"`
	Border               float64 `json:"border"`
	Origin               Point   `json:"origin"`
}

// NewConfig returns the drawing parameters for a register of the given
// length. It is a pure function of length and is defined for every int,
// although callers only pass 1..32.
func NewConfig(length int) Config {
	bs := BoxSize(length)
	return Config{
		Length:               length,
		BoxSize:              bs,
		ValueFontSize:        FontSize(bs),
		IndexFontSize:        FontSize(bs),
		XORSpacing:           bs / 2,
		XORSize:              XORSize,
		LeftFeedbackDistance: 2 * bs,
		BoxBelowTextDistance: BoxBelowTextDistance,
		Border:               Border,
		Origin:               Point{X: DefaultOriginX, Y: DefaultOriginY},
	}
}

// BoxSize returns the register box edge length: 4 up to 8 cells, 2.5 up to
// 16 cells and 2 beyond.
func BoxSize(length int) float64 {
	switch {
	case length <= 8:
		return 4
	case length <= 16:
		return 2.5
	default:
		return 2
	}
}

// FontSize returns the label font size in points for a box size.
func FontSize(boxSize float64) float64 {
	return math.Floor(30 * boxSize / 4)
}

// JunctionRadius is the radius of the half-circle drawn where a tap line
// meets its box.
func (c Config) JunctionRadius() float64 { return c.BoxSize / 6 }

// LabelShift is the vertical offset of arrow labels above their arrow.
func (c Config) LabelShift() float64 { return c.BoxSize / 4 }

// CellX returns the x coordinate of the centre of register i.
func (c Config) CellX(i int) float64 { return c.Origin.X + float64(i)*c.BoxSize }

// BoxTop returns the y coordinate of the top edge of every register box.
func (c Config) BoxTop() float64 { return c.Origin.Y + c.BoxSize/2 }

// SpineY returns the height of the horizontal feedback spine.
func (c Config) SpineY() float64 { return c.BoxTop() + c.XORSpacing + c.XORSize }

// FeedbackX returns the x coordinate of the vertical feedback return line.
func (c Config) FeedbackX() float64 { return c.Origin.X - c.LeftFeedbackDistance }

// TextHeight returns the height of a value label in diagram units.
func (c Config) TextHeight() float64 { return c.ValueFontSize * UnitsPerPoint }
