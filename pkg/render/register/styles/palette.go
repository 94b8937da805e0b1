package styles

import (
	"regexp"
	"sort"

	"github.com/matzehuels/galdraw/pkg/errors"
)

// Palette holds the colours and stroke widths shared by every sink.
// Widths are in diagram units (cm).
type Palette struct {
	Name          string  `json:"name" toml:"-"`
	Background    string  `json:"background" toml:"background"`
	Stroke        string  `json:"stroke" toml:"stroke"`
	BoxFill       string  `json:"box_fill" toml:"box_fill"`
	Text          string  `json:"text" toml:"text"`
	LineWidth     float64 `json:"line_width" toml:"line_width"`
	JunctionWidth float64 `json:"junction_width" toml:"junction_width"`
	ArrowHead     float64 `json:"arrow_head" toml:"arrow_head"`
}

// Classic is the default black-on-white look.
var Classic = Palette{
	Name:          "classic",
	Background:    "#ffffff",
	Stroke:        "#000000",
	BoxFill:       "#ffffff",
	Text:          "#000000",
	LineWidth:     0.1,
	JunctionWidth: 0.12,
	ArrowHead:     0.5,
}

// Blueprint draws white strokes on a dark blue background.
var Blueprint = Palette{
	Name:          "blueprint",
	Background:    "#1b3a6b",
	Stroke:        "#f4f7fb",
	BoxFill:       "#24508f",
	Text:          "#f4f7fb",
	LineWidth:     0.1,
	JunctionWidth: 0.12,
	ArrowHead:     0.5,
}

var registry = map[string]Palette{
	Classic.Name:   Classic,
	Blueprint.Name: Blueprint,
}

// Default returns the classic palette.
func Default() Palette { return Classic }

// Lookup returns the named palette. Unknown names are INVALID_STYLE.
func Lookup(name string) (Palette, error) {
	if name == "" {
		return Default(), nil
	}
	p, ok := registry[name]
	if !ok {
		return Palette{}, errors.ValidateChoice(errors.ErrCodeInvalidStyle, "style", name, Names()...)
	}
	return p, nil
}

// Names returns the registered palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge returns p with every non-zero field of o applied on top.
func (p Palette) Merge(o Palette) Palette {
	if o.Background != "" {
		p.Background = o.Background
	}
	if o.Stroke != "" {
		p.Stroke = o.Stroke
	}
	if o.BoxFill != "" {
		p.BoxFill = o.BoxFill
	}
	if o.Text != "" {
		p.Text = o.Text
	}
	if o.LineWidth > 0 {
		p.LineWidth = o.LineWidth
	}
	if o.JunctionWidth > 0 {
		p.JunctionWidth = o.JunctionWidth
	}
	if o.ArrowHead > 0 {
		p.ArrowHead = o.ArrowHead
	}
	return p
}

var hexColor = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// Validate checks that colours are #rgb or #rrggbb and widths are positive.
func (p Palette) Validate() error {
	for _, c := range []struct{ field, value string }{
		{"background", p.Background},
		{"stroke", p.Stroke},
		{"box_fill", p.BoxFill},
		{"text", p.Text},
	} {
		if !hexColor.MatchString(c.value) {
			return errors.New(errors.ErrCodeInvalidStyle, "style.%s must be a hex colour like #ffffff, got %q", c.field, c.value)
		}
	}
	if p.LineWidth <= 0 || p.JunctionWidth <= 0 || p.ArrowHead <= 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "style widths must be positive")
	}
	return nil
}

// RGB returns the components of a validated hex colour in the range 0-1.
func RGB(hex string) (r, g, b float64) {
	s := hex[1:]
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	return float64(hexByte(s[0:2])) / 255, float64(hexByte(s[2:4])) / 255, float64(hexByte(s[4:6])) / 255
}

// HexDigits returns the upper-case six digit form without the leading '#',
// as used by xcolor's HTML model.
func HexDigits(hex string) string {
	r, g, b := RGB(hex)
	const digits = "0123456789ABCDEF"
	out := make([]byte, 0, 6)
	for _, v := range []float64{r, g, b} {
		n := int(v*255 + 0.5)
		out = append(out, digits[n>>4], digits[n&0xf])
	}
	return string(out)
}

func hexByte(s string) uint8 {
	var v uint8
	for i := 0; i < len(s); i++ {
		v <<= 4
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			v |= c - '0'
		case c >= 'a' && c <= 'f':
			v |= c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v |= c - 'A' + 10
		}
	}
	return v
}
