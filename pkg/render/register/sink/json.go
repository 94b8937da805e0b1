package sink

import (
	"encoding/json"

	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/lfsr"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	register *lfsr.Register
	style    string
}

// WithJSONRegister records the input register so the document can be
// re-rendered without the original command line.
func WithJSONRegister(r lfsr.Register) JSONOption {
	return func(j *jsonRenderer) { j.register = &r }
}

// WithJSONStyle records the palette name in the output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

type jsonOutput struct {
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Bounds     layout.Rect   `json:"bounds"`
	Style      string        `json:"style,omitempty"`
	Taps       string        `json:"taps,omitempty"`
	Values     string        `json:"values,omitempty"`
	Polynomial string        `json:"polynomial,omitempty"`
	Feedback   uint8         `json:"feedback"`
	Layout     layout.Stream `json:"layout"`
}

// RenderJSON exports the primitive stream and its metadata as a
// pretty-printed JSON document. Every primitive carries a "kind" field, and
// the "layout" member decodes back into an identical [layout.Stream].
func RenderJSON(s layout.Stream, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	b := s.Bounds()
	out := jsonOutput{
		Width:    b.Width(),
		Height:   b.Height(),
		Bounds:   b,
		Style:    r.style,
		Feedback: s.Feedback,
		Layout:   s,
	}
	if r.register != nil {
		out.Taps = r.register.Taps.String()
		out.Values = r.register.Values.String()
		out.Polynomial = lfsr.FormatPolynomial(r.register.Taps)
	}
	return json.MarshalIndent(out, "", "  ")
}

// ReadJSON decodes the layout member of a document written by [RenderJSON].
func ReadJSON(data []byte) (layout.Stream, error) {
	var doc struct {
		Layout layout.Stream `json:"layout"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return layout.Stream{}, err
	}
	return doc.Layout, nil
}
