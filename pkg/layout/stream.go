package layout

import (
	"encoding/json"
	"fmt"
)

// Stream is the ordered output of [Build]. Primitives are in emission order,
// which sinks preserve since later primitives are drawn over earlier ones.
type Stream struct {
	Config     Config      `json:"config"`
	Options    Options     `json:"options"`
	Feedback   uint8       `json:"feedback"`
	Primitives []Primitive `json:"primitives"`
}

// TapConnector groups the three primitives drawn for one tap.
type TapConnector struct {
	Index    int
	Line     Line
	Junction Arc
	Arrow    Arrow
}

// Boxes returns the register boxes in emission order.
func (s Stream) Boxes() []Box {
	var out []Box
	for _, p := range s.Primitives {
		if b, ok := p.(Box); ok {
			out = append(out, b)
		}
	}
	return out
}

// TapConnectors returns every emitted tap connector, including the repeated
// connector of a tapped last register.
func (s Stream) TapConnectors() []TapConnector {
	var out []TapConnector
	for i := 0; i+2 < len(s.Primitives); i++ {
		l, ok := s.Primitives[i].(Line)
		if !ok || l.Role != RoleTap {
			continue
		}
		arc, ok1 := s.Primitives[i+1].(Arc)
		arrow, ok2 := s.Primitives[i+2].(Arrow)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, TapConnector{Index: l.Index, Line: l, Junction: arc, Arrow: arrow})
		i += 2
	}
	return out
}

// Routes returns the routing lines emitted for a tapped last register.
func (s Stream) Routes() []Line {
	var out []Line
	for _, p := range s.Primitives {
		if l, ok := p.(Line); ok && l.Role == RoleRoute {
			out = append(out, l)
		}
	}
	return out
}

// FeedbackArrow returns the feedback path.
func (s Stream) FeedbackArrow() (Arrow, bool) { return s.arrow(RoleFeedback) }

// Output returns the output arrow.
func (s Stream) Output() (Arrow, bool) { return s.arrow(RoleOutput) }

func (s Stream) arrow(role Role) (Arrow, bool) {
	for _, p := range s.Primitives {
		if a, ok := p.(Arrow); ok && a.Role == role {
			return a, true
		}
	}
	return Arrow{}, false
}

// Bounds returns the area covered by all primitives and their labels,
// expanded by the configured border.
func (s Stream) Bounds() Rect {
	if len(s.Primitives) == 0 {
		o := s.Config.Origin
		return Rect{MinX: o.X, MinY: o.Y, MaxX: o.X, MaxY: o.Y}.Expand(s.Config.Border)
	}
	r := s.Primitives[0].Extent()
	th := s.Config.TextHeight()
	for _, p := range s.Primitives {
		r = r.Union(p.Extent())
		switch v := p.(type) {
		case Box:
			if v.Name != "" {
				r = r.Union(textRect(v.NameAt, len(v.Name), s.Config.IndexFontSize*UnitsPerPoint))
			}
		case Arrow:
			if v.Label != "" {
				r = r.Union(textRect(v.LabelAt, len(v.Label), th))
			}
		}
	}
	return r.Expand(s.Config.Border)
}

// textRect estimates the area of a label of n characters whose bottom centre
// is at p.
func textRect(p Point, n int, h float64) Rect {
	w := float64(n) * h * 0.6
	return Rect{MinX: p.X - w/2, MinY: p.Y, MaxX: p.X + w/2, MaxY: p.Y + h}
}

type streamJSON struct {
	Config     Config            `json:"config"`
	Options    Options           `json:"options"`
	Feedback   uint8             `json:"feedback"`
	Primitives []json.RawMessage `json:"primitives"`
}

// MarshalJSON encodes each primitive with a "kind" field naming its type.
func (s Stream) MarshalJSON() ([]byte, error) {
	out := streamJSON{
		Config:     s.Config,
		Options:    s.Options,
		Feedback:   s.Feedback,
		Primitives: make([]json.RawMessage, 0, len(s.Primitives)),
	}
	for _, p := range s.Primitives {
		data, err := marshalPrimitive(p)
		if err != nil {
			return nil, err
		}
		out.Primitives = append(out.Primitives, data)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a stream written by MarshalJSON.
func (s *Stream) UnmarshalJSON(data []byte) error {
	var in streamJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	prims := make([]Primitive, 0, len(in.Primitives))
	for i, raw := range in.Primitives {
		p, err := unmarshalPrimitive(raw)
		if err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
		prims = append(prims, p)
	}
	*s = Stream{Config: in.Config, Options: in.Options, Feedback: in.Feedback, Primitives: prims}
	return nil
}

func marshalPrimitive(p Primitive) ([]byte, error) {
	switch v := p.(type) {
	case Box:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			Box
		}{KindBox, v})
	case Line:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			Line
		}{KindLine, v})
	case Arc:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			Arc
		}{KindArc, v})
	case Arrow:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			Arrow
		}{KindArrow, v})
	default:
		return nil, fmt.Errorf("unknown primitive %T", p)
	}
}

func unmarshalPrimitive(raw json.RawMessage) (Primitive, error) {
	var head struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case KindBox:
		var b Box
		err := json.Unmarshal(raw, &b)
		return b, err
	case KindLine:
		var l Line
		err := json.Unmarshal(raw, &l)
		return l, err
	case KindArc:
		var a Arc
		err := json.Unmarshal(raw, &a)
		return a, err
	case KindArrow:
		var a Arrow
		err := json.Unmarshal(raw, &a)
		return a, err
	default:
		return nil, fmt.Errorf("unknown primitive kind %q", head.Kind)
	}
}
