package layout

import (
	"strconv"

	"github.com/matzehuels/galdraw/pkg/lfsr"
)

// Options holds the display flags of a render.
type Options struct {
	ShowValues bool `json:"show_values"`
	ShowNames  bool `json:"show_names"`
}

// DefaultOptions shows both values and names.
func DefaultOptions() Options {
	return Options{ShowValues: true, ShowNames: true}
}

// BuildRegister validates r and lays it out.
func BuildRegister(r lfsr.Register, opts Options) (Stream, error) {
	if err := r.Validate(); err != nil {
		return Stream{}, err
	}
	return Build(r.Taps, r.Values, opts), nil
}

// Build lays out a Galois LFSR and returns its primitive stream.
//
// taps and values must have the same length L with 1 ≤ L ≤ 32; use
// [BuildRegister] when the input has not been validated. For each register i
// in ascending order Build emits the box, then the tap connector when i is
// tapped. When the last register is tapped it also emits a routing line from
// the right edge of that box to the feedback spine, followed by a second
// copy of its tap connector. The feedback arrow and the output arrow close
// the stream.
//
// Build is deterministic: equal inputs produce equal streams.
func Build(taps, values lfsr.Bits, opts Options) Stream {
	n := len(taps)
	cfg := NewConfig(n)
	b := builder{cfg: cfg, opts: opts}
	if n == 0 {
		return b.stream(0)
	}

	lastTap := 0
	for i := 0; i < n; i++ {
		b.box(i, values[i])
		if taps[i] != 1 {
			continue
		}
		b.tap(i)
		if i == n-1 {
			b.route(i)
			b.tap(i)
		}
		lastTap = i
	}

	fb := lfsr.Feedback(taps, values)
	b.feedback(lastTap, fb)
	b.output(n-1, values[n-1])
	return b.stream(fb)
}

type builder struct {
	cfg  Config
	opts Options
	out  []Primitive
}

func (b *builder) emit(p Primitive) { b.out = append(b.out, p) }

func (b *builder) stream(fb uint8) Stream {
	return Stream{Config: b.cfg, Options: b.opts, Feedback: fb, Primitives: b.out}
}

func (b *builder) box(i int, value uint8) {
	c := b.cfg
	x := c.CellX(i)
	box := Box{
		Index:  i,
		Center: Point{X: x, Y: c.Origin.Y},
		Size:   c.BoxSize,
		NameAt: Point{X: x, Y: c.BoxTop() - c.BoxBelowTextDistance},
	}
	if b.opts.ShowValues {
		box.Value = bitLabel(value)
	}
	if b.opts.ShowNames {
		box.Name = "x_" + strconv.Itoa(i)
	}
	b.emit(box)
}

// tap emits the stub from the top of box i to the spine, the half-circle
// junction on the box edge and the arrow pointing into the junction.
func (b *builder) tap(i int) {
	c := b.cfg
	x, top, r := c.CellX(i), c.BoxTop(), c.JunctionRadius()
	b.emit(Line{
		Role:   RoleTap,
		Index:  i,
		Points: []Point{{X: x, Y: top}, {X: x, Y: c.SpineY()}},
	})
	b.emit(Arc{
		Role:   RoleTap,
		Index:  i,
		Center: Point{X: x, Y: top},
		Radius: r,
		Start:  180,
		End:    0,
	})
	b.emit(Arrow{
		Role:   RoleTap,
		Index:  i,
		Points: []Point{{X: x, Y: top + 3*r}, {X: x, Y: top + r}},
	})
}

// route connects the output side of the last register to the spine.
func (b *builder) route(i int) {
	c := b.cfg
	x := c.CellX(i) + c.BoxSize
	b.emit(Line{
		Role:  RoleRoute,
		Index: i,
		Points: []Point{
			{X: x, Y: c.Origin.Y},
			{X: x, Y: c.SpineY()},
			{X: c.FeedbackX(), Y: c.SpineY()},
		},
	})
}

func (b *builder) feedback(lastTap int, fb uint8) {
	c := b.cfg
	end := c.Origin.X - c.BoxSize/2
	a := Arrow{
		Role:  RoleFeedback,
		Index: NoIndex,
		Points: []Point{
			{X: c.CellX(lastTap), Y: c.SpineY()},
			{X: c.FeedbackX(), Y: c.SpineY()},
			{X: c.FeedbackX(), Y: c.Origin.Y},
			{X: end, Y: c.Origin.Y},
		},
		LabelAt: Point{X: (c.FeedbackX() + end) / 2, Y: c.Origin.Y + c.LabelShift()},
	}
	if b.opts.ShowValues {
		a.Label = bitLabel(fb)
	}
	b.emit(a)
}

func (b *builder) output(last int, value uint8) {
	c := b.cfg
	x1 := c.CellX(last) + c.BoxSize/2
	x2 := c.CellX(last) + 2*c.BoxSize
	a := Arrow{
		Role:    RoleOutput,
		Index:   NoIndex,
		Points:  []Point{{X: x1, Y: c.Origin.Y}, {X: x2, Y: c.Origin.Y}},
		LabelAt: Point{X: (x1 + x2) / 2, Y: c.Origin.Y + c.LabelShift()},
	}
	if b.opts.ShowValues {
		a.Label = bitLabel(value)
	}
	b.emit(a)
}

func bitLabel(v uint8) string {
	if v == 0 {
		return "0"
	}
	return "1"
}
