// Package layout computes the geometry of a Galois LFSR diagram.
//
// # Overview
//
// [Build] turns a tap mask and a value vector into a [Stream]: an ordered
// list of typed draw primitives ([Box], [Line], [Arc], [Arrow]) in diagram
// units. The stream carries everything a renderer needs, so sinks never
// recompute geometry and the layout never formats output.
//
//	taps, _ := lfsr.ParseTaps("1001")
//	values, _ := lfsr.ParseValues("1111")
//	s := layout.Build(taps, values, layout.DefaultOptions())
//
// # Scaling
//
// [NewConfig] derives all sizes from the register length alone. Boxes shrink
// from 4 to 2.5 to 2 units as the register grows past 8 and 16 cells, and the
// fonts, XOR spacing and feedback distance follow the box size. A Config is a
// value: it is built fresh for each render and passed explicitly.
//
// # Coordinates
//
// Diagram units are centimetres with the y axis pointing up. Register i is
// centred at (Origin.X + i*BoxSize, Origin.Y). Tap lines rise from the top
// edge of their box to the feedback spine, which runs left to the return
// line at Origin.X - LeftFeedbackDistance. The feedback arrow then drops to
// the register row and ends at the left edge of register 0.
//
// # Emission Order
//
// Boxes and tap connectors are interleaved in ascending index order, followed
// by the feedback arrow and the output arrow. A tapped last register gets an
// extra routing line and a second, identical tap connector. Renderers that
// draw in stream order therefore reproduce the same layering every time.
package layout
