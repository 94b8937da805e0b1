// Package nodelink draws an LFSR as a Graphviz graph instead of a register
// diagram.
//
// Each cell becomes a box node on a single rank, joined to its neighbour by
// a shift edge. Tapped cells have a dashed edge into a circular XOR node,
// whose output loops back into cell 0, and the last cell feeds an "out"
// node.
//
//	dot := nodelink.ToDOT(r, nodelink.Options{ShowValues: true, ShowNames: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2)
//
// Layout runs in-process through [github.com/goccy/go-graphviz]. PDF and
// PNG are converted from the SVG by rsvg-convert (librsvg).
package nodelink
