// Package pkg provides the libraries behind galdraw, which draws Galois
// linear feedback shift registers.
//
// # Overview
//
// A register is given as a tap mask and a value vector, or as its
// characteristic polynomial. galdraw turns it into an ordered stream of
// geometric primitives and serialises that stream in several formats.
//
//	taps/values or polynomial
//	         ↓
//	    [lfsr] package (parse, validate, feedback)
//	         ↓
//	    [layout] package (scaling policy + primitive stream)
//	         ↓
//	    [render/register/sink] package (SVG, TikZ, JSON, PDF, PNG, EPS)
//
// [pipeline] ties the stages together with caching ([cache]) and hooks
// ([observability]). [config] reads the TOML config file and [httputil]
// holds the HTTP server helpers.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/galdraw/pkg/layout"
//	    "github.com/matzehuels/galdraw/pkg/lfsr"
//	    "github.com/matzehuels/galdraw/pkg/render/register/sink"
//	)
//
//	reg, _ := lfsr.NewRegister("1001", "1111")
//	s, _ := layout.BuildRegister(reg, layout.DefaultOptions())
//	svg := sink.RenderSVG(s)
//
// # Main Packages
//
//   - [lfsr]: bit vectors, registers, feedback and polynomial notation
//   - [layout]: the layout engine and its scaling policy
//   - [render]: external tool invocation (rsvg-convert, pdflatex, pdftops, magick)
//   - [render/register/sink]: serialisers for the register diagram
//   - [render/register/styles]: named palettes
//   - [render/nodelink]: Graphviz node-link view of a register
//   - [pipeline]: validate → layout → render with caching
//   - [cache]: file, Redis and null caches
//   - [errors]: coded errors shared by the CLI and the HTTP API
//
// [lfsr]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/lfsr
// [layout]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/render
// [render/register/sink]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/render/register/sink
// [render/register/styles]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/render/register/styles
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/observability
// [config]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/config
// [httputil]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/galdraw/pkg/errors
package pkg
