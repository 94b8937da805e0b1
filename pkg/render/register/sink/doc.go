// Package sink renders laid-out LFSR diagrams to output formats.
//
// # Overview
//
// Every sink consumes a [layout.Stream] and walks its primitives in order.
// No sink computes geometry of its own apart from arrow heads, so all
// formats show the same diagram:
//
//   - [RenderSVG]: standalone SVG, with an optional embedded font
//   - [RenderTikZ]: standalone LaTeX document using TikZ
//   - [RenderJSON]: the primitive stream plus metadata
//   - [RenderPDF]: vector PDF through tdewolff/canvas
//   - [RenderPNG]: raster image through the gogpu/gg software renderer
//
// [CompileLaTeX] runs the classic toolchain on the TikZ document: pdflatex
// for PDF, pdftops for EPS and ImageMagick for PNG.
//
// # Options
//
// Sinks take functional options. Colours and stroke widths come from a
// [styles.Palette]:
//
//	svg := sink.RenderSVG(stream, sink.WithPalette(styles.Blueprint))
//	tex := sink.RenderTikZ(stream, sink.WithTikZPalette(styles.Classic))
//
// [styles.Palette]: github.com/matzehuels/galdraw/pkg/render/register/styles.Palette
package sink
