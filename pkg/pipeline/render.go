package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/lfsr"
	"github.com/matzehuels/galdraw/pkg/observability"
	"github.com/matzehuels/galdraw/pkg/render"
	"github.com/matzehuels/galdraw/pkg/render/nodelink"
	"github.com/matzehuels/galdraw/pkg/render/register/sink"
	"github.com/matzehuels/galdraw/pkg/render/register/styles"
)

// nodelinkScale is the raster scale for node-link PNGs.
const nodelinkScale = 2.0

// Render generates output artifacts in opts.Formats.
//
// On failure the artifacts produced so far are returned with the error.
func Render(ctx context.Context, r lfsr.Register, s layout.Stream, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.VizType, opts.Formats)
	start := time.Now()

	var (
		artifacts map[string][]byte
		err       error
	)
	if opts.IsNodelink() {
		artifacts, err = renderNodelink(ctx, r, opts)
	} else {
		artifacts, err = renderRegister(ctx, r, s, opts)
	}

	hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// renderRegister renders the register diagram. With the latex engine, the
// PDF, PNG and EPS outputs come from one pdflatex run.
func renderRegister(ctx context.Context, r lfsr.Register, s layout.Stream, opts Options) (map[string][]byte, error) {
	p := opts.palette
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = sink.RenderSVG(s, sink.WithPalette(p))
		}
		return svg
	}

	var latexFormats []string
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatJSON:
			data, err = sink.RenderJSON(s, sink.WithJSONRegister(r), sink.WithJSONStyle(p.Name))
		case FormatTikZ:
			data = sink.RenderTikZ(s, sink.WithTikZPalette(p))
		case FormatPDF, FormatPNG, FormatEPS:
			if opts.Engine == EngineLaTeX {
				latexFormats = append(latexFormats, format)
				continue
			}
			data, err = renderNative(ctx, s, format, p, svgOnce)
		default:
			return artifacts, errors.New(errors.ErrCodeInvalidFormat, "unsupported register format: %s", format)
		}
		if err != nil {
			return artifacts, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	if len(latexFormats) > 0 {
		tikz := sink.RenderTikZ(s, sink.WithTikZPalette(p))
		compiled, err := sink.CompileLaTeX(ctx, tikz, latexFormats...)
		for f, data := range compiled {
			artifacts[f] = data
		}
		if err != nil {
			return artifacts, err
		}
	}
	return artifacts, nil
}

func renderNative(ctx context.Context, s layout.Stream, format string, p styles.Palette, svg func() []byte) ([]byte, error) {
	switch format {
	case FormatPDF:
		return sink.RenderPDF(s, sink.WithPDFPalette(p))
	case FormatPNG:
		return sink.RenderPNG(s, sink.WithPNGPalette(p))
	default:
		return render.ToEPS(ctx, svg())
	}
}

// renderNodelink renders the Graphviz view of the register.
func renderNodelink(ctx context.Context, r lfsr.Register, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(r, nodelink.Options{ShowValues: !opts.HideValues, ShowNames: !opts.HideNames})
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, nodelinkScale)
		default:
			return artifacts, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}
		if err != nil {
			return artifacts, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
