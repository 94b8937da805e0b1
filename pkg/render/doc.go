// Package render turns laid-out LFSR diagrams into files.
//
// # Overview
//
// Layout happens in package layout; this package and its subpackages only
// serialise the resulting primitive stream:
//
//   - External tool invocation and SVG conversion ([RunTool], [ToPDF],
//     [ToPNG], [ToEPS])
//   - Register diagram sinks (in [register/sink]) for SVG, TikZ, JSON, PDF
//     and PNG, plus the LaTeX compile chain
//   - Visual palettes (in [register/styles])
//   - Graphviz node-link diagrams (in [nodelink])
//
// # External Tools
//
// [RunTool] is the single place where galdraw executes other programs. A
// tool missing from PATH is reported as TOOL_UNAVAILABLE together with the
// install command; a tool that runs but fails is COMPILE_FAILED and carries
// the captured stderr:
//
//	pdf, err := render.ToPDF(ctx, svg)
//	if errors.Is(err, errors.ErrCodeToolUnavailable) {
//	    fmt.Println(errors.UserMessage(err)) // includes install hint
//	}
//
// [register/sink]: github.com/matzehuels/galdraw/pkg/render/register/sink
// [register/styles]: github.com/matzehuels/galdraw/pkg/render/register/styles
// [nodelink]: github.com/matzehuels/galdraw/pkg/render/nodelink
package render
