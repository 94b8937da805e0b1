package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/galdraw/pkg/errors"
)

// Tool describes an external program used to produce an artifact.
type Tool struct {
	Name  string // executable looked up on PATH
	Stage string // artifact it produces, e.g. "PDF"
	Hint  string // install instructions
}

var tools = map[string]Tool{
	"pdflatex": {
		Name:  "pdflatex",
		Stage: "PDF",
		Hint:  "Install a TeX distribution:\n  macOS:  brew install --cask mactex-no-gui\n  Linux:  apt install texlive-latex-extra",
	},
	"pdftops": {
		Name:  "pdftops",
		Stage: "EPS",
		Hint:  "Install poppler:\n  macOS:  brew install poppler\n  Linux:  apt install poppler-utils",
	},
	"magick": {
		Name:  "magick",
		Stage: "PNG",
		Hint:  "Install ImageMagick:\n  macOS:  brew install imagemagick\n  Linux:  apt install imagemagick",
	},
	"rsvg-convert": {
		Name: "rsvg-convert",
		Hint: "Install librsvg:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin",
	},
}

// LookupTool returns the description of a known tool. Unknown tools get a
// generic entry.
func LookupTool(name string) Tool {
	if t, ok := tools[name]; ok {
		return t
	}
	return Tool{Name: name, Stage: "output"}
}

// Available reports whether the named tool is on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// RunTool runs an external tool in dir, feeding stdin when non-nil, and
// returns its standard output.
//
// A tool missing from PATH yields TOOL_UNAVAILABLE with install hints. A
// non-zero exit yields COMPILE_FAILED wrapping an [errors.ToolError] with the
// captured stderr.
func RunTool(ctx context.Context, dir string, stdin []byte, name string, args ...string) ([]byte, error) {
	return runStage(ctx, LookupTool(name).Stage, dir, stdin, name, args...)
}

func runStage(ctx context.Context, stage, dir string, stdin []byte, name string, args ...string) ([]byte, error) {
	t := LookupTool(name)
	if _, err := exec.LookPath(name); err != nil {
		msg := fmt.Sprintf("Failed to generate %s. Check if %s is installed.", stage, name)
		if t.Hint != "" {
			msg += "\n" + t.Hint
		}
		return nil, errors.Wrap(errors.ErrCodeToolUnavailable, err, "%s", msg)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "%s interrupted", name)
		}
		toolErr := &errors.ToolError{Tool: name, Stage: stage, Stderr: strings.TrimSpace(errBuf.String())}
		return nil, errors.Wrap(errors.ErrCodeCompileFailed, toolErr, "Failed to generate %s", stage)
	}
	return out.Bytes(), nil
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "PDF", "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(ctx, svg, "PNG", "png", "-z", fmt.Sprintf("%.2f", scale))
}

// ToEPS converts SVG bytes to Encapsulated PostScript using rsvg-convert.
func ToEPS(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "EPS", "eps")
}

func rsvgConvert(ctx context.Context, svg []byte, stage, format string, extraArgs ...string) ([]byte, error) {
	args := append([]string{"-f", format}, extraArgs...)
	return runStage(ctx, stage, "", svg, "rsvg-convert", args...)
}
