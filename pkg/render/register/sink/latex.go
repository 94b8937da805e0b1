package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/render"
)

// LaTeXFormats are the outputs the LaTeX chain can produce.
var LaTeXFormats = []string{"pdf", "eps", "png"}

const texBase = "lfsr"

// CompileLaTeX compiles a TikZ document produced by [RenderTikZ] and returns
// the requested artifacts keyed by format.
//
// pdflatex always runs first; pdftops converts its PDF to EPS and ImageMagick
// rasterises it to PNG at 300 dpi. All work happens in a private temporary
// directory that is removed on return, whether or not a step failed. The
// steps run in that order and stop at the first failure; artifacts already
// produced are returned together with the error.
func CompileLaTeX(ctx context.Context, tikz []byte, formats ...string) (map[string][]byte, error) {
	for _, f := range formats {
		if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format for the latex engine", f, LaTeXFormats...); err != nil {
			return nil, err
		}
	}

	dir, err := os.MkdirTemp("", "galdraw-latex-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create build directory")
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, texBase+".tex"), tikz, 0o600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s.tex", texBase)
	}

	out := make(map[string][]byte, len(formats))
	if _, err := render.RunTool(ctx, dir, nil, "pdflatex", "-interaction=batchmode", "-halt-on-error", texBase+".tex"); err != nil {
		return out, withLaTeXLog(err, dir)
	}
	pdfData, err := os.ReadFile(filepath.Join(dir, texBase+".pdf"))
	if err != nil {
		return out, errors.Wrap(errors.ErrCodeCompileFailed, err, "Failed to generate PDF")
	}
	if wants(formats, "pdf") {
		out["pdf"] = pdfData
	}

	steps := []struct {
		format string
		tool   string
		args   []string
	}{
		{"eps", "pdftops", []string{"-eps", texBase + ".pdf", texBase + ".eps"}},
		{"png", "magick", []string{"-density", "300", texBase + ".pdf", texBase + ".png"}},
	}
	for _, step := range steps {
		if !wants(formats, step.format) {
			continue
		}
		if _, err := render.RunTool(ctx, dir, nil, step.tool, step.args...); err != nil {
			return out, err
		}
		data, err := os.ReadFile(filepath.Join(dir, texBase+"."+step.format))
		if err != nil {
			return out, errors.Wrap(errors.ErrCodeCompileFailed, err, "Failed to generate %s", strings.ToUpper(step.format))
		}
		out[step.format] = data
	}
	return out, nil
}

func wants(formats []string, f string) bool {
	for _, x := range formats {
		if x == f {
			return true
		}
	}
	return false
}

// withLaTeXLog replaces the empty stderr of a batchmode pdflatex failure with
// the tail of its log file.
func withLaTeXLog(err error, dir string) error {
	if !errors.Is(err, errors.ErrCodeCompileFailed) {
		return err
	}
	log, readErr := os.ReadFile(filepath.Join(dir, texBase+".log"))
	if readErr != nil {
		return err
	}
	return errors.Wrap(errors.ErrCodeCompileFailed,
		&errors.ToolError{Tool: "pdflatex", Stage: "PDF", Stderr: logTail(string(log), 20)},
		"Failed to generate PDF")
}

func logTail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
