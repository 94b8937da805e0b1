package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/pipeline"
)

// inputFlags describes the register and its labels. They are shared by
// render, inspect and edit.
type inputFlags struct {
	taps       string
	values     string
	poly       string
	hideValues bool
	hideNames  bool
}

func (f *inputFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.taps, "taps", "", "tap sequence, rightmost bit is cell 0 (default 1001)")
	fs.StringVar(&f.values, "init-values", "", "initial cell values (default all ones)")
	fs.StringVar(&f.poly, "poly", "", `characteristic polynomial, e.g. "x^4 + x^3 + 1" (replaces --taps)`)
	fs.BoolVar(&f.hideValues, "hide-values", false, "do not draw cell values")
	fs.BoolVar(&f.hideNames, "hide-names", false, "do not draw cell names")
}

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	inputFlags
	formats string // comma-separated, "all" expands to pdf,png,eps
	engine  string // native or latex
	vizType string // register or nodelink
	style   string // named palette
	output  string // base path without extension, "-" for stdout
	noCache bool
	refresh bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an LFSR diagram",
		Long: `Render a Galois LFSR diagram.

Each requested format is written to <output>.<ext>. The native engine draws
PDF and PNG in-process; the latex engine compiles TikZ with pdflatex, pdftops
and ImageMagick, which must be installed.`,
		Example: `  galdraw render
  galdraw render --taps 10010 --init-values 01101 -f all
  galdraw render --poly "x^16 + x^14 + x^13 + x^11 + 1" -f svg,tikz -o fibonacci
  galdraw render -t nodelink -f dot -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderDefaults(cmd.Flags(), &f)
			return c.runRender(cmd.Context(), f)
		},
	}

	f.bind(cmd.Flags())
	cmd.Flags().StringVarP(&f.formats, "format", "f", pipeline.DefaultFormat, "output format(s): pdf, png, eps, svg, tikz, json, dot, all (comma-separated)")
	cmd.Flags().StringVar(&f.engine, "engine", pipeline.DefaultEngine, "rendering engine: native, latex")
	cmd.Flags().StringVarP(&f.vizType, "type", "t", pipeline.DefaultVizType, "diagram type: register, nodelink")
	cmd.Flags().StringVar(&f.style, "style", "", "named palette: classic, blueprint")
	cmd.Flags().StringVarP(&f.output, "output", "o", "lfsr", "output base path")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached artifacts and render again")

	return cmd
}

// applyRenderDefaults fills flags the user did not set from the config file.
func (c *CLI) applyRenderDefaults(fs *pflag.FlagSet, f *renderFlags) {
	r := c.Config.Render
	set := func(name string, dst *string, v string) {
		if !fs.Changed(name) && v != "" {
			*dst = v
		}
	}
	set("format", &f.formats, r.Format)
	set("engine", &f.engine, r.Engine)
	set("type", &f.vizType, r.Type)
	set("output", &f.output, r.Output)
	set("style", &f.style, c.Config.Style.Name)
	if !fs.Changed("hide-values") {
		f.hideValues = f.hideValues || r.HideValues
	}
	if !fs.Changed("hide-names") {
		f.hideNames = f.hideNames || r.HideNames
	}
}

// options converts the flags into pipeline options. Style overrides come
// from the config file.
func (c *CLI) options(f renderFlags) pipeline.Options {
	return pipeline.Options{
		Taps:       f.taps,
		Values:     f.values,
		Poly:       f.poly,
		HideValues: f.hideValues,
		HideNames:  f.hideNames,
		VizType:    f.vizType,
		Engine:     f.engine,
		Formats:    pipeline.ParseFormats(f.formats),
		Style:      f.style,
		Palette:    c.Config.Overrides(),
		Refresh:    f.refresh,
		Logger:     c.Logger,
	}
}

func (c *CLI) runRender(ctx context.Context, f renderFlags) error {
	opts := c.options(f)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if f.output == "-" && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "output - needs exactly one format, got %s", strings.Join(opts.Formats, ","))
	}

	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	var spin *Spinner
	if opts.Engine == pipeline.EngineLaTeX && f.output != "-" {
		spin = newSpinnerWithContext(ctx, "Compiling LaTeX...")
		spin.Start()
	}
	result, written, err := execute(ctx, runner, opts, f.output)
	if spin != nil {
		if err != nil {
			spin.Stop()
		} else {
			spin.StopWithSuccess("Compiled LaTeX")
		}
	}
	if err != nil {
		for _, p := range written {
			printFile(p)
		}
		return err
	}
	if f.output == "-" {
		return nil
	}

	prog.done("Rendered " + strings.Join(opts.Formats, ", "))
	printSuccess("Rendered %s diagram for taps %s", opts.VizType, StyleHighlight.Render(result.Register.Taps.String()))
	for _, p := range written {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// execute runs the pipeline and writes its artifacts. Artifacts rendered
// before a failure are still written.
func execute(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) (*pipeline.Result, []string, error) {
	result, err := runner.Execute(ctx, opts)
	if result == nil {
		return nil, nil, err
	}
	written, werr := writeArtifacts(output, opts.Formats, result.Artifacts)
	loggerFromContext(ctx).Debug("wrote artifacts", "run_id", result.RunID, "files", written)
	if err != nil {
		return result, written, err
	}
	return result, written, werr
}

// writeArtifacts writes each artifact in format order and returns the
// paths written.
func writeArtifacts(output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if output == "-" {
		data, ok := artifacts[formats[0]]
		if !ok {
			return nil, nil
		}
		w, err := openOutput(output)
		if err != nil {
			return nil, err
		}
		defer w.Close()
		_, err = w.Write(data)
		return nil, err
	}

	base := basePath(output)
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output directory")
		}
	}

	var written []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + pipeline.Extension(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}

// basePath strips a known output extension, so "-o diagram.pdf" writes
// diagram.pdf rather than diagram.pdf.pdf.
func basePath(output string) string {
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if ext == "" {
		return output
	}
	for _, f := range slices.Concat(pipeline.RegisterFormats, pipeline.NodelinkFormats) {
		if pipeline.Extension(f) == strings.ToLower(ext) {
			return strings.TrimSuffix(output, filepath.Ext(output))
		}
	}
	return output
}
