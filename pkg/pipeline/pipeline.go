// Package pipeline provides the resolve → layout → render pipeline shared by
// the CLI and the HTTP server.
//
// # Stages
//
// A run goes through three steps:
//
//  1. Resolve: turn tap/value strings or a polynomial into an [lfsr.Register]
//  2. Layout: build the primitive [layout.Stream] for the register
//  3. Render: serialise the stream in the requested formats
//
// Layouts and artifacts are cached through a [cache.Cache]; the [Runner]
// reports which stages hit the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Taps:    "1001",
//	    Values:  "1111",
//	    Formats: []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/galdraw/pkg/cache"
	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/lfsr"
	"github.com/matzehuels/galdraw/pkg/render/register/styles"
)

const (
	// DefaultTaps is the tap sequence used when neither taps nor a
	// polynomial is given.
	DefaultTaps = "1001"

	// DefaultValues is the initial value vector used with DefaultTaps.
	DefaultValues = "1111"

	// DefaultFormat is the output format when none is requested.
	DefaultFormat = FormatPDF

	// DefaultVizType draws the register diagram.
	DefaultVizType = VizTypeRegister

	// DefaultEngine is the default rendering engine.
	DefaultEngine = EngineNative
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatEPS  = "eps"
	FormatTikZ = "tikz"
	FormatJSON = "json"
	FormatDOT  = "dot"

	// FormatAll expands to pdf, png and eps.
	FormatAll = "all"
)

// Diagram kinds.
const (
	VizTypeRegister = "register"
	VizTypeNodelink = "nodelink"
)

// Rendering engines.
const (
	EngineNative = "native"
	EngineLaTeX  = "latex"
)

// AllFormats is what FormatAll expands to.
var AllFormats = []string{FormatPDF, FormatPNG, FormatEPS}

// RegisterFormats are the formats of the register diagram.
var RegisterFormats = []string{FormatSVG, FormatJSON, FormatTikZ, FormatPDF, FormatPNG, FormatEPS}

// NodelinkFormats are the formats of the node-link diagram.
var NodelinkFormats = []string{FormatSVG, FormatDOT, FormatPDF, FormatPNG}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatTikZ {
		return "tex"
	}
	return format
}

// ParseFormats splits a comma-separated format list, trims blanks and
// expands "all". Duplicates are dropped; order is preserved.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{DefaultFormat}
	}
	return ExpandFormats(strings.Split(s, ","))
}

// ExpandFormats expands "all" and removes blanks and duplicates.
func ExpandFormats(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := make([]string, 0, len(formats))
	add := func(f string) {
		if f != "" && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == FormatAll {
			for _, a := range AllFormats {
				add(a)
			}
			continue
		}
		add(f)
	}
	return out
}

// ValidateVizType accepts "register" and "nodelink".
func ValidateVizType(vizType string) error {
	return errors.ValidateChoice(errors.ErrCodeInvalidVizType, "type", vizType, VizTypeRegister, VizTypeNodelink)
}

// ValidateEngine accepts "native" and "latex".
func ValidateEngine(engine string) error {
	return errors.ValidateChoice(errors.ErrCodeInvalidEngine, "engine", engine, EngineNative, EngineLaTeX)
}

// ValidateFormats checks every format against the visualization type.
func ValidateFormats(vizType string, formats []string) error {
	allowed := RegisterFormats
	if vizType == VizTypeNodelink {
		allowed = NodelinkFormats
	}
	for _, f := range formats {
		if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format for "+vizType, f, allowed...); err != nil {
			return err
		}
	}
	return nil
}

// Options describes one render request from the CLI or the API.
// It is the JSON body of POST /v1/render.
type Options struct {
	// Input. Poly, when set, replaces Taps; Values then defaults to all ones.
	Taps   string `json:"taps,omitempty"`
	Values string `json:"values,omitempty"`
	Poly   string `json:"poly,omitempty"`

	// Layout.
	HideValues bool `json:"hide_values,omitempty"`
	HideNames  bool `json:"hide_names,omitempty"`

	// Rendering.
	VizType string          `json:"type,omitempty"`
	Engine  string          `json:"engine,omitempty"`
	Formats []string        `json:"formats,omitempty"`
	Style   string          `json:"style,omitempty"`
	Palette *styles.Palette `json:"palette,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Set by the caller, never part of a request body.
	Logger *log.Logger `json:"-"`

	validated bool
	register  lfsr.Register
	palette   styles.Palette
}

// Result is what one run produced, including partial artifacts when a
// later format failed.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Register is the validated input.
	Register lfsr.Register

	// Layout is the primitive stream.
	Layout layout.Stream

	// Artifacts maps format to file content.
	Artifacts map[string][]byte

	Stats Stats

	CacheInfo CacheInfo
}

// Stats summarizes the register and how long each stage took.
type Stats struct {
	Length     int
	Primitives int
	Feedback   uint8
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool // Whether the stream came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// SetDefaults fills unset fields. Without a polynomial, Taps defaults to
// 1001 and Values to all ones of the tap length (1111 for the default taps).
func (o *Options) SetDefaults() {
	if o.Poly == "" {
		if o.Taps == "" {
			o.Taps = DefaultTaps
		}
		if o.Values == "" {
			o.Values = strings.Repeat("1", len(o.Taps))
		}
	}
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	o.Formats = ExpandFormats(o.Formats)
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults, resolves the register and the
// palette, and checks every selector. Input errors are reported before any
// layout work. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.Engine == EngineLaTeX && o.VizType != VizTypeRegister {
		return errors.New(errors.ErrCodeInvalidEngine, "the latex engine only renders the %s diagram", VizTypeRegister)
	}
	if err := ValidateFormats(o.VizType, o.Formats); err != nil {
		return err
	}

	reg, err := Resolve(o.Taps, o.Values, o.Poly)
	if err != nil {
		return err
	}
	o.register = reg

	p, err := styles.Lookup(o.Style)
	if err != nil {
		return err
	}
	if o.Palette != nil {
		p = p.Merge(*o.Palette)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	o.palette = p

	o.validated = true
	return nil
}

// Register returns the resolved register. Valid after ValidateAndSetDefaults.
func (o *Options) Register() lfsr.Register { return o.register }

// ResolvedPalette returns the style after config overrides. Valid after
// ValidateAndSetDefaults.
func (o *Options) ResolvedPalette() styles.Palette { return o.palette }

// LayoutOptions returns the display flags for the layout engine.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{ShowValues: !o.HideValues, ShowNames: !o.HideNames}
}

// IsNodelink reports whether the graph view was requested.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// LayoutKeyOpts is the part of o that determines the layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Taps:       o.register.Taps.String(),
		Values:     o.register.Values.String(),
		ShowValues: !o.HideValues,
		ShowNames:  !o.HideNames,
	}
}

// ArtifactKeyOpts is the part of o that determines one artifact.
// Formats the native engine and the latex engine render identically share
// a key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	engine := o.Engine
	switch format {
	case FormatSVG, FormatJSON, FormatTikZ, FormatDOT:
		engine = ""
	}
	style, _ := json.Marshal(o.palette)
	return cache.ArtifactKeyOpts{
		VizType: o.VizType,
		Format:  format,
		Engine:  engine,
		Style:   string(style),
	}
}
