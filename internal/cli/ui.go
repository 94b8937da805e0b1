package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/pipeline"
)

// stdout receives all user-facing output. Tests swap it for a buffer.
var (
	defaultStdout io.Writer = os.Stdout
	stdout        io.Writer = defaultStdout
)

// Terminal palette. Set bits are green and taps amber, mirroring the
// register diagrams.
var (
	colorAccent = lipgloss.Color("36")
	colorSet    = lipgloss.Color("35")
	colorTap    = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorBright = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

// Styles shared by the commands.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleNumber    = StyleHighlight
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue     = lipgloss.NewStyle().Foreground(colorBright)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorSet)
)

var (
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleIconSpinner = StyleHighlight
	styleBitSet      = lipgloss.NewStyle().Bold(true).Foreground(colorSet)
	styleBitClear    = StyleDim
	styleTap         = lipgloss.NewStyle().Bold(true).Foreground(colorTap)

	statusIcons = map[string]lipgloss.Style{
		iconSuccess: StyleSuccess,
		iconError:   lipgloss.NewStyle().Foreground(colorFail),
		iconInfo:    lipgloss.NewStyle().Foreground(colorLabel),
	}
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

func printStatus(w io.Writer, icon, msg string) {
	fmt.Fprintln(w, statusIcons[icon].Render(icon)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printStatus(stdout, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(stdout, iconError, fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	printStatus(stdout, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// PrintError reports a command failure on w, prefixed with its error code
// when it has one.
func PrintError(w io.Writer, err error) {
	msg := errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		msg = StyleDim.Render(string(code)) + " " + msg
	}
	printStatus(w, iconError, msg)
}

// printFile lists a written artifact.
func printFile(path string) {
	fmt.Fprintf(stdout, "  %s %s\n", StyleDim.Render(iconArrow), StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarizes a run, e.g. "4 cells · 23 primitives · feedback 1 · fresh".
func printStats(s pipeline.Stats, cached bool) {
	state := StyleDim.Render(iconFresh)
	if cached {
		state = StyleSuccess.Render(iconCached)
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(stdout, "  "+strings.Join([]string{
		StyleDim.Render(fmt.Sprintf("%d cells", s.Length)),
		StyleDim.Render(fmt.Sprintf("%d primitives", s.Primitives)),
		StyleDim.Render(fmt.Sprintf("feedback %d", s.Feedback)),
		state,
	}, sep))
}

// renderBits colors each character of a bit string.
func renderBits(s string) string {
	var sb strings.Builder
	for _, ch := range s {
		style := styleBitClear
		if ch == '1' {
			style = styleBitSet
		}
		sb.WriteString(style.Render(string(ch)))
	}
	return sb.String()
}
