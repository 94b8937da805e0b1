package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/lfsr"
	"github.com/matzehuels/galdraw/pkg/pipeline"
)

var (
	editCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Underline(true)
	editLabelStyle  = lipgloss.NewStyle().Foreground(colorLabel).Width(8)
	editErrorStyle  = lipgloss.NewStyle().Foreground(colorFail)
)

// editRow selects which vector space toggles.
type editRow int

const (
	rowTaps editRow = iota
	rowValues
)

// =============================================================================
// EditorModel - Interactive register editor
// =============================================================================

// RenderFunc renders a register and returns the files it wrote.
type RenderFunc func(lfsr.Register) ([]string, error)

// renderedMsg reports the outcome of a render started with enter.
type renderedMsg struct {
	paths []string
	err   error
}

// EditorModel is the bubbletea model for editing taps and values. Cursor is
// a cell index, so moving left increases it.
type EditorModel struct {
	Register  lfsr.Register
	Cursor    int
	Row       editRow
	Rendering bool
	Files     []string
	Err       error

	render RenderFunc
}

// NewEditorModel creates an editor for reg. render runs when enter is
// pressed; a nil render disables it.
func NewEditorModel(reg lfsr.Register, render RenderFunc) EditorModel {
	return EditorModel{Register: reg.Clone(), render: render}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderedMsg:
		m.Rendering = false
		m.Files, m.Err = msg.paths, msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Cursor < m.Register.Len()-1 {
				m.Cursor++
			}
		case "right", "l":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "up", "k":
			m.Row = rowTaps
		case "down", "j":
			m.Row = rowValues
		case "t":
			m.Register.Taps = m.Register.Taps.Toggle(m.Cursor)
		case "v":
			m.Register.Values = m.Register.Values.Toggle(m.Cursor)
		case " ":
			if m.Row == rowTaps {
				m.Register.Taps = m.Register.Taps.Toggle(m.Cursor)
			} else {
				m.Register.Values = m.Register.Values.Toggle(m.Cursor)
			}
		case "enter":
			if m.render == nil || m.Rendering {
				return m, nil
			}
			m.Rendering = true
			reg, render := m.Register.Clone(), m.render
			return m, func() tea.Msg {
				paths, err := render(reg)
				return renderedMsg{paths: paths, err: err}
			}
		}
	}
	return m, nil
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Galois LFSR editor"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→: cell  ↑/↓: row  space: toggle  t: tap  v: value  enter: render  q: quit"))
	b.WriteString("\n\n")

	n := m.Register.Len()
	names := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		names = append(names, fmt.Sprintf("%-4s", fmt.Sprintf("x%d", i)))
	}
	b.WriteString(editLabelStyle.Render("") + StyleDim.Render(strings.Join(names, "")) + "\n")
	b.WriteString(m.bitRow("taps", m.Register.Taps, rowTaps) + "\n")
	b.WriteString(m.bitRow("values", m.Register.Values, rowValues) + "\n\n")

	b.WriteString(editLabelStyle.Render("poly") + StyleValue.Render(lfsr.FormatPolynomial(m.Register.Taps)) + "\n")
	b.WriteString(editLabelStyle.Render("feedback") + StyleNumber.Render(fmt.Sprint(m.Register.Feedback())) + "\n\n")

	switch {
	case m.Rendering:
		b.WriteString(StyleDim.Render("rendering..."))
	case m.Err != nil:
		b.WriteString(editErrorStyle.Render(iconError + " " + m.Err.Error()))
	case len(m.Files) > 0:
		b.WriteString(StyleSuccess.Render(iconSuccess+" wrote ") + StyleValue.Render(strings.Join(m.Files, ", ")))
	}
	b.WriteString("\n")
	return b.String()
}

func (m EditorModel) bitRow(label string, bits lfsr.Bits, row editRow) string {
	var cells []string
	for i := len(bits) - 1; i >= 0; i-- {
		s := fmt.Sprint(bits[i])
		switch {
		case i == m.Cursor && row == m.Row:
			s = editCursorStyle.Render(s)
		case row == rowTaps && bits[i] == 1:
			s = styleTap.Render(s)
		case bits[i] == 1:
			s = styleBitSet.Render(s)
		default:
			s = styleBitClear.Render(s)
		}
		cells = append(cells, s+"   ")
	}
	l := editLabelStyle.Render(label)
	if row == m.Row {
		l = editLabelStyle.Foreground(colorAccent).Render(label)
	}
	return l + strings.Join(cells, "")
}

// =============================================================================
// Command
// =============================================================================

// editCommand creates the interactive editor command. It accepts the render
// flags; enter renders the edited register with them.
func (c *CLI) editCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit taps and values interactively and render the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderDefaults(cmd.Flags(), &f)
			return c.runEdit(cmd.Context(), f)
		},
	}

	f.bind(cmd.Flags())
	cmd.Flags().StringVarP(&f.formats, "format", "f", pipeline.DefaultFormat, "output format(s) rendered on enter")
	cmd.Flags().StringVar(&f.engine, "engine", pipeline.DefaultEngine, "rendering engine: native, latex")
	cmd.Flags().StringVarP(&f.vizType, "type", "t", pipeline.DefaultVizType, "diagram type: register, nodelink")
	cmd.Flags().StringVar(&f.style, "style", "", "named palette: classic, blueprint")
	cmd.Flags().StringVarP(&f.output, "output", "o", "lfsr", "output base path")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, f renderFlags) error {
	if f.output == "-" {
		return errors.New(errors.ErrCodeInvalidInput, "edit cannot write to stdout")
	}
	opts := c.options(f)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	// Log lines would corrupt the full-screen view.
	runner.Logger = log.New(io.Discard)

	render := func(reg lfsr.Register) ([]string, error) {
		next := f
		next.taps, next.values, next.poly = reg.Taps.String(), reg.Values.String(), ""
		_, written, err := execute(ctx, runner, c.options(next), f.output)
		return written, err
	}

	p := tea.NewProgram(NewEditorModel(opts.Register(), render), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(EditorModel); ok {
		printInfo("taps %s  values %s", m.Register.Taps.String(), m.Register.Values.String())
		for _, path := range m.Files {
			printFile(path)
		}
	}
	return nil
}
