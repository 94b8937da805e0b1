package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/lfsr"
	"github.com/matzehuels/galdraw/pkg/pipeline"
)

// inspectCommand creates the inspect command, which describes a register
// without rendering it.
func (c *CLI) inspectCommand() *cobra.Command {
	var f inputFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the cells, feedback and layout parameters of an LFSR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), f)
		},
	}
	f.bind(cmd.Flags())
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, f inputFlags) error {
	opts := pipeline.Options{
		Taps:       f.taps,
		Values:     f.values,
		Poly:       f.poly,
		HideValues: f.hideValues,
		HideNames:  f.hideNames,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	reg := opts.Register()

	s, err := pipeline.ComputeLayout(ctx, reg, opts.LayoutOptions())
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render("Galois LFSR"))
	fmt.Fprintln(stdout)
	printKeyValue("taps", renderBits(reg.Taps.String()))
	printKeyValue("values", renderBits(reg.Values.String()))
	printKeyValue("polynomial", lfsr.FormatPolynomial(reg.Taps))
	printKeyValue("feedback", StyleNumber.Render(fmt.Sprint(reg.Feedback())))
	printKeyValue("output", StyleNumber.Render(fmt.Sprint(reg.Output())))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, cellTable(reg))
	fmt.Fprintln(stdout)
	printLayoutConfig(s)
	return nil
}

// cellTable lists the cells from the highest index down, the order in
// which they appear in a bit string.
func cellTable(reg lfsr.Register) string {
	n := reg.Len()
	rows := make([][]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		contributes := "no"
		if reg.Taps[i] == 1 && reg.Values[i] == 1 {
			contributes = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("x%d", i),
			fmt.Sprint(reg.Taps[i]),
			fmt.Sprint(reg.Values[i]),
			contributes,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Cell", "Tap", "Value", "Contributes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			i := n - 1 - row
			switch {
			case col == 1 && reg.Taps[i] == 1:
				return cell.Inherit(styleTap)
			case col == 2 && reg.Values[i] == 1:
				return cell.Inherit(styleBitSet)
			case col == 3 && reg.Taps[i] == 1 && reg.Values[i] == 1:
				return cell.Inherit(StyleSuccess)
			case col == 0:
				return cell.Inherit(StyleValue)
			}
			return cell.Inherit(StyleDim)
		}).
		Render()
}

func printLayoutConfig(s layout.Stream) {
	cfg := s.Config
	printKeyValue("box size", fmt.Sprintf("%g", cfg.BoxSize))
	printKeyValue("font size", fmt.Sprintf("%gpt", cfg.ValueFontSize))
	printKeyValue("xor spacing", fmt.Sprintf("%g", cfg.XORSpacing))
	printKeyValue("feedback x", fmt.Sprintf("%g", cfg.FeedbackX()))
	b := s.Bounds()
	printKeyValue("bounds", fmt.Sprintf("%.2f × %.2f", b.Width(), b.Height()))
	printDetail("%d primitives", len(s.Primitives))
}
