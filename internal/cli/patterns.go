package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depscan/pkg/deps"
	"github.com/matzehuels/depscan/pkg/deps/dialects"
)

// patternUse describes where each pattern is applied.
var patternUse = map[string]string{
	deps.PatternCMake:   "CMakeLists.txt",
	deps.PatternConan:   "conanfile.*",
	deps.PatternVcpkg:   "vcpkg.json (fallback when the JSON is malformed)",
	deps.PatternInclude: "source files",
	deps.PatternDefine:  "source files",
}

// patternsCommand creates the patterns command, which lists the detection
// rules and the dialect dispatch order.
func (c *CLI) patternsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the dependency detection patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

			rows := [][]string{}
			for _, id := range deps.PatternIDs() {
				rule := deps.MustPattern(id)
				rows = append(rows, []string{id, rule.Expr(), patternUse[id]})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Expression", "Applied to").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle.Padding(0, 1)
					}
					if col == 0 {
						return StyleHighlight.Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				})

			fmt.Fprintln(w, t.Render())
			fmt.Fprintln(w, StyleDim.Render("Dispatch order:"), StyleValue.Render(fmt.Sprint(dialects.Types())))
			return nil
		},
	}
}
