package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/depscan/pkg/deps"
	reportio "github.com/matzehuels/depscan/pkg/io"
	"github.com/matzehuels/depscan/pkg/render/nodelink"
	"github.com/matzehuels/depscan/pkg/scan"
)

const (
	reportTitle      = "Third-party Components Found:"
	versionNotFound  = "Version not found"
	plainNameWidth   = 30
	plainRuleWidth   = 40
	plainIndent      = "    " // prefix of the location lines under a plain row
)

// writeReport renders the report in the given format.
func writeReport(w io.Writer, report *scan.Report, format string) error {
	switch format {
	case formatJSON:
		return reportio.WriteJSON(report.Result, w)
	case formatDOT:
		_, err := fmt.Fprint(w, nodelink.ToDOT(report.Result, nodelink.Options{}))
		return err
	case formatPlain:
		writePlain(w, report.Result)
		return nil
	default:
		writeTable(w, report)
		return nil
	}
}

// writePlain prints one "<name> <version>" line per dependency, followed by
// its locations, one per indented line.
func writePlain(w io.Writer, result *deps.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, reportTitle)
	fmt.Fprintln(w, strings.Repeat("-", plainRuleWidth))
	for _, rec := range result.Records() {
		fmt.Fprintf(w, "%-*s %s\n", plainNameWidth, rec.Name, versionText(rec))
		for _, loc := range rec.Locations {
			fmt.Fprintln(w, plainIndent+loc)
		}
	}
}

// writeTable prints the dependencies as a table.
func writeTable(w io.Writer, report *scan.Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleTitle.Render(reportTitle))

	records := report.Result.Records()
	if len(records) == 0 {
		fmt.Fprintln(w, StyleDim.Render("  none"))
		return
	}
	fmt.Fprintln(w, dependencyTable(records).Render())
}

// printSummary prints the scan statistics below a table report.
func printSummary(report *scan.Report) {
	printNewline()
	printKeyValue("Root", report.Root)
	printKeyValue("Report", report.ID)
	printStats(report.Result.Len(), report.FilesMatched, report.ErrorCount())
}

func dependencyTable(records []deps.Record) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.Name, versionText(rec), strings.Join(rec.Locations, "\n")})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Version", "Locations").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			switch col {
			case 0:
				return base.Foreground(colorWhite)
			case 1:
				if records[row].HasVersion() {
					return base.Inherit(styleVersion)
				}
				return base.Inherit(styleNoVersion)
			default:
				return base.Foreground(colorGray)
			}
		})
}

func versionText(rec deps.Record) string {
	if rec.HasVersion() {
		return rec.Version
	}
	return versionNotFound
}
