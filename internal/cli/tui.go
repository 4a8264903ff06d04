package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/depscan/pkg/deps"
	"github.com/matzehuels/depscan/pkg/scan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browse runs the interactive dependency browser until the user quits.
func browse(report *scan.Report) error {
	_, err := tea.NewProgram(NewDependencyListModel(report.Result.Records())).Run()
	return err
}

// =============================================================================
// DependencyListModel - Interactive dependency browser
// =============================================================================

// DependencyListModel is the bubbletea model for browsing scan results.
// The list shows one row per dependency; enter opens the file list of the
// selected dependency.
type DependencyListModel struct {
	Records  []deps.Record
	Cursor   int
	Height   int
	Offset   int
	Expanded bool   // showing the locations of the selected record
	Filter   string // case-insensitive name filter, typed after "/"
	typing   bool
	visible  []int // indices into Records matching Filter
}

// NewDependencyListModel creates a new dependency list model.
func NewDependencyListModel(records []deps.Record) DependencyListModel {
	m := DependencyListModel{Records: records, Height: 15}
	m.applyFilter()
	return m
}

func (m *DependencyListModel) applyFilter() {
	m.visible = nil
	q := strings.ToLower(m.Filter)
	for i, rec := range m.Records {
		if q == "" || strings.Contains(strings.ToLower(rec.Name), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

// Selected returns the record under the cursor.
func (m DependencyListModel) Selected() (deps.Record, bool) {
	if len(m.visible) == 0 {
		return deps.Record{}, false
	}
	return m.Records[m.visible[m.Cursor]], true
}

func (m DependencyListModel) Init() tea.Cmd {
	return nil
}

func (m DependencyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			return m.updateFilter(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Expanded {
				m.Expanded = false
				return m, nil
			}
			return m, tea.Quit
		case "/":
			m.typing = true
			m.Expanded = false
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.visible) > 0 {
				m.Expanded = !m.Expanded
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DependencyListModel) updateFilter(msg tea.KeyMsg) DependencyListModel {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.typing = false
	case tea.KeyBackspace:
		if r := []rune(m.Filter); len(r) > 0 {
			m.Filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeyRunes:
		m.Filter += string(msg.Runes)
		m.applyFilter()
	}
	return m
}

func (m DependencyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(reportTitle))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ files  / filter  q quit"))
	b.WriteString("\n")
	if m.Filter != "" || m.typing {
		b.WriteString(listNormalStyle.Render("filter: " + m.Filter))
		if m.typing {
			b.WriteString(listSelectedStyle.Render("▏"))
		}
	}
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(listDimStyle.Render("  no dependencies"))
		return b.String()
	}

	if m.Expanded {
		rec, _ := m.Selected()
		b.WriteString(listSelectedStyle.Render(rec.Name))
		b.WriteString("  ")
		b.WriteString(listDimStyle.Render(versionText(rec)))
		b.WriteString("\n\n")
		for _, loc := range rec.Locations {
			b.WriteString("  " + StyleDim.Render(iconArrow) + " " + listNormalStyle.Render(loc) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("esc back"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.visible))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		rec := m.Records[m.visible[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, rec.Name, versionText(rec), fmt.Sprintf("%d", len(rec.Locations))})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Version", "Files").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			idx := m.Offset + row
			if idx >= len(m.visible) {
				return lipgloss.NewStyle()
			}
			rec := m.Records[m.visible[idx]]

			base := lipgloss.NewStyle()
			if col == 2 && !rec.HasVersion() {
				base = base.Inherit(styleNoVersion)
			}
			if idx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if col == 3 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.visible))))

	return b.String()
}
