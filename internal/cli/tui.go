package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/geom"
	"github.com/matzehuels/tagplacer/pkg/placement"
	"github.com/matzehuels/tagplacer/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FamilyListModel - Interactive tag family selection
// =============================================================================

// FamilyListModel is the bubbletea model for picking one of several matching
// tag families.
type FamilyListModel struct {
	Families []scene.TagFamily
	Cursor   int
	Selected *scene.TagFamily
	Height   int
	Offset   int
}

// NewFamilyListModel creates a new family list model.
func NewFamilyListModel(families []scene.TagFamily) FamilyListModel {
	return FamilyListModel{
		Families: families,
		Height:   10,
	}
}

func (m FamilyListModel) Init() tea.Cmd {
	return nil
}

func (m FamilyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Families)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			f := m.Families[m.Cursor]
			if len(f.Symbols) == 0 {
				return m, nil
			}
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 3)
	}
	return m, nil
}

func (m FamilyListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Tag Family"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Families))
	for i := m.Offset; i < end; i++ {
		f := m.Families[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		symbols := "no symbols"
		if len(f.Symbols) > 0 {
			symbols = strings.Join(f.Symbols, ", ")
		}
		line := fmt.Sprintf("%s%-30s  %s", cursor, f.Name, listDimStyle.Render(symbols))

		switch {
		case len(f.Symbols) == 0:
			b.WriteString(listDimStyle.Render(line))
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Families))))
	return b.String()
}

// chooseFamilyInteractive lets the user pick a family when stdin is a
// terminal. Otherwise it returns FAMILY_NOT_FOUND listing the candidates.
func chooseFamilyInteractive(families []scene.TagFamily) (scene.TagFamily, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return scene.TagFamily{}, errors.New(errors.ErrCodeFamilyNotFound,
			"%d tag families match: %s; pick one with --family",
			len(families), strings.Join(scene.FamilyNames(families), ", "))
	}

	final, err := tea.NewProgram(NewFamilyListModel(families), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return scene.TagFamily{}, fmt.Errorf("family picker: %w", err)
	}
	if m, ok := final.(FamilyListModel); ok && m.Selected != nil {
		return *m.Selected, nil
	}
	return scene.TagFamily{}, errors.New(errors.ErrCodeFamilyNotFound, "no tag family selected")
}

// =============================================================================
// Candidate Table
// =============================================================================

// renderCandidates renders spiral candidates as a table. When c is a
// correction, the violating candidate row is highlighted.
func renderCandidates(points []geom.Point, anchor geom.Point, c *placement.Correction) string {
	rows := make([][]string, len(points))
	for i, p := range points {
		off := p.Sub(anchor)
		rows[i] = []string{
			strconv.Itoa(i),
			formatCoord(p.X), formatCoord(p.Y), formatCoord(p.Z),
			formatCoord(off.X) + ", " + formatCoord(off.Y),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "X", "Y", "Z", "Offset").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case c != nil && c.Corrected() && row == c.CandidateIndex:
				return base.Foreground(colorYellow).Bold(true)
			case c != nil && c.Corrected() && row > c.CandidateIndex:
				return base.Foreground(colorDim)
			case col == 0:
				return base.Foreground(colorGray)
			}
			return base.Foreground(colorWhite)
		})
	return t.Render()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
