package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// WarningListModel - Interactive warning browser
// =============================================================================

// WarningListModel is the bubbletea model for browsing rebuild warnings.
// Warnings keep their encounter order, so the list reads as a transcript of
// the reconstruction run.
type WarningListModel struct {
	Warnings []string
	Cursor   int
	Height   int
	Offset   int
}

// NewWarningListModel creates a new warning list model.
func NewWarningListModel(warnings []string) WarningListModel {
	return WarningListModel{
		Warnings: warnings,
		Height:   15,
	}
}

func (m WarningListModel) Init() tea.Cmd {
	return nil
}

func (m WarningListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Warnings)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor = 0
			m.Offset = 0
		case "G", "end":
			m.Cursor = len(m.Warnings) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m WarningListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rebuild Warnings"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Warnings) {
		end = len(m.Warnings)
	}

	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%s %s", cursor, styleIconWarning.Render(iconWarning), m.Warnings[i])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Warnings))))

	return b.String()
}

// runWarningBrowser opens the interactive warning list and blocks until the
// user quits it.
func runWarningBrowser(warnings []string) error {
	p := tea.NewProgram(NewWarningListModel(warnings))
	_, err := p.Run()
	return err
}
