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

// reviewModel is the bubbletea model for interactively confirming the
// discovered build dependencies before they are written. Every entry
// starts checked; space toggles, enter confirms, q or esc cancels.
type reviewModel struct {
	deps      []string
	checked   []bool
	cursor    int
	offset    int
	height    int
	confirmed bool
}

// newReviewModel creates a review model with all dependencies checked.
func newReviewModel(deps []string) reviewModel {
	checked := make([]bool, len(deps))
	for i := range checked {
		checked[i] = true
	}
	return reviewModel{deps: deps, checked: checked, height: 15}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.deps)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ":
			m.checked[m.cursor] = !m.checked[m.cursor]
		case "a":
			for i := range m.checked {
				m.checked[i] = true
			}
		case "n":
			for i := range m.checked {
				m.checked[i] = false
			}
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m reviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Review Build Dependencies"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle  a all  n none  ⏎ confirm  q cancel"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.deps) {
		end = len(m.deps)
	}

	for i := m.offset; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		box := "[ ]"
		if m.checked[i] {
			box = "[x]"
		}

		line := fmt.Sprintf("%s%s %s", cursor, box, m.deps[i])
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if m.checked[i] {
			b.WriteString(listNormalStyle.Render(line))
		} else {
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d of %d selected", m.selectedCount(), len(m.deps))))

	return b.String()
}

func (m reviewModel) selectedCount() int {
	n := 0
	for _, c := range m.checked {
		if c {
			n++
		}
	}
	return n
}

// selected returns the checked dependencies in their original order.
func (m reviewModel) selected() []string {
	out := make([]string, 0, len(m.deps))
	for i, dep := range m.deps {
		if m.checked[i] {
			out = append(out, dep)
		}
	}
	return out
}

// reviewDeps runs the interactive review and returns the confirmed subset.
// A nil slice (with nil error) means the user cancelled. When no usable
// terminal is available the review is skipped and the full set kept.
func reviewDeps(deps []string) ([]string, error) {
	p := tea.NewProgram(newReviewModel(deps))
	final, err := p.Run()
	if err != nil {
		printWarning("Interactive review unavailable: %v", err)
		return deps, nil
	}
	m, ok := final.(reviewModel)
	if !ok || !m.confirmed {
		return nil, nil
	}
	return m.selected(), nil
}
