package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/colonyops/stale/internal/core/styles"
)

// noteChosenMsg is emitted when the picker confirms a note.
type noteChosenMsg struct {
	rel string // vault-relative note path
}

// PickerModel is a fuzzy-filterable list of vault notes.
type PickerModel struct {
	notes    []string // vault-relative paths, sorted
	filtered []int    // indices into notes
	selected int
	query    textinput.Model
	height   int
	width    int
}

// NewPickerModel builds a picker over the given note paths.
func NewPickerModel(notes []string) PickerModel {
	ti := textinput.New()
	ti.Placeholder = "filter notes..."
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 40

	m := PickerModel{notes: notes, query: ti}
	m.applyFilter()
	return m
}

// SetNotes replaces the note list, keeping the current filter.
func (m *PickerModel) SetNotes(notes []string) {
	m.notes = notes
	m.applyFilter()
}

// SetSize updates the view dimensions.
func (m *PickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *PickerModel) applyFilter() {
	q := strings.TrimSpace(m.query.Value())
	if q == "" {
		m.filtered = make([]int, len(m.notes))
		for i := range m.notes {
			m.filtered[i] = i
		}
	} else {
		matches := fuzzy.Find(q, m.notes)
		m.filtered = make([]int, len(matches))
		for i, match := range matches {
			m.filtered[i] = match.Index
		}
	}
	if m.selected >= len(m.filtered) {
		m.selected = max(0, len(m.filtered)-1)
	}
}

// Selected returns the highlighted note path, or "" when the list is empty.
func (m *PickerModel) Selected() string {
	if len(m.filtered) == 0 {
		return ""
	}
	return m.notes[m.filtered[m.selected]]
}

// Update implements the bubbletea update contract for the picker.
func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "ctrl+k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "ctrl+j":
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}
		return m, nil
	case "enter":
		if rel := m.Selected(); rel != "" {
			return m, func() tea.Msg { return noteChosenMsg{rel: rel} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	m.applyFilter()
	return m, cmd
}

// View renders the picker.
func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Header().Render("Notes"))
	b.WriteString("\n")
	b.WriteString(m.query.View())
	b.WriteString("\n\n")

	selectedStyle := lipgloss.NewStyle().Foreground(styles.Theme().Primary).Bold(true)
	mutedStyle := styles.Muted()

	visible := max(1, m.height-5)
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}

	for i := start; i < len(m.filtered) && i < start+visible; i++ {
		note := m.notes[m.filtered[i]]
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + note))
		} else {
			b.WriteString(mutedStyle.Render("  " + note))
		}
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(mutedStyle.Render("  no notes match"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("↑↓: navigate  enter: open  ctrl+c: quit"))

	return b.String()
}
