package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeString(t *testing.T, m PickerModel, s string) PickerModel {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestPicker_FilterNarrowsNotes(t *testing.T) {
	m := NewPickerModel([]string{"daily/monday.md", "ideas.md", "projects/roadmap.md"})
	assert.Len(t, m.filtered, 3)

	m = typeString(t, m, "road")

	require.Len(t, m.filtered, 1)
	assert.Equal(t, "projects/roadmap.md", m.Selected())
}

func TestPicker_EnterEmitsChosenNote(t *testing.T) {
	m := NewPickerModel([]string{"a.md", "b.md"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg, ok := cmd().(noteChosenMsg)
	require.True(t, ok)
	assert.Equal(t, "b.md", msg.rel)
}

func TestPicker_EnterWithNoMatchesIsNoop(t *testing.T) {
	m := NewPickerModel([]string{"a.md"})
	m = typeString(t, m, "zzz")

	assert.Empty(t, m.filtered)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestPicker_SetNotesReappliesFilter(t *testing.T) {
	m := NewPickerModel([]string{"a.md"})
	m = typeString(t, m, "plan")
	assert.Empty(t, m.filtered)

	m.SetNotes([]string{"a.md", "planning.md"})

	require.Len(t, m.filtered, 1)
	assert.Equal(t, "planning.md", m.Selected())
}
