// Package tui implements the interactive note viewer: a fuzzy picker over
// the vault, a rendered markdown view hosting the staleness banner, and a
// settings form opened from the banner.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/colonyops/stale/internal/core/config"
	"github.com/colonyops/stale/internal/core/eventbus"
	"github.com/colonyops/stale/internal/core/logging"
	"github.com/colonyops/stale/internal/core/styles"
	"github.com/colonyops/stale/internal/core/vault"
	"github.com/colonyops/stale/internal/freshness"
)

// uiState represents the current state of the TUI.
type uiState int

const (
	statePicker uiState = iota
	stateNote
	stateSettings
)

// Deps carries the collaborators the TUI operates on.
type Deps struct {
	Config      *config.Config
	ConfigPath  string
	Bus         *eventbus.EventBus
	Vault       *vault.Vault
	Views       *ViewManager
	Controller  *freshness.Controller
	SettingsReq *SettingsRequest
	Watcher     *NoteWatcher // nil when the vault can't be watched
}

// Model is the root Bubble Tea model.
type Model struct {
	deps Deps
	log  zerolog.Logger

	state    uiState
	picker   PickerModel
	settings SettingsModel
	vp       viewport.Model

	width  int
	height int
	ready  bool
	err    error
}

// New constructs the root model. The note list is loaded synchronously so
// the picker has content on first paint.
func New(deps Deps) Model {
	notes, err := deps.Vault.List()

	m := Model{
		deps:   deps,
		log:    logging.Component("tui"),
		state:  statePicker,
		picker: NewPickerModel(notes),
		vp:     viewport.New(80, 24),
	}
	m.err = err
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.deps.Watcher != nil {
		cmds = append(cmds, m.deps.Watcher.Start())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.picker.SetSize(msg.Width, msg.Height)
		m.settings.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-m.chromeHeight())
		if m.state == stateNote {
			m.renderActiveNote()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.deps.Controller.Unload()
			return m, tea.Quit
		}
		return m.updateKey(msg)

	case noteChosenMsg:
		return m.openNote(msg.rel)

	case noteModifiedMsg:
		return m.noteModified(msg)

	case settingsSavedMsg:
		return m.saveSettings(msg.cfg)

	case settingsClosedMsg:
		m.state = stateNote
		if m.deps.Views.Active() == nil {
			m.state = statePicker
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case statePicker:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case stateSettings:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd

	case stateNote:
		switch msg.String() {
		case "q", "esc":
			m.deps.Views.Deactivate()
			m.state = statePicker
			return m, nil
		case "enter", "s":
			// The banner's click affordance: activating it asks the host
			// to open settings.
			if v := m.deps.Views.Active(); v != nil {
				if banner, ok := v.Banner(); ok {
					banner.Activate()
				} else if msg.String() == "s" {
					// No banner present; s still opens settings.
					m.deps.SettingsReq.OpenSettings()
				}
			}
			if m.deps.SettingsReq.Consume() {
				m.settings = NewSettingsModel(*m.deps.Config)
				m.settings.SetWidth(m.width)
				m.state = stateSettings
				return m, m.settings.Init()
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	return m, nil
}

// openNote activates a view for the chosen note and publishes the
// activation signal; the controller's evaluation runs synchronously inside
// the publish.
func (m Model) openNote(rel string) (tea.Model, tea.Cmd) {
	path := m.deps.Vault.Abs(rel)
	doc := freshness.NewFileDocument(path)
	title := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))

	m.deps.Views.Activate(doc, title)
	m.deps.Bus.PublishViewActivated(eventbus.ViewActivatedPayload{Path: path})

	m.state = stateNote
	m.renderActiveNote()
	return m, nil
}

// noteModified republishes the save on the bus and refreshes the rendered
// content when the saved note is the one on screen.
func (m Model) noteModified(msg noteModifiedMsg) (tea.Model, tea.Cmd) {
	m.deps.Bus.PublishFileModified(eventbus.FileModifiedPayload{Path: msg.path})

	if notes, err := m.deps.Vault.List(); err == nil {
		m.picker.SetNotes(notes)
	}

	if v := m.deps.Views.Active(); v != nil && v.Document().Path() == msg.path {
		m.renderActiveNote()
	}

	var cmd tea.Cmd
	if m.deps.Watcher != nil {
		cmd = m.deps.Watcher.Start()
	}
	return m, cmd
}

// saveSettings persists the edited config, publishes the reload (the
// controller re-attaches and re-evaluates inside the publish), and returns
// to the note view.
func (m Model) saveSettings(cfg config.Config) (tea.Model, tea.Cmd) {
	if err := cfg.Save(m.deps.ConfigPath); err != nil {
		m.err = err
		m.log.Error().Err(err).Msg("save settings")
		return m, nil
	}

	*m.deps.Config = cfg
	m.deps.Bus.PublishConfigReloaded(eventbus.ConfigReloadedPayload{Config: m.deps.Config})

	m.state = stateNote
	if m.deps.Views.Active() == nil {
		m.state = statePicker
	} else {
		m.renderActiveNote()
	}
	return m, nil
}

// renderActiveNote re-renders the open note's markdown into the viewport.
func (m *Model) renderActiveNote() {
	v := m.deps.Views.Active()
	if v == nil {
		return
	}

	text, err := v.Document().Content(context.Background())
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	wrapWidth := max(m.vp.Width-2, 20)
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		m.vp.SetContent(text)
		return
	}

	rendered, err := r.Render(text)
	if err != nil {
		m.vp.SetContent(text)
		return
	}

	m.vp.Height = max(1, m.height-m.chromeHeight())
	m.vp.SetContent(strings.TrimRight(rendered, "\n"))
	m.vp.GotoTop()
}

// chromeHeight is the number of lines used above and below the viewport in
// the note state: banner, header, and the hint line.
func (m *Model) chromeHeight() int {
	h := 3 // header + blank + hints
	if v := m.deps.Views.Active(); v != nil {
		if _, ok := v.Banner(); ok {
			h++
		}
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	switch m.state {
	case statePicker:
		return m.picker.View()
	case stateSettings:
		return m.settings.View()
	default:
		return m.noteView()
	}
}

// noteView renders the container's annotation stack above the note: the
// banner (when present), then the header, then the markdown body.
func (m Model) noteView() string {
	v := m.deps.Views.Active()
	if v == nil {
		return m.picker.View()
	}

	var b strings.Builder

	for _, el := range v.Container().Children() {
		switch {
		case el.HasClass(freshness.BannerClassWarning):
			b.WriteString(styles.BannerWarning().Width(m.width).Render("⚠ " + el.Text()))
			b.WriteString("\n")
		case el.HasClass(freshness.BannerClassError):
			b.WriteString(styles.BannerError().Width(m.width).Render("✗ " + el.Text()))
			b.WriteString("\n")
		case el.HasClass(headerClass):
			b.WriteString(styles.Header().Render(el.Text()))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.vp.View())
	b.WriteString("\n")

	hint := "j/k: scroll  q: back  s: settings"
	if _, ok := v.Banner(); ok {
		hint = "enter: open settings  " + hint
	}
	if m.err != nil {
		hint = fmt.Sprintf("error: %v", m.err)
	}
	b.WriteString(styles.Muted().Render(hint))

	return b.String()
}
