package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/stale/internal/core/config"
	"github.com/colonyops/stale/internal/core/styles"
)

// settingsSavedMsg is emitted when the settings form is saved.
type settingsSavedMsg struct {
	cfg config.Config
}

// settingsClosedMsg is emitted when the settings form is dismissed.
type settingsClosedMsg struct{}

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldEnum
)

// settingsField is one row of the settings form: either a free text input
// or a fixed option set cycled with left/right.
type settingsField struct {
	key     string
	kind    fieldKind
	input   textinput.Model
	options []string
	optIdx  int
}

func textField(key, value, placeholder string) settingsField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 200
	ti.Width = 48
	return settingsField{key: key, kind: fieldText, input: ti}
}

func enumField(key, value string, options ...string) settingsField {
	idx := 0
	for i, opt := range options {
		if opt == value {
			idx = i
			break
		}
	}
	return settingsField{key: key, kind: fieldEnum, options: options, optIdx: idx}
}

func (f settingsField) value() string {
	if f.kind == fieldEnum {
		return f.options[f.optIdx]
	}
	return strings.TrimSpace(f.input.Value())
}

// SettingsModel edits the freshness configuration in place. Save validates
// the result and hands the full config back to the app model.
type SettingsModel struct {
	cfg     config.Config
	fields  []settingsField
	focused int
	err     error
	width   int
}

// NewSettingsModel builds the form pre-filled from cfg.
func NewSettingsModel(cfg config.Config) SettingsModel {
	f := cfg.Freshness
	fields := []settingsField{
		textField("message_template", f.MessageTemplate, "Last updated ${numberOfDays} days ago (${date})"),
		enumField("date_source", string(f.DateSource),
			string(config.DateSourceModifiedTime),
			string(config.DateSourceFrontMatter),
			string(config.DateSourceCaptureGroup),
		),
		textField("front_matter_key", f.FrontMatterKey, "updated"),
		textField("capture_group_pattern", f.CaptureGroupPattern, `^// (?P<date>[0-9]{4}/[0-9]{2}/[0-9]{2})`),
		textField("min_days_to_warn", strconv.Itoa(f.MinDaysToWarn), "180"),
		enumField("warn_on_missing_date", strconv.FormatBool(f.WarnOnMissingDate), "false", "true"),
		enumField("update_trigger", string(f.UpdateTrigger),
			string(config.TriggerOnOpen),
			string(config.TriggerOnOpenOrSave),
		),
	}

	m := SettingsModel{cfg: cfg, fields: fields}
	m.focusField(0)
	return m
}

func (m *SettingsModel) focusField(idx int) {
	for i := range m.fields {
		m.fields[i].input.Blur()
	}
	m.focused = idx
	if m.fields[idx].kind == fieldText {
		m.fields[idx].input.Focus()
	}
}

// Init implements tea.Model.
func (m SettingsModel) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return settingsClosedMsg{} }

	case "enter", "ctrl+s":
		cfg, err := m.build()
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, func() tea.Msg { return settingsSavedMsg{cfg: cfg} }

	case "up", "shift+tab":
		m.focusField((m.focused + len(m.fields) - 1) % len(m.fields))
		return m, nil

	case "down", "tab":
		m.focusField((m.focused + 1) % len(m.fields))
		return m, nil

	case "left", "right":
		f := &m.fields[m.focused]
		if f.kind == fieldEnum {
			step := 1
			if keyMsg.String() == "left" {
				step = len(f.options) - 1
			}
			f.optIdx = (f.optIdx + step) % len(f.options)
			return m, nil
		}
	}

	if m.fields[m.focused].kind == fieldText {
		var cmd tea.Cmd
		m.fields[m.focused].input, cmd = m.fields[m.focused].input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// build assembles and validates the edited configuration.
func (m *SettingsModel) build() (config.Config, error) {
	days, err := strconv.Atoi(m.byKey("min_days_to_warn"))
	if err != nil {
		return config.Config{}, fmt.Errorf("min_days_to_warn: must be an integer")
	}

	cfg := m.cfg
	cfg.Freshness = config.Freshness{
		MessageTemplate:     m.byKey("message_template"),
		DateSource:          config.DateSource(m.byKey("date_source")),
		FrontMatterKey:      m.byKey("front_matter_key"),
		CaptureGroupPattern: m.byKey("capture_group_pattern"),
		MinDaysToWarn:       days,
		WarnOnMissingDate:   m.byKey("warn_on_missing_date") == "true",
		UpdateTrigger:       config.UpdateTrigger(m.byKey("update_trigger")),
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (m *SettingsModel) byKey(key string) string {
	for _, f := range m.fields {
		if f.key == key {
			return f.value()
		}
	}
	return ""
}

// SetWidth sizes the form.
func (m *SettingsModel) SetWidth(w int) { m.width = w }

// View implements tea.Model.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Header().Render("Freshness Settings"))
	b.WriteString("\n\n")

	labelStyle := styles.Muted()
	focusStyle := lipgloss.NewStyle().Foreground(styles.Theme().Primary).Bold(true)

	for i, f := range m.fields {
		label := f.key
		if i == m.focused {
			b.WriteString(focusStyle.Render("> " + label))
		} else {
			b.WriteString(labelStyle.Render("  " + label))
		}
		b.WriteString("\n  ")

		switch f.kind {
		case fieldEnum:
			for j, opt := range f.options {
				if j > 0 {
					b.WriteString("  ")
				}
				if j == f.optIdx {
					b.WriteString(focusStyle.Render("[" + opt + "]"))
				} else {
					b.WriteString(labelStyle.Render(opt))
				}
			}
			b.WriteString("\n")
		default:
			b.WriteString(f.input.View())
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.BannerError().Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("tab/↑↓: field  ←→: option  enter: save  esc: cancel"))

	return b.String()
}
