// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

var (
	mu      sync.RWMutex
	current = themes[DefaultTheme]
)

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// SetTheme installs the named theme as the active palette. Unknown names
// keep the current palette and return false.
func SetTheme(name string) bool {
	p, ok := themes[name]
	if !ok {
		return false
	}
	mu.Lock()
	current = p
	mu.Unlock()
	return true
}

// Theme returns the active palette.
func Theme() Palette {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// BannerWarning styles the stale-note warning banner.
func BannerWarning() lipgloss.Style {
	p := Theme()
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning).
		Background(p.Surface).
		Padding(0, 1)
}

// BannerError styles the missing-date error banner.
func BannerError() lipgloss.Style {
	p := Theme()
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Error).
		Background(p.Surface).
		Padding(0, 1)
}

// Header styles the note title line.
func Header() lipgloss.Style {
	p := Theme()
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)
}

// Muted styles secondary text.
func Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Theme().Muted)
}
