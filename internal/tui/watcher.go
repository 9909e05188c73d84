package tui

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/colonyops/stale/internal/core/vault"
)

// noteModifiedMsg is sent when a note changes on disk.
type noteModifiedMsg struct {
	path string // absolute path of the saved note
}

// NoteWatcher watches the vault for note saves.
type NoteWatcher struct {
	watcher     *fsnotify.Watcher
	vault       *vault.Vault
	debounceDur time.Duration
}

// NewNoteWatcher creates a watcher over the vault root and all its
// subdirectories.
func NewNoteWatcher(v *vault.Vault) (*NoteWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &NoteWatcher{
		watcher:     watcher,
		vault:       v,
		debounceDur: 100 * time.Millisecond,
	}

	if err := w.addRecursive(v.Root()); err != nil {
		watcher.Close()
		return nil, err
	}

	return w, nil
}

// Start returns a command that blocks until the next relevant note change.
// The caller re-issues the command after handling each message.
func (w *NoteWatcher) Start() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if w.shouldIgnore(event.Name) {
					continue
				}

				// New directories join the watch set.
				if event.Has(fsnotify.Create) {
					_ = w.addRecursive(event.Name)
				}

				if !w.vault.Contains(event.Name) {
					continue
				}

				// Debounce: editors often write in bursts.
				time.Sleep(w.debounceDur)
				drained := false
				for !drained {
					select {
					case <-w.watcher.Events:
					default:
						drained = true
					}
				}

				return noteModifiedMsg{path: event.Name}

			case _, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				// Keep watching through transient errors.
			}
		}
	}
}

// addRecursive adds a directory and all its subdirectories to the watcher.
func (w *NoteWatcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip directories we can't read
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return w.watcher.Add(p)
		}
		return nil
	})
}

// shouldIgnore filters hidden files and editor temp files.
func (w *NoteWatcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	for _, ext := range []string{".tmp", ".lock", ".swp", ".swx", "~"} {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}

	return false
}

// Close stops the watcher.
func (w *NoteWatcher) Close() error {
	return w.watcher.Close()
}
