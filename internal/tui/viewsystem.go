package tui

import (
	"github.com/colonyops/stale/internal/freshness"
)

// headerClass marks a view's header element inside its container.
const headerClass = "view-header"

// NoteView is the TUI's markdown view: one open note plus the annotation
// container banners are inserted into.
type NoteView struct {
	doc       freshness.Document
	container *freshness.Container
}

// newNoteView builds a view whose container starts with its header element.
func newNoteView(doc freshness.Document, title string) *NoteView {
	header := freshness.NewElement(headerClass)
	header.SetText(title)
	return &NoteView{doc: doc, container: freshness.NewContainer(header)}
}

// Document returns the note the view presents.
func (v *NoteView) Document() freshness.Document { return v.doc }

// Container returns the view's annotation container.
func (v *NoteView) Container() *freshness.Container { return v.container }

// HeaderIndex returns the insertion point for banners.
func (v *NoteView) HeaderIndex() int {
	return v.container.IndexWhere(func(e *freshness.Element) bool {
		return e.HasClass(headerClass)
	})
}

// Header returns the view's header element.
func (v *NoteView) Header() *freshness.Element {
	idx := v.HeaderIndex()
	if idx < 0 {
		return nil
	}
	return v.container.Children()[idx]
}

// Banner returns the view's banner element, if present.
func (v *NoteView) Banner() (*freshness.Element, bool) {
	return freshness.BannerOn(v)
}

// ViewManager implements freshness.ViewSystem for the TUI. At most one view
// is active; opening a note replaces the previous view entirely, so banner
// state never leaks across views.
type ViewManager struct {
	active *NoteView
}

// NewViewManager returns a manager with no active view.
func NewViewManager() *ViewManager {
	return &ViewManager{}
}

// ActiveView returns the active view, or nil when no note is open.
func (m *ViewManager) ActiveView() freshness.View {
	if m.active == nil {
		return nil
	}
	return m.active
}

// Active returns the concrete active view for rendering, or nil.
func (m *ViewManager) Active() *NoteView { return m.active }

// Activate opens a fresh view for the document and makes it active.
func (m *ViewManager) Activate(doc freshness.Document, title string) *NoteView {
	m.active = newNoteView(doc, title)
	return m.active
}

// Deactivate closes the active view.
func (m *ViewManager) Deactivate() { m.active = nil }

// SettingsRequest is the freshness.SettingsOpener for the TUI. Banner
// activation happens inside the update loop, so the request is recorded
// and consumed by the model on the same tick.
type SettingsRequest struct {
	pending bool
}

// OpenSettings records the request.
func (r *SettingsRequest) OpenSettings() { r.pending = true }

// Consume returns whether a request was pending and clears it.
func (r *SettingsRequest) Consume() bool {
	p := r.pending
	r.pending = false
	return p
}
