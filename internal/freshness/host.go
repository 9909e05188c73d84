package freshness

import "slices"

// Element is a single annotation node hosted by a view's container. It
// carries CSS-like classes for querying, display text, and an activate
// callback (the click affordance).
type Element struct {
	classes  []string
	text     string
	activate func()
}

// NewElement returns an element carrying the given classes.
func NewElement(classes ...string) *Element {
	return &Element{classes: slices.Clone(classes)}
}

// HasClass reports whether the element carries the given class.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

// Text returns the element's display text.
func (e *Element) Text() string { return e.text }

// SetText sets the element's display text.
func (e *Element) SetText(text string) { e.text = text }

// OnActivate registers the element's activate callback.
func (e *Element) OnActivate(fn func()) { e.activate = fn }

// Activate invokes the activate callback, if any.
func (e *Element) Activate() {
	if e.activate != nil {
		e.activate()
	}
}

// Container is an ordered child-element list owned by a view. It supports
// the query/insert/remove surface the host view system exposes.
type Container struct {
	children []*Element
}

// NewContainer returns a container holding the given initial children.
func NewContainer(children ...*Element) *Container {
	return &Container{children: slices.Clone(children)}
}

// Children returns the container's elements in order.
func (c *Container) Children() []*Element {
	return slices.Clone(c.children)
}

// IndexWhere returns the index of the first element matching pred, or -1.
func (c *Container) IndexWhere(pred func(*Element) bool) int {
	return slices.IndexFunc(c.children, pred)
}

// InsertBefore inserts e immediately before index idx. An out-of-range idx
// is clamped to the container bounds.
func (c *Container) InsertBefore(idx int, e *Element) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(c.children) {
		idx = len(c.children)
	}
	c.children = slices.Insert(c.children, idx, e)
}

// RemoveWhere removes all elements matching pred and returns how many were
// removed.
func (c *Container) RemoveWhere(pred func(*Element) bool) int {
	before := len(c.children)
	c.children = slices.DeleteFunc(c.children, pred)
	return before - len(c.children)
}

// View is a host view presenting a single document.
type View interface {
	// Document returns the document the view presents.
	Document() Document
	// Container returns the view's annotation container.
	Container() *Container
	// HeaderIndex is the insertion point for banners: the index of the
	// view's header element within the container.
	HeaderIndex() int
}

// ViewSystem is the host collaborator supplying the active view.
type ViewSystem interface {
	// ActiveView returns the currently focused markdown-capable view, or
	// nil when none is active.
	ActiveView() View
}

// SettingsOpener is the host collaborator that opens the configuration
// surface when a banner is activated.
type SettingsOpener interface {
	OpenSettings()
}
