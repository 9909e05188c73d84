package freshness

import "fmt"

// Banner element classes. BannerClass is the marker every banner carries;
// the kind class distinguishes warning from error presentation.
const (
	BannerClass        = "stale-banner"
	BannerClassWarning = "stale-banner-warning"
	BannerClassError   = "stale-banner-error"
)

// Presenter inserts and removes the staleness banner on a view. A view
// hosts at most one banner at any time; Insert always clears first and
// banners are never mutated in place.
type Presenter struct {
	settings SettingsOpener
}

// NewPresenter constructs a Presenter whose banners open the given
// settings surface on activation.
func NewPresenter(settings SettingsOpener) *Presenter {
	return &Presenter{settings: settings}
}

// Remove idempotently removes any banner from the view.
func (p *Presenter) Remove(v View) {
	v.Container().RemoveWhere(func(e *Element) bool {
		return e.HasClass(BannerClass)
	})
}

// Insert places a fresh banner with the given text and kind immediately
// before the view's header. Any existing banner is removed first, which
// guarantees the single-banner invariant.
func (p *Presenter) Insert(v View, text string, kind Kind) {
	p.Remove(v)

	el := NewElement(BannerClass, kindClass(kind))
	el.SetText(text)
	el.OnActivate(p.settings.OpenSettings)

	v.Container().InsertBefore(v.HeaderIndex(), el)
}

// Apply renders a Decision onto the view: clear, then redraw when shown.
func (p *Presenter) Apply(v View, d Decision) {
	if !d.Show {
		p.Remove(v)
		return
	}
	p.Insert(v, d.Text, d.Kind)
}

// BannerOn returns the view's banner element, if one is present.
func BannerOn(v View) (*Element, bool) {
	c := v.Container()
	idx := c.IndexWhere(func(e *Element) bool { return e.HasClass(BannerClass) })
	if idx < 0 {
		return nil, false
	}
	return c.Children()[idx], true
}

// kindClass maps a banner kind to its element class. An unknown kind is a
// programming-invariant violation.
func kindClass(kind Kind) string {
	switch kind {
	case KindWarning:
		return BannerClassWarning
	case KindError:
		return BannerClassError
	default:
		panic(fmt.Sprintf("freshness: unrecognized banner kind %q", kind))
	}
}
