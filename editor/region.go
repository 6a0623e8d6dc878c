package editor

import (
	"time"

	"github.com/nomocas/mini-wysiwyg/internal/dom"
	"golang.org/x/net/html"
)

const (
	// blurDelay gives a menu button click the chance to register before a
	// blur is taken as the end of editing.
	blurDelay = 10 * time.Millisecond
	// hideMenuDelay lets a double click cancel the hide scheduled by its
	// first click.
	hideMenuDelay = 300 * time.Millisecond

	emptyClass = "empty"
)

// ChangeEvent is emitted when a region's normalized markup changes.
type ChangeEvent struct {
	Value  string
	Node   *html.Node
	Region *Region
}

// Region is an editable element attached to a session.
type Region struct {
	session *Session
	el      *html.Node
	value   string

	willBlur     *deferred
	willHideMenu *deferred

	listeners  map[int]func(ChangeEvent)
	nextListen int
	subs       disposers
}

func newRegion(s *Session, el *html.Node) *Region {
	if _, ok := dom.Attr(el, "contenteditable"); !ok {
		dom.SetAttr(el, "contenteditable", "true")
	}
	r := &Region{
		session:      s,
		el:           el,
		value:        dom.InnerHTML(el),
		willBlur:     newDeferred(s.host, blurDelay),
		willHideMenu: newDeferred(s.host, hideMenuDelay),
		listeners:    make(map[int]func(ChangeEvent)),
	}
	r.listen(EventFocus, r.onFocus)
	r.listen(EventBlur, r.onBlur)
	r.listen(EventDblClick, r.onDblClick)
	r.listen(EventMouseUp, r.onMouseUp)
	r.listen(EventClick, r.onClick)
	r.listen(EventInput, r.onInput)
	return r
}

func (r *Region) listen(t EventType, h Handler) {
	r.subs.add(r.session.host.Listen(r.el, t, h))
}

// Element returns the region's element, or nil once destroyed.
func (r *Region) Element() *html.Node {
	return r.el
}

// HTML returns the region's current markup.
func (r *Region) HTML() string {
	return dom.InnerHTML(r.el)
}

// SetHTML replaces the region's markup. It does not emit a change event.
func (r *Region) SetHTML(markup string) error {
	return dom.SetInnerHTML(r.el, markup)
}

// Empty reports whether the region holds no content.
func (r *Region) Empty() bool {
	switch r.HTML() {
	case "", "<br>":
		return true
	}
	return false
}

// Clean normalizes the region's markup in place. A region left holding a
// single line break is emptied.
func (r *Region) Clean() *Region {
	if r.el == nil {
		return r
	}
	r.session.normalizer.Clean(r.el)
	if r.HTML() == "<br>" {
		dom.DetachChildren(r.el)
	}
	return r
}

// Update emits a ChangeEvent when the markup differs from the last value
// seen.
func (r *Region) Update() {
	if r.el == nil {
		return
	}
	value := r.HTML()
	if value == r.value {
		return
	}
	r.value = value
	evt := ChangeEvent{Value: value, Node: r.el, Region: r}
	for i := 0; i < r.nextListen; i++ {
		if fn, ok := r.listeners[i]; ok {
			fn(evt)
		}
	}
}

// OnChange subscribes fn to change events.
func (r *Region) OnChange(fn func(ChangeEvent)) Disposer {
	id := r.nextListen
	r.nextListen++
	r.listeners[id] = fn
	return Once(func() { delete(r.listeners, id) })
}

// Destroy detaches the region's listeners and clears its references.
func (r *Region) Destroy() {
	if r.el == nil {
		return
	}
	r.subs.dispose()
	r.willBlur.cancel()
	r.willHideMenu.cancel()
	r.session.forget(r)
	if m := r.session.menu; m != nil && m.owner == r {
		m.owner = nil
	}
	r.el = nil
	r.value = ""
	clear(r.listeners)
}

func (r *Region) editable() bool {
	return r.el != nil && dom.IsEditable(r.el)
}

func (r *Region) onFocus(Event) {
	r.session.focused = r
	r.willBlur.cancel()
}

func (r *Region) onBlur(Event) {
	r.willBlur.schedule(func() {
		if r.session.focused == r {
			r.session.focused = nil
		}
		r.Clean().Update()
	})
}

func (r *Region) onDblClick(Event) {
	if r.session.focused == nil || !r.editable() {
		return
	}
	r.willHideMenu.cancel()
	r.session.moveMenuToSelection()
}

func (r *Region) onMouseUp(Event) {
	if r.session.focused == nil || !r.editable() {
		return
	}
	if !r.session.host.Selection().Collapsed() {
		r.willHideMenu.cancel()
		r.session.moveMenuToSelection()
	}
}

func (r *Region) onClick(Event) {
	m := r.session.menu
	if m == nil || !r.editable() {
		return
	}
	if m.Shown() && r.session.host.Selection().Collapsed() {
		r.willHideMenu.schedule(func() {
			if r.session.menu == m {
				m.Hide()
			}
		})
	}
}

func (r *Region) onInput(Event) {
	if r.el != nil {
		dom.ToggleClass(r.el, emptyClass, r.Empty())
	}
}
