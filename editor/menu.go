package editor

import (
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/nomocas/mini-wysiwyg/internal/dom"
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"golang.org/x/net/html"
)

const (
	anchorUIClass = "wysiwyg-anchor-ui"
	// menuOffset is the gap between the selection's bottom edge and the menu.
	menuOffset = 8
	// linkSettleDelay waits for the host to finish re-wrapping a new link.
	linkSettleDelay = time.Millisecond
)

// LinkTargets are the choices offered by the anchor panel's target select.
var LinkTargets = []string{"_blank", "_self"}

var bodySelector = cascadia.MustCompile("body")

// Point is a menu position in viewport pixels.
type Point struct {
	Left, Top float64
}

// AnchorFields are the link properties shown in the anchor panel.
type AnchorFields struct {
	Href   string
	Title  string
	Target string
}

// Menu is the floating formatting panel shared by a session's regions.
type Menu struct {
	session *Session
	options MenuOptions

	el           *html.Node
	buttons      map[string]*html.Node
	anchorUI     *html.Node
	hrefInput    *html.Node
	titleInput   *html.Node
	targetSelect *html.Node

	shown      bool
	positioned bool
	position   Point

	panelOpen bool
	anchor    *html.Node
	owner     *Region
	fields    AnchorFields

	willFixLink *deferred
	subs        disposers
}

func newMenu(s *Session, opts MenuOptions) *Menu {
	m := &Menu{
		session:     s,
		options:     opts,
		buttons:     make(map[string]*html.Node),
		willFixLink: newDeferred(s.host, linkSettleDelay),
	}
	m.build()
	m.sync()
	return m
}

func (m *Menu) build() {
	host := m.session.host
	list := dom.Elem("ul", nil)
	for _, action := range m.options.actions() {
		button := dom.Elem("button", dom.Attrs("type", "button", "data-action", action))
		if err := dom.SetInnerHTML(button, m.options.icon(action)); err != nil {
			log.Warn("menu: bad icon markup for %s: %v", action, err)
		}
		list.AppendChild(dom.Elem("li", nil, button))
		m.buttons[action] = button
		m.subs.add(host.Listen(button, EventClick, func(Event) {
			m.session.Format(action)
		}))
	}

	m.hrefInput = dom.Elem("input", dom.Attrs("type", "text", "value", "", "placeholder", "href (http://...)"))
	m.titleInput = dom.Elem("input", dom.Attrs("type", "text", "value", "", "placeholder", "title"))
	m.targetSelect = dom.Elem("select", dom.Attrs("name", "target"))
	for _, target := range LinkTargets {
		m.targetSelect.AppendChild(dom.Elem("option", dom.Attrs("value", target), dom.Text(target)))
	}
	m.anchorUI = dom.Elem("div", dom.Attrs("class", anchorUIClass),
		m.hrefInput, m.titleInput, m.targetSelect)
	m.el = dom.Elem("div", dom.Attrs("class", m.options.class()), list, m.anchorUI)

	m.subs.add(host.Listen(m.hrefInput, EventInput, func(e Event) { m.SetHref(e.Value) }))
	m.subs.add(host.Listen(m.titleInput, EventInput, func(e Event) { m.SetTitle(e.Value) }))
	m.subs.add(host.Listen(m.targetSelect, EventChange, func(e Event) { m.SetTarget(e.Value) }))

	body := bodySelector.MatchFirst(host.Document())
	if body == nil {
		body = host.Document()
	}
	m.subs.add(host.Listen(body, EventClick, m.onBodyClick))
	m.subs.add(host.Listen(body, EventMouseDown, m.onBodyMouseDown))
}

// Element returns the menu's root element, for the caller to mount.
func (m *Menu) Element() *html.Node {
	return m.el
}

// Button returns the button element dispatching action, or nil.
func (m *Menu) Button(action string) *html.Node {
	return m.buttons[action]
}

// Shown reports whether the menu is visible.
func (m *Menu) Shown() bool {
	return m.shown
}

// Show makes the menu visible.
func (m *Menu) Show() {
	m.shown = true
	m.sync()
}

// Hide closes the anchor panel and hides the menu.
func (m *Menu) Hide() {
	m.HideAnchorPanel()
	m.shown = false
	m.sync()
}

// Position returns where the menu was last placed.
func (m *Menu) Position() Point {
	return m.position
}

// MoveToSelection centres the menu under the current selection and opens
// the anchor panel when the selection sits inside a link. Without a
// selection it does nothing.
func (m *Menu) MoveToSelection() {
	sel := m.session.host.Selection()
	if sel == nil {
		return
	}
	m.position = Point{Left: sel.Bounds.CenterX(), Top: sel.Bounds.Bottom() + menuOffset}
	m.positioned = true
	m.Show()

	var stop *html.Node
	if f := m.session.focused; f != nil {
		stop = f.el
	}
	if a := dom.Closest(selectionStart(sel), stop, dom.IsAnchor); a != nil {
		m.ShowAnchorPanel(a)
	} else {
		m.HideAnchorPanel()
	}
}

// selectionStart returns the node the link lookup starts from. A
// selection made by double-clicking a link may be reported with element
// containers and child offsets; when that range brackets exactly one <a>,
// the link itself is the start.
func selectionStart(sel *Selection) *html.Node {
	start := sel.AnchorNode
	if isElementNode(sel.AnchorNode) && isElementNode(sel.FocusNode) {
		first := dom.ChildAt(sel.AnchorNode, sel.AnchorOffset)
		last := dom.ChildAt(sel.FocusNode, sel.FocusOffset-1)
		if dom.IsAnchor(first) && first == last {
			start = first
		}
	}
	return start
}

func isElementNode(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// AnchorPanelOpen reports whether the anchor panel is visible.
func (m *Menu) AnchorPanelOpen() bool {
	return m.panelOpen
}

// CurrentAnchor returns the link being edited, or nil.
func (m *Menu) CurrentAnchor() *html.Node {
	return m.anchor
}

// AnchorFields returns the values shown in the anchor panel.
func (m *Menu) AnchorFields() AnchorFields {
	return m.fields
}

// ShowAnchorPanel opens the anchor panel on a, pre-filled from its
// attributes. The focused region becomes the panel's owner.
func (m *Menu) ShowAnchorPanel(a *html.Node) {
	m.anchor = a
	m.owner = m.session.focused
	m.panelOpen = true
	m.fields = AnchorFields{
		Href:   dom.GetAttr(a, "href"),
		Title:  dom.GetAttr(a, "title"),
		Target: dom.GetAttr(a, "target"),
	}
	m.sync()
}

// HideAnchorPanel closes the anchor panel. The owning region is
// normalized and notified, committing edits made through the panel.
func (m *Menu) HideAnchorPanel() {
	if owner := m.owner; owner != nil {
		m.owner = nil
		owner.Clean().Update()
	}
	m.anchor = nil
	m.panelOpen = false
	m.sync()
}

func (m *Menu) clearAnchorPanel() {
	m.anchor = nil
	m.fields = AnchorFields{}
	m.sync()
}

// SetHref sets the edited link's href.
func (m *Menu) SetHref(href string) {
	m.setAnchorAttr("href", href, &m.fields.Href)
}

// SetTitle sets the edited link's title.
func (m *Menu) SetTitle(title string) {
	m.setAnchorAttr("title", title, &m.fields.Title)
}

// SetTarget sets the edited link's target.
func (m *Menu) SetTarget(target string) {
	m.setAnchorAttr("target", target, &m.fields.Target)
}

func (m *Menu) setAnchorAttr(key, val string, field *string) {
	if m.anchor == nil {
		return
	}
	dom.SetAttr(m.anchor, key, val)
	*field = val
	m.sync()
}

// fixCreatedLink forces href and target on the link the host just
// created around the selection, once the host has settled, and opens the
// anchor panel on it. The host may re-wrap a fresh link in another <a>
// that lacks the attributes, so the lookup waits and starts from the
// focus node captured now.
func (m *Menu) fixCreatedLink(sel *Selection) {
	if sel == nil {
		return
	}
	focus := sel.FocusNode
	m.willFixLink.schedule(func() {
		a := dom.Closest(focus, nil, dom.IsAnchor)
		if a == nil {
			return
		}
		dom.SetAttr(a, "href", "")
		dom.SetAttr(a, "target", "_blank")
		m.clearAnchorPanel()
		m.ShowAnchorPanel(a)
	})
}

// onBodyClick hides the menu on clicks outside it and the focused region.
func (m *Menu) onBodyClick(e Event) {
	if !m.Shown() {
		return
	}
	if !m.inside(e.Target) {
		m.Hide()
	}
}

// onBodyMouseDown ends editing when the pointer goes down outside the
// focused region and the menu.
func (m *Menu) onBodyMouseDown(e Event) {
	if m.session.focused == nil {
		return
	}
	if !m.inside(e.Target) {
		m.session.Update()
		m.Hide()
	}
}

func (m *Menu) inside(n *html.Node) bool {
	if dom.Contains(m.el, n) {
		return true
	}
	f := m.session.focused
	return f != nil && f.el != nil && dom.Contains(f.el, n)
}

func (m *Menu) destroy() {
	m.subs.dispose()
	m.willFixLink.cancel()
	m.anchor = nil
	m.owner = nil
}

// sync mirrors the menu state onto its markup.
func (m *Menu) sync() {
	var style []string
	if m.positioned {
		style = append(style,
			"left:"+px(m.position.Left),
			"top:"+px(m.position.Top))
	}
	if !m.shown {
		style = append(style, "display:none")
	}
	setStyle(m.el, style)

	if m.panelOpen {
		setStyle(m.anchorUI, nil)
	} else {
		setStyle(m.anchorUI, []string{"display:none"})
	}

	dom.SetAttr(m.hrefInput, "value", m.fields.Href)
	dom.SetAttr(m.titleInput, "value", m.fields.Title)
	for o := m.targetSelect.FirstChild; o != nil; o = o.NextSibling {
		if dom.GetAttr(o, "value") == m.fields.Target {
			dom.SetAttr(o, "selected", "selected")
		} else {
			dom.RemoveAttr(o, "selected")
		}
	}
}

func setStyle(el *html.Node, decls []string) {
	if len(decls) == 0 {
		dom.RemoveAttr(el, "style")
		return
	}
	dom.SetAttr(el, "style", strings.Join(decls, ";")+";")
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
