package editor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/andybalholm/cascadia"
	"github.com/nomocas/mini-wysiwyg/internal/dom"
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/markup"
	"golang.org/x/net/html"
)

// ErrNoElement is returned when a selector matches nothing in the host
// document.
var ErrNoElement = errors.New("no element matches selector")

// Session is one independent editor: the regions attached to a host, the
// region currently holding focus, and the shared menu. Sessions do not
// share state, so several can run side by side and each is torn down by
// Close.
type Session struct {
	host       Host
	normalizer *markup.Normalizer
	regions    []*Region
	focused    *Region
	menu       *Menu
}

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	markupOptions []markup.Option
}

// WithReplacer installs a node substitution hook used whenever a region of
// this session is normalized.
func WithReplacer(r markup.Replacer) SessionOption {
	return func(c *sessionConfig) {
		c.markupOptions = append(c.markupOptions, markup.WithReplacer(r))
	}
}

// WithMarkupOptions passes options straight to the session's Normalizer.
func WithMarkupOptions(opts ...markup.Option) SessionOption {
	return func(c *sessionConfig) {
		c.markupOptions = append(c.markupOptions, opts...)
	}
}

// NewSession creates a session bound to host.
func NewSession(host Host, opts ...SessionOption) *Session {
	var cfg sessionConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{
		host:       host,
		normalizer: markup.New(cfg.markupOptions...),
	}
}

// Host returns the host the session drives.
func (s *Session) Host() Host {
	return s.host
}

// Normalizer returns the normalizer applied to the session's regions.
func (s *Session) Normalizer() *markup.Normalizer {
	return s.normalizer
}

// Attach turns el into an editable region of this session.
func (s *Session) Attach(el *html.Node) *Region {
	r := newRegion(s, el)
	s.regions = append(s.regions, r)
	log.Debug("attached region <%s>", dom.Tag(el))
	return r
}

// AttachSelector attaches the first element of the host document that
// matches the CSS selector sel.
func (s *Session) AttachSelector(sel string) (*Region, error) {
	compiled, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", sel, err)
	}
	el := compiled.MatchFirst(s.host.Document())
	if el == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoElement, sel)
	}
	return s.Attach(el), nil
}

// Regions returns the currently attached regions.
func (s *Session) Regions() []*Region {
	return slices.Clone(s.regions)
}

// Focused returns the region that last received focus and has not been
// blurred since, or nil.
func (s *Session) Focused() *Region {
	return s.focused
}

// Update normalizes the focused region and emits its change notification
// if the markup changed.
func (s *Session) Update() {
	if s.focused != nil {
		s.focused.Clean().Update()
	}
}

// Menu returns the session's menu, building it from opts on first use.
// Later calls return the existing menu and ignore opts.
func (s *Session) Menu(opts MenuOptions) *Menu {
	if s.menu == nil {
		s.menu = newMenu(s, opts)
	}
	return s.menu
}

// CurrentMenu returns the menu if one was built, or nil.
func (s *Session) CurrentMenu() *Menu {
	return s.menu
}

// DestroyMenu detaches the menu's listeners and releases it. Hides the
// regions scheduled for it are dropped.
func (s *Session) DestroyMenu() {
	if s.menu == nil {
		return
	}
	for _, r := range s.regions {
		r.willHideMenu.cancel()
	}
	s.menu.destroy()
	s.menu = nil
}

// Close destroys every region and the menu.
func (s *Session) Close() {
	for _, r := range slices.Clone(s.regions) {
		r.Destroy()
	}
	s.DestroyMenu()
	s.focused = nil
}

func (s *Session) forget(r *Region) {
	s.regions = slices.DeleteFunc(s.regions, func(other *Region) bool { return other == r })
	if s.focused == r {
		s.focused = nil
	}
}

// refocus gives focus back to the focused region after menu interaction
// took it.
func (s *Session) refocus() {
	if s.focused != nil && s.focused.el != s.host.ActiveElement() {
		s.host.Focus(s.focused.el)
	}
}

// moveMenuToSelection centres the menu on the selection, if a menu exists.
func (s *Session) moveMenuToSelection() {
	if s.menu != nil {
		s.menu.MoveToSelection()
	}
}
