// Package testutil provides an in-memory editor.Host for tests: a parsed
// document, explicit selection, recorded commands, bubbling event
// dispatch and a virtual clock.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/nomocas/mini-wysiwyg/editor"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// Command is one recorded ExecCommand call.
type Command struct {
	Name   string
	ShowUI bool
	Value  string
}

type listener struct {
	handler editor.Handler
	removed bool
}

type timer struct {
	due     time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Host implements editor.Host in memory.
type Host struct {
	doc       *html.Node
	selection *editor.Selection
	active    *html.Node

	listeners map[*html.Node]map[editor.EventType][]*listener

	now    time.Duration
	seq    int
	timers []*timer

	// Commands records every ExecCommand call in order.
	Commands []Command
	// CommandFunc, when set, runs for each command and decides the
	// reported support. Without it every command is reported as run.
	CommandFunc func(Command) bool
	// FocusCalls counts calls to Focus.
	FocusCalls int
}

// NewHost parses body as the content of the host document's <body>.
func NewHost(body string) (*Host, error) {
	doc, err := html.Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body>" + body + "</body></html>"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse host document: %w", err)
	}
	return &Host{
		doc:       doc,
		listeners: make(map[*html.Node]map[editor.EventType][]*listener),
	}, nil
}

// MustHost is NewHost for tests.
func MustHost(t testing.TB, body string) *Host {
	t.Helper()
	h, err := NewHost(body)
	require.NoError(t, err)
	return h
}

// Document implements editor.Host.
func (h *Host) Document() *html.Node {
	return h.doc
}

// Query returns the first element matching sel, or nil.
func (h *Host) Query(sel string) *html.Node {
	return cascadia.MustCompile(sel).MatchFirst(h.doc)
}

// ExecCommand implements editor.Host.
func (h *Host) ExecCommand(command string, showUI bool, value string) bool {
	c := Command{Name: command, ShowUI: showUI, Value: value}
	h.Commands = append(h.Commands, c)
	if h.CommandFunc != nil {
		return h.CommandFunc(c)
	}
	return true
}

// CommandNames returns the names of the recorded commands.
func (h *Host) CommandNames() []string {
	names := make([]string, len(h.Commands))
	for i, c := range h.Commands {
		names[i] = c.Name
	}
	return names
}

// Selection implements editor.Host.
func (h *Host) Selection() *editor.Selection {
	if h.selection == nil {
		return nil
	}
	sel := *h.selection
	return &sel
}

// SetSelection replaces the current selection; nil clears it.
func (h *Host) SetSelection(sel *editor.Selection) {
	h.selection = sel
}

// SelectNode selects the whole of n with the given bounds.
func (h *Host) SelectNode(n *html.Node, bounds editor.Rect) {
	text := textOf(n)
	end := len(text)
	if n.Type == html.ElementNode {
		end = 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			end++
		}
	}
	h.selection = &editor.Selection{
		AnchorNode: n, AnchorOffset: 0,
		FocusNode: n, FocusOffset: end,
		Text:   text,
		Bounds: bounds,
	}
}

// Caret places a collapsed selection in n.
func (h *Host) Caret(n *html.Node, offset int) {
	h.selection = &editor.Selection{
		AnchorNode: n, AnchorOffset: offset,
		FocusNode: n, FocusOffset: offset,
	}
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
	}
	return b.String()
}

// ActiveElement implements editor.Host.
func (h *Host) ActiveElement() *html.Node {
	return h.active
}

// Focus implements editor.Host, blurring the previous element first.
func (h *Host) Focus(el *html.Node) {
	h.FocusCalls++
	h.moveFocus(el)
}

// Blur removes focus from the active element.
func (h *Host) Blur() {
	h.moveFocus(nil)
}

func (h *Host) moveFocus(el *html.Node) {
	if h.active == el {
		return
	}
	if prev := h.active; prev != nil {
		h.active = nil
		h.fire(prev, editor.Event{Type: editor.EventBlur, Target: prev})
	}
	h.active = el
	if el != nil {
		h.fire(el, editor.Event{Type: editor.EventFocus, Target: el})
	}
}

// Listen implements editor.Host.
func (h *Host) Listen(target *html.Node, t editor.EventType, handler editor.Handler) editor.Disposer {
	l := &listener{handler: handler}
	byType := h.listeners[target]
	if byType == nil {
		byType = make(map[editor.EventType][]*listener)
		h.listeners[target] = byType
	}
	byType[t] = append(byType[t], l)
	return func() {
		l.removed = true
	}
}

// ListenerCount returns how many registrations are still live.
func (h *Host) ListenerCount() int {
	n := 0
	for _, byType := range h.listeners {
		for _, ls := range byType {
			for _, l := range ls {
				if !l.removed {
					n++
				}
			}
		}
	}
	return n
}

// Dispatch delivers an event of type t at target. Events other than focus
// and blur bubble up through target's ancestors.
func (h *Host) Dispatch(target *html.Node, t editor.EventType, value string) {
	evt := editor.Event{Type: t, Target: target, Value: value}
	if t == editor.EventFocus || t == editor.EventBlur {
		h.fire(target, evt)
		return
	}
	for n := target; n != nil; n = n.Parent {
		h.fire(n, evt)
	}
}

// Click dispatches the mousedown, mouseup and click sequence at target.
func (h *Host) Click(target *html.Node) {
	h.Dispatch(target, editor.EventMouseDown, "")
	h.Dispatch(target, editor.EventMouseUp, "")
	h.Dispatch(target, editor.EventClick, "")
}

func (h *Host) fire(n *html.Node, evt editor.Event) {
	for _, l := range h.listeners[n][evt.Type] {
		if !l.removed {
			l.handler(evt)
		}
	}
}

// AfterFunc implements editor.Host on the virtual clock.
func (h *Host) AfterFunc(d time.Duration, f func()) editor.Timer {
	h.seq++
	t := &timer{due: h.now + d, seq: h.seq, f: f}
	h.timers = append(h.timers, t)
	return t
}

// Advance moves the virtual clock forward by d, running due callbacks in
// order, including ones they schedule within the window.
func (h *Host) Advance(d time.Duration) {
	until := h.now + d
	for {
		next := h.nextTimer(until)
		if next == nil {
			break
		}
		h.now = next.due
		next.fired = true
		next.f()
	}
	h.now = until
	h.compact()
}

func (h *Host) nextTimer(until time.Duration) *timer {
	var next *timer
	for _, t := range h.timers {
		if t.stopped || t.fired || t.due > until {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (h *Host) compact() {
	live := h.timers[:0]
	for _, t := range h.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	h.timers = live
}

// Pending returns how many timers are waiting to run.
func (h *Host) Pending() int {
	n := 0
	for _, t := range h.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Now returns the virtual clock.
func (h *Host) Now() time.Duration {
	return h.now
}

var _ editor.Host = (*Host)(nil)
