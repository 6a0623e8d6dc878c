// Package editor is the headless core of the WYSIWYG widget: editable
// regions, the shared floating menu with its anchor panel, and the
// formatting dispatcher.
//
// The editor never edits markup itself beyond normalization. Command
// execution, selection geometry, focus, event delivery and timers belong
// to the Host, typically a browser bridge. All Session, Region and Menu
// methods must be called from the host's event loop; they do no locking.
package editor

import (
	"time"

	"golang.org/x/net/html"
)

// EventType names a host event.
type EventType string

const (
	EventFocus     EventType = "focus"
	EventBlur      EventType = "blur"
	EventClick     EventType = "click"
	EventDblClick  EventType = "dblclick"
	EventMouseUp   EventType = "mouseup"
	EventMouseDown EventType = "mousedown"
	EventInput     EventType = "input"
	EventChange    EventType = "change"
)

// Event is what the host delivers to a listener.
type Event struct {
	Type EventType
	// Target is the innermost node the event happened on.
	Target *html.Node
	// Value carries the new value of input and change events on form
	// controls.
	Value string
}

// Handler receives host events.
type Handler func(Event)

// Rect is a bounding box in viewport pixels.
type Rect struct {
	Left, Top, Width, Height float64
}

// Bottom returns the bottom edge of r.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal centre of r.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// Selection is a snapshot of the host's current selection. Offsets index
// characters when the node is a text node and children when it is an
// element.
type Selection struct {
	AnchorNode   *html.Node
	AnchorOffset int
	FocusNode    *html.Node
	FocusOffset  int
	// Text is the selected text; empty for a collapsed caret.
	Text string
	// Bounds is the bounding rectangle of the first range.
	Bounds Rect
}

// Collapsed reports whether the selection holds no text.
func (s *Selection) Collapsed() bool {
	return s == nil || s.Text == ""
}

// Timer is a pending deferred callback.
type Timer interface {
	// Stop cancels the callback; it reports false if it already ran.
	Stop() bool
}

// Host is the editing surface the editor drives.
type Host interface {
	// Document returns the root of the host document.
	Document() *html.Node
	// ExecCommand runs a native editing command on the current selection
	// and reports whether the host supported it.
	ExecCommand(command string, showUI bool, value string) bool
	// Selection returns the current selection, or nil when there is none.
	Selection() *Selection
	// ActiveElement returns the element holding focus.
	ActiveElement() *html.Node
	// Focus moves focus to el.
	Focus(el *html.Node)
	// Listen registers h for events of type t on target and returns the
	// matching unsubscribe.
	Listen(target *html.Node, t EventType, h Handler) Disposer
	// AfterFunc runs f on the event loop once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}
