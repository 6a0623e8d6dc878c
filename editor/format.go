package editor

import (
	"github.com/nomocas/mini-wysiwyg/internal/collections"
	"github.com/nomocas/mini-wysiwyg/internal/log"
)

// linkPlaceholder is passed to createLink; hosts ignore or rewrap the real
// URL, so the created link gets its href from the anchor panel instead.
const linkPlaceholder = "about:blank"

// blockActions are formatted with formatBlock rather than run as commands.
var blockActions = collections.NewSet("h1", "h2", "h3", "h4", "h5", "h6", "p")

// Format applies action to the host's current selection, in whichever
// region it sits. Any trigger may call it, not only menu buttons. Focus is
// given back to the focused region afterwards.
func (s *Session) Format(action string) {
	switch {
	case blockActions.Has(action):
		s.exec("formatBlock", action)
	case action == "createLink":
		s.exec("createLink", linkPlaceholder)
		if s.menu != nil {
			s.menu.fixCreatedLink(s.host.Selection())
		}
	default:
		s.exec(action, "")
		if action == "unlink" && s.menu != nil {
			s.menu.HideAnchorPanel()
		}
	}
	s.refocus()
}

func (s *Session) exec(command, value string) {
	if !s.host.ExecCommand(command, false, value) {
		log.Debug("host did not run %s", command)
	}
}
