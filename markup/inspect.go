package markup

import (
	"fmt"

	"github.com/nomocas/mini-wysiwyg/internal/dom"
	"golang.org/x/net/html"
)

// FindingKind classifies markup that Clean would rewrite.
type FindingKind int

const (
	// WrapperTag is a span/p/div style wrapper that gets flattened.
	WrapperTag FindingKind = iota + 1
	// StyleAttribute is an inline style that gets stripped.
	StyleAttribute
	// EmptyElement is a text-free element that becomes a <br> or is dropped.
	EmptyElement
)

func (k FindingKind) String() string {
	switch k {
	case WrapperTag:
		return "wrapper"
	case StyleAttribute:
		return "style"
	case EmptyElement:
		return "empty"
	default:
		return "unknown"
	}
}

// Finding is one node Clean would rewrite.
type Finding struct {
	Kind FindingKind
	Tag  string
	Node *html.Node
}

func (f Finding) String() string {
	switch f.Kind {
	case WrapperTag:
		return fmt.Sprintf("<%s> wrapper is flattened", f.Tag)
	case StyleAttribute:
		return fmt.Sprintf("style attribute on <%s> is removed", f.Tag)
	case EmptyElement:
		return fmt.Sprintf("<%s> has no text content", f.Tag)
	default:
		return f.Tag
	}
}

// Inspect lists, in document order and without mutating anything, the
// nodes under root that Clean would rewrite. Children of text-free
// elements are not visited since Clean discards them.
func (n *Normalizer) Inspect(root *html.Node) []Finding {
	var findings []Finding
	var walk func(*html.Node)
	walk = func(parent *html.Node) {
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || dom.IsBreak(c) {
				continue
			}
			tag := dom.Tag(c)
			hasText := dom.HasText(c)
			switch {
			case n.flatten.Has(tag):
				findings = append(findings, Finding{Kind: WrapperTag, Tag: tag, Node: c})
				if hasText {
					walk(c)
				}
			case !hasText:
				findings = append(findings, Finding{Kind: EmptyElement, Tag: tag, Node: c})
			default:
				if _, ok := dom.Attr(c, "style"); ok {
					findings = append(findings, Finding{Kind: StyleAttribute, Tag: tag, Node: c})
				}
				walk(c)
			}
		}
	}
	if root != nil {
		walk(root)
	}
	return findings
}

// IsNormalized reports whether Clean would leave root unchanged, ignoring
// the replacement hook.
func (n *Normalizer) IsNormalized(root *html.Node) bool {
	return len(n.Inspect(root)) == 0
}
