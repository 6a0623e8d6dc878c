// Package markup keeps editable-region markup inside the small HTML subset
// the editor produces: no span/p/div wrappers, no inline styles and no
// content-free elements other than <br>.
//
// Browsers disagree on what their native editing commands emit (a Return
// key may produce <div>, <p> or <br>, bold may be <b> or a styled <span>).
// Normalizing after each editing session makes the stored markup the same
// whichever browser produced it.
package markup

import (
	"strings"

	"github.com/nomocas/mini-wysiwyg/internal/collections"
	"github.com/nomocas/mini-wysiwyg/internal/dom"
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"golang.org/x/net/html"
)

// Replacer substitutes a node kept by normalization. Returning nil or the
// node itself keeps it; any other node takes its place and receives its
// children.
type Replacer func(n *html.Node) *html.Node

var (
	// DefaultFlattenTags are the wrapper tags replaced by their content.
	DefaultFlattenTags = []string{"span", "p", "div"}
	// DefaultBreakTags are the flattened wrappers that leave a <br> behind.
	DefaultBreakTags = []string{"p", "div"}
)

// Normalizer rewrites markup trees. The zero value is not usable; build
// one with New.
type Normalizer struct {
	flatten  collections.Set[string]
	breaks   collections.Set[string]
	replacer Replacer
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithFlattenTags overrides the set of wrapper tags that are flattened.
func WithFlattenTags(tags ...string) Option {
	return func(n *Normalizer) {
		n.flatten = collections.NewFoldedSet(tags...)
	}
}

// WithBreakTags overrides the set of flattened tags that leave a <br>.
func WithBreakTags(tags ...string) Option {
	return func(n *Normalizer) {
		n.breaks = collections.NewFoldedSet(tags...)
	}
}

// WithReplacer installs the node replacement hook.
func WithReplacer(r Replacer) Option {
	return func(n *Normalizer) {
		n.replacer = r
	}
}

// New creates a Normalizer with the default tag sets.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		flatten: collections.NewFoldedSet(DefaultFlattenTags...),
		breaks:  collections.NewFoldedSet(DefaultBreakTags...),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Clean normalizes root's subtree in place and returns root.
func (n *Normalizer) Clean(root *html.Node) *html.Node {
	if root == nil {
		return nil
	}
	dom.ReplaceChildren(root, n.cleanChildren(root))
	return root
}

// CleanHTML normalizes a markup fragment. A result that is only a line
// break collapses to the empty string, as an emptied region would.
func (n *Normalizer) CleanHTML(markup string) (string, error) {
	root, err := dom.Fragment(markup)
	if err != nil {
		return "", err
	}
	return RegionHTML(n.Clean(root)), nil
}

// RegionHTML serializes a cleaned region, collapsing a lone <br>.
func RegionHTML(root *html.Node) string {
	out := dom.InnerHTML(root)
	if out == "<br>" {
		return ""
	}
	return out
}

// cleanChildren detaches parent's children and returns their normalized
// replacement sequence.
func (n *Normalizer) cleanChildren(parent *html.Node) []*html.Node {
	var out []*html.Node
	for _, child := range dom.DetachChildren(parent) {
		out = append(out, n.cleanNode(child)...)
	}
	return out
}

func (n *Normalizer) cleanNode(child *html.Node) []*html.Node {
	if child.Type != html.ElementNode || dom.IsBreak(child) {
		return []*html.Node{child}
	}

	tag := dom.Tag(child)
	hasText := dom.HasText(child)

	switch {
	case n.flatten.Has(tag):
		var out []*html.Node
		if n.breaks.Has(tag) && child.FirstChild != nil {
			out = append(out, dom.Br())
		}
		if hasText {
			out = append(out, n.cleanChildren(child)...)
		}
		return out

	case !hasText:
		// Native editing only leaves text-free elements around a line
		// break, so the element stands for one.
		if child.FirstChild == nil {
			log.Warn("normalize: dropping <%s> with no child nodes", tag)
			return nil
		}
		return []*html.Node{dom.Br()}
	}

	dom.ReplaceChildren(child, n.cleanChildren(child))
	dom.RemoveAttr(child, "style")

	if n.replacer != nil {
		if replacement := n.replacer(child); replacement != nil && replacement != child {
			if replacement.Parent != nil {
				replacement.Parent.RemoveChild(replacement)
			}
			for _, c := range dom.DetachChildren(child) {
				replacement.AppendChild(c)
			}
			return []*html.Node{replacement}
		}
	}
	return []*html.Node{child}
}

// IsFlattened reports whether tag is one of the wrapper tags n removes.
func (n *Normalizer) IsFlattened(tag string) bool {
	return n.flatten.Has(strings.ToLower(tag))
}
