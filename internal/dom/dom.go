// Package dom holds the small set of tree helpers the editor needs on top
// of golang.org/x/net/html: fragment parsing, innerHTML-style
// serialization, text content, attributes, class lists and child-list
// surgery.
package dom

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup as the children of context. A nil context
// parses in the body of a <div>, which is how editable regions are hosted.
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	if context == nil {
		context = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	return nodes, nil
}

// Fragment parses markup into a fresh detached <div> container.
func Fragment(markup string) (*html.Node, error) {
	root := Elem("div", nil)
	if err := SetInnerHTML(root, markup); err != nil {
		return nil, err
	}
	return root, nil
}

// SetInnerHTML replaces el's children with the parsed markup.
func SetInnerHTML(el *html.Node, markup string) error {
	nodes, err := ParseFragment(markup, el)
	if err != nil {
		return err
	}
	ReplaceChildren(el, nodes)
	return nil
}

// Tag returns the lower-case tag name of an element node, or "" for any
// other node type.
func Tag(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// IsElement reports whether n is an element with the given tag name.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

// IsAnchor reports whether n is an <a> element.
func IsAnchor(n *html.Node) bool {
	return IsElement(n, "a")
}

// IsBreak reports whether n is a <br> element.
func IsBreak(n *html.Node) bool {
	return IsElement(n, "br")
}

// TextContent concatenates the text of every text node under n, like the
// DOM textContent getter.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// HasText reports whether TextContent(n) would be non-empty, without
// building the string.
func HasText(n *html.Node) bool {
	if n == nil {
		return false
	}
	if n.Type == html.TextNode {
		return n.Data != ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && c.Data != "" {
			return true
		}
		if c.Type == html.ElementNode && HasText(c) {
			return true
		}
	}
	return false
}

// Children returns a snapshot of n's child list.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ChildAt returns the i-th child of n, or nil when out of range.
func ChildAt(n *html.Node, i int) *html.Node {
	if n == nil || i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// DetachChildren removes and returns all of n's children.
func DetachChildren(n *html.Node) []*html.Node {
	children := Children(n)
	for _, c := range children {
		n.RemoveChild(c)
	}
	return children
}

// ReplaceChildren makes nodes the complete child list of n. Nodes still
// attached elsewhere are detached first.
func ReplaceChildren(n *html.Node, nodes []*html.Node) {
	DetachChildren(n)
	for _, c := range nodes {
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		n.AppendChild(c)
	}
}

// Closest walks from n up through its ancestors and returns the first node
// matching match. The walk stops (without matching) at stop, so a region
// root bounds the search; a nil stop walks to the document root.
func Closest(n, stop *html.Node, match func(*html.Node) bool) *html.Node {
	for ; n != nil && n != stop; n = n.Parent {
		if match(n) {
			return n
		}
	}
	return nil
}

// Contains reports whether n is ancestor or one of its descendants.
func Contains(ancestor, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Elem builds a detached element.
func Elem(tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     slices.Clone(attrs),
	}
	for _, c := range children {
		el.AppendChild(c)
	}
	return el
}

// Attrs turns key/value pairs into an attribute list.
func Attrs(kv ...string) []html.Attribute {
	attrs := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return attrs
}

// Text builds a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Br builds a detached <br> element.
func Br() *html.Node {
	return Elem("br", nil)
}
