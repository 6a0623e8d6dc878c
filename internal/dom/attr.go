package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

func attrIndex(n *html.Node, key string) int {
	if n == nil {
		return -1
	}
	return slices.IndexFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && strings.EqualFold(a.Key, key)
	})
}

// Attr returns the value of attribute key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	i := attrIndex(n, key)
	if i < 0 {
		return "", false
	}
	return n.Attr[i].Val, true
}

// GetAttr returns the value of attribute key, or "" when absent.
func GetAttr(n *html.Node, key string) string {
	v, _ := Attr(n, key)
	return v
}

// SetAttr sets attribute key, adding it when absent.
func SetAttr(n *html.Node, key, val string) {
	if i := attrIndex(n, key); i >= 0 {
		n.Attr[i].Val = val
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key and reports whether it was present.
func RemoveAttr(n *html.Node, key string) bool {
	i := attrIndex(n, key)
	if i < 0 {
		return false
	}
	n.Attr = slices.Delete(n.Attr, i, i+1)
	return true
}

// Classes returns the element's class list.
func Classes(n *html.Node) []string {
	return strings.Fields(GetAttr(n, "class"))
}

// HasClass reports whether the element's class list contains class.
func HasClass(n *html.Node, class string) bool {
	return slices.Contains(Classes(n), class)
}

// ToggleClass adds class when on is true and removes it otherwise. An
// emptied class list removes the attribute.
func ToggleClass(n *html.Node, class string, on bool) {
	classes := Classes(n)
	has := slices.Contains(classes, class)
	switch {
	case on && !has:
		classes = append(classes, class)
	case !on && has:
		classes = slices.DeleteFunc(classes, func(c string) bool { return c == class })
	default:
		return
	}
	if len(classes) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(classes, " "))
}

// IsEditable reports whether an element accepts direct editing: it, or
// its nearest ancestor declaring contenteditable, is not "false".
func IsEditable(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if v, ok := Attr(n, "contenteditable"); ok {
			return !strings.EqualFold(strings.TrimSpace(v), "false")
		}
	}
	return false
}
