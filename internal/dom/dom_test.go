package dom_test

import (
	"testing"

	"github.com/nomocas/mini-wysiwyg/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestFragmentRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{name: "void element has no slash", markup: "a<br/>b", want: "a<br>b"},
		{name: "attributes keep order", markup: `<a href="x" target="_blank">l</a>`, want: `<a href="x" target="_blank">l</a>`},
		{name: "text is escaped", markup: "1 &lt; 2 &amp; 3", want: "1 &lt; 2 &amp; 3"},
		{name: "quotes in text stay literal", markup: `say "hi"`, want: `say "hi"`},
		{name: "attribute quotes are escaped", markup: `<a title='a "b"'>x</a>`, want: `<a title="a &quot;b&quot;">x</a>`},
		{name: "comments survive", markup: "<!-- note -->x", want: "<!-- note -->x"},
		{name: "empty", markup: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := dom.Fragment(tt.markup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dom.InnerHTML(root))
		})
	}
}

func TestTextContent(t *testing.T) {
	root, err := dom.Fragment("<b>he<i>ll</i></b>o<!-- hidden --><br>")
	require.NoError(t, err)

	assert.Equal(t, "hello", dom.TextContent(root))
	assert.True(t, dom.HasText(root))

	empty, err := dom.Fragment("<b><br></b><!-- x -->")
	require.NoError(t, err)
	assert.Equal(t, "", dom.TextContent(empty))
	assert.False(t, dom.HasText(empty))
}

func TestAttributes(t *testing.T) {
	a := dom.Elem("a", dom.Attrs("href", "/x", "style", "color:red"))

	v, ok := dom.Attr(a, "HREF")
	assert.True(t, ok)
	assert.Equal(t, "/x", v)

	dom.SetAttr(a, "target", "_self")
	dom.SetAttr(a, "href", "/y")
	assert.Equal(t, "/y", dom.GetAttr(a, "href"))
	assert.Equal(t, "_self", dom.GetAttr(a, "target"))

	assert.True(t, dom.RemoveAttr(a, "style"))
	assert.False(t, dom.RemoveAttr(a, "style"))
	assert.Equal(t, `<a href="/y" target="_self"></a>`, dom.OuterHTML(a))
}

func TestToggleClass(t *testing.T) {
	el := dom.Elem("div", dom.Attrs("class", "editor"))

	dom.ToggleClass(el, "empty", true)
	dom.ToggleClass(el, "empty", true)
	assert.Equal(t, "editor empty", dom.GetAttr(el, "class"))
	assert.True(t, dom.HasClass(el, "empty"))

	dom.ToggleClass(el, "empty", false)
	dom.ToggleClass(el, "editor", false)
	_, ok := dom.Attr(el, "class")
	assert.False(t, ok, "an emptied class list drops the attribute")
}

func TestChildSurgery(t *testing.T) {
	root, err := dom.Fragment("a<b>b</b>c")
	require.NoError(t, err)

	assert.Equal(t, "b", dom.Tag(dom.ChildAt(root, 1)))
	assert.Nil(t, dom.ChildAt(root, 3))
	assert.Nil(t, dom.ChildAt(root, -1))

	children := dom.DetachChildren(root)
	require.Len(t, children, 3)
	assert.Nil(t, root.FirstChild)

	dom.ReplaceChildren(root, []*html.Node{children[2], dom.Br(), children[0]})
	assert.Equal(t, "c<br>a", dom.InnerHTML(root))
}

func TestClosestIsBoundedByStop(t *testing.T) {
	root, err := dom.Fragment(`<a href="#"><b><i>x</i></b></a>`)
	require.NoError(t, err)
	anchor := root.FirstChild
	text := anchor.FirstChild.FirstChild.FirstChild

	assert.Same(t, anchor, dom.Closest(text, root, dom.IsAnchor))
	assert.Nil(t, dom.Closest(text, anchor, dom.IsAnchor), "stop node is never matched")
	assert.True(t, dom.Contains(root, text))
	assert.False(t, dom.Contains(anchor.FirstChild, anchor))
}

func TestIsEditable(t *testing.T) {
	root, err := dom.Fragment(`<div contenteditable="true"><p contenteditable="false"><b>x</b></p><i>y</i></div><span>z</span>`)
	require.NoError(t, err)
	region := root.FirstChild

	assert.True(t, dom.IsEditable(region))
	assert.False(t, dom.IsEditable(region.FirstChild.FirstChild))
	assert.True(t, dom.IsEditable(region.LastChild))
	assert.False(t, dom.IsEditable(root.LastChild))
}
