package documents_test

import (
	"testing"

	"github.com/nomocas/mini-wysiwyg/internal/documents"
	"github.com/nomocas/mini-wysiwyg/markup"
	"github.com/nomocas/mini-wysiwyg/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentSetContent(t *testing.T) {
	doc := documents.NewDocument("file:///a.html", "html", 2, "<p>a</p>")
	assert.Equal(t, "file:///a.html", doc.URI())
	assert.Equal(t, "html", doc.LanguageID())

	require.NoError(t, doc.SetContent("<p>b</p>", 3))
	assert.Equal(t, "<p>b</p>", doc.Content())
	assert.Equal(t, 3, doc.Version())

	err := doc.SetContent("<p>stale</p>", 1)
	assert.ErrorContains(t, err, "stale")
	assert.Equal(t, "<p>b</p>", doc.Content())
}

func TestDocumentCachesRegions(t *testing.T) {
	doc := documents.NewDocument("file:///a.html", "html", 1, `<div contenteditable><span>x</span></div>`)
	n := markup.New()

	first := doc.Regions(n)
	require.Len(t, first, 1)
	assert.Len(t, first[0].Findings, 1)
	assert.Equal(t, position.Point{Line: 0, Character: 41}, doc.Index().End())

	require.NoError(t, doc.SetContent("<div contenteditable>x</div>\n", 2))
	second := doc.Regions(n)
	require.Len(t, second, 1)
	assert.Empty(t, second[0].Findings)
	assert.Equal(t, position.Point{Line: 1}, doc.Index().End())

	other := markup.New(markup.WithFlattenTags("b"))
	require.NoError(t, doc.SetContent("<div contenteditable><b>x</b></div>", 3))
	assert.Empty(t, doc.Regions(n)[0].Findings)
	assert.Len(t, doc.Regions(other)[0].Findings, 1, "a different normalizer rescans")
}
