// Package formatting normalizes the contenteditable regions of a document.
package formatting

import (
	"github.com/nomocas/mini-wysiwyg/internal/documents"
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/internal/parser/html"
	"github.com/nomocas/mini-wysiwyg/lsp/helpers"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Formatting handles the textDocument/formatting request. Only editable
// regions with findings are rewritten; the rest of the document is left
// byte for byte.
func Formatting(req *types.RequestContext, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := params.TextDocument.URI
	log.Debug("Formatting requested: %s", uri)

	doc := req.Server.Document(uri)
	if doc == nil || !req.Server.IsServed(uri) {
		return nil, nil
	}

	return TextEdits(doc, doc.Regions(req.Server.Normalizer()), req.Server)
}

// TextEdits returns the edits normalizing regions of doc.
func TextEdits(doc *documents.Document, regions []html.Region, ctx types.ServerContext) ([]protocol.TextEdit, error) {
	edits, err := html.Edits(regions, ctx.Normalizer())
	if err != nil {
		return nil, err
	}

	ix := doc.Index()
	textEdits := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		textEdits = append(textEdits, protocol.TextEdit{
			Range:   helpers.ToRange(ix, e.StartByte, e.EndByte),
			NewText: e.Text,
		})
	}
	return textEdits, nil
}
