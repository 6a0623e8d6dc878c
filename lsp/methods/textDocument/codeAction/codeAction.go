package codeaction

import (
	"fmt"
	"strings"

	"github.com/nomocas/mini-wysiwyg/internal/documents"
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/internal/parser/html"
	"github.com/nomocas/mini-wysiwyg/lsp/helpers"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/diagnostic"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/formatting"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// KindSourceFixAll is the LSP source.fixAll code action kind, which glsp
// v0.2.2 does not define.
const KindSourceFixAll protocol.CodeActionKind = "source.fixAll"

// CodeAction handles the textDocument/codeAction request. It offers a
// quick fix for each editable region with findings that touches the
// requested range, and a source.fixAll action normalizing every region.
func CodeAction(req *types.RequestContext, params *protocol.CodeActionParams) (any, error) {
	uri := params.TextDocument.URI
	log.Debug("CodeAction requested: %s", uri)

	doc := req.Server.Document(uri)
	if doc == nil || !req.Server.IsServed(uri) {
		return nil, nil
	}

	regions := doc.Regions(req.Server.Normalizer())
	actions := []protocol.CodeAction{}

	if wants(params.Context.Only, protocol.CodeActionKindQuickFix) {
		for _, region := range regions {
			if len(region.Findings) == 0 {
				continue
			}
			r := helpers.ToRange(doc.Index(), region.StartByte, region.EndByte)
			if !helpers.RangesIntersect(params.Range, r) {
				continue
			}
			action, err := regionAction(req, doc, region, r, params.Context.Diagnostics)
			if err != nil {
				req.AddWarning(err)
				continue
			}
			if action != nil {
				actions = append(actions, *action)
			}
		}
	}

	if wants(params.Context.Only, KindSourceFixAll) {
		action, err := fixAllAction(req, doc, regions)
		if err != nil {
			return nil, err
		}
		if action != nil {
			actions = append(actions, *action)
		}
	}

	return actions, nil
}

// wants reports whether kind passes the client's only filter. A filter
// entry matches its own kind and every kind below it.
func wants(only []protocol.CodeActionKind, kind protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, o := range only {
		if kind == o || strings.HasPrefix(string(kind), string(o)+".") {
			return true
		}
	}
	return false
}

// regionAction builds the quick fix normalizing one region. It attaches
// the client's diagnostics from this server that fall inside the region.
func regionAction(req *types.RequestContext, doc *documents.Document, region html.Region, r protocol.Range, diagnostics []protocol.Diagnostic) (*protocol.CodeAction, error) {
	edits, err := formatting.TextEdits(doc, []html.Region{region}, req.Server)
	if err != nil {
		return nil, fmt.Errorf("cannot normalize <%s> region: %w", region.Tag, err)
	}
	if len(edits) == 0 {
		return nil, nil
	}

	kind := protocol.CodeActionKindQuickFix
	preferred := true
	action := protocol.CodeAction{
		Title:       fmt.Sprintf("Normalize editable <%s>", region.Tag),
		Kind:        &kind,
		IsPreferred: &preferred,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[string][]protocol.TextEdit{doc.URI(): edits},
		},
	}

	for _, d := range diagnostics {
		if d.Source != nil && *d.Source == diagnostic.Source && helpers.RangesIntersect(d.Range, r) {
			action.Diagnostics = append(action.Diagnostics, d)
		}
	}

	return &action, nil
}

// fixAllAction builds the source.fixAll action, or nil when the document
// is already normalized.
func fixAllAction(req *types.RequestContext, doc *documents.Document, regions []html.Region) (*protocol.CodeAction, error) {
	edits, err := formatting.TextEdits(doc, regions, req.Server)
	if err != nil {
		return nil, err
	}
	if len(edits) == 0 {
		return nil, nil
	}

	kind := KindSourceFixAll
	return &protocol.CodeAction{
		Title: "Normalize all editable regions",
		Kind:  &kind,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[string][]protocol.TextEdit{doc.URI(): edits},
		},
	}, nil
}
