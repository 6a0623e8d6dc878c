package diagnostic

import (
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/markup"
	"github.com/nomocas/mini-wysiwyg/internal/parser/html"
	"github.com/nomocas/mini-wysiwyg/lsp/helpers"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source is set on every diagnostic the server reports
const Source = "wysiwyg"

// DocumentDiagnostic handles the textDocument/diagnostic request (pull diagnostics)
//
// This is an LSP 3.17 feature. Since glsp v0.2.2 only supports LSP 3.16, this handler
// is called via CustomHandler which intercepts the method before it reaches protocol.Handler.
func DocumentDiagnostic(req *types.RequestContext, params *DocumentDiagnosticParams) (any, error) {
	uri := params.TextDocument.URI
	log.Debug("Pull diagnostics requested for: %s", uri)

	diagnostics, err := GetDiagnostics(req.Server, uri)
	if err != nil {
		return nil, err
	}

	return RelatedFullDocumentDiagnosticReport{
		Kind:  string(DiagnosticFull),
		Items: diagnostics,
	}, nil
}

// severity maps a finding kind to a diagnostic severity. Empty elements
// are legal markup the normalizer drops, so they are only informational.
func severity(kind markup.FindingKind) protocol.DiagnosticSeverity {
	if kind == markup.EmptyElement {
		return protocol.DiagnosticSeverityInformation
	}
	return protocol.DiagnosticSeverityWarning
}

// GetDiagnostics reports every markup the normalizer would rewrite inside
// the editable regions of the document. Unknown or unserved documents
// yield no diagnostics.
func GetDiagnostics(ctx types.ServerContext, uri string) ([]protocol.Diagnostic, error) {
	diagnostics := []protocol.Diagnostic{}

	doc := ctx.Document(uri)
	if doc == nil || !ctx.IsServed(uri) {
		return diagnostics, nil
	}

	ix := doc.Index()
	for _, region := range doc.Regions(ctx.Normalizer()) {
		for _, finding := range region.Findings {
			diagnostics = append(diagnostics, toDiagnostic(finding, helpers.ToRange(ix, finding.StartByte, finding.EndByte)))
		}
	}

	return diagnostics, nil
}

func toDiagnostic(finding html.Finding, r protocol.Range) protocol.Diagnostic {
	sev := severity(finding.Kind)
	source := Source
	code := finding.Kind.String()
	return protocol.Diagnostic{
		Range:    r,
		Severity: &sev,
		Code:     &protocol.IntegerOrString{Value: code},
		Source:   &source,
		Message:  finding.Message(),
	}
}
