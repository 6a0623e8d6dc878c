package diagnostic

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Pull diagnostics arrived in LSP 3.17, after glsp v0.2.2. The request,
// report and capability shapes below follow
// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#textDocument_diagnostic
// and only carry the fields this server reads or writes.

// MethodDocumentDiagnostic is the pull diagnostics request
const MethodDocumentDiagnostic = "textDocument/diagnostic"

// DocumentDiagnosticParams are the textDocument/diagnostic params
type DocumentDiagnosticParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Identifier   string                          `json:"identifier,omitempty"`
}

// DocumentDiagnosticReportKind tells full reports from unchanged ones
type DocumentDiagnosticReportKind string

// DiagnosticFull marks a report listing every diagnostic of the document.
// Reports are never incremental since regions are rescanned per request.
const DiagnosticFull DocumentDiagnosticReportKind = "full"

// RelatedFullDocumentDiagnosticReport is the textDocument/diagnostic result
type RelatedFullDocumentDiagnosticReport struct {
	Kind  string                `json:"kind"`
	Items []protocol.Diagnostic `json:"items"`
}

// DiagnosticOptions is the diagnosticProvider server capability
type DiagnosticOptions struct {
	Identifier            string `json:"identifier,omitempty"`
	InterFileDependencies bool   `json:"interFileDependencies"`
	WorkspaceDiagnostics  bool   `json:"workspaceDiagnostics"`
}
