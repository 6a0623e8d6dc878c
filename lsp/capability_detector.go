package lsp

import (
	"encoding/json"
)

// rawInitializeParams picks out the LSP 3.17 client capabilities that the
// glsp 3.16 InitializeParams struct drops while decoding.
type rawInitializeParams struct {
	Capabilities struct {
		TextDocument *struct {
			Diagnostic json.RawMessage `json:"diagnostic"`
		} `json:"textDocument"`
	} `json:"capabilities"`
}

// DetectPullDiagnosticsSupport reports whether raw initialize params
// declare the textDocument.diagnostic capability. Params that do not
// decode count as a push-only client.
func DetectPullDiagnosticsSupport(rawParams json.RawMessage) bool {
	var params rawInitializeParams
	if err := json.Unmarshal(rawParams, &params); err != nil {
		return false
	}
	textDocument := params.Capabilities.TextDocument
	return textDocument != nil && len(textDocument.Diagnostic) > 0
}
