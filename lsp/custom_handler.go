package lsp

import (
	"encoding/json"

	"github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/diagnostic"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler routes the LSP 3.17 messages glsp v0.2.2 cannot decode and
// hands everything else to the embedded protocol.Handler.
type CustomHandler struct {
	*protocol.Handler // Pointer to avoid copying embedded mutex
	server            *Server
}

var _ glsp.Handler = (*CustomHandler)(nil)

// Handle implements glsp.Handler
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	switch context.Method {
	case "initialize":
		// Record the capability, then let protocol.Handler run initialize.
		h.server.SetClientDiagnosticCapability(DetectPullDiagnosticsSupport(context.Params))
	case diagnostic.MethodDocumentDiagnostic:
		return h.documentDiagnostic(context)
	}
	return h.Handler.Handle(context)
}

func (h *CustomHandler) documentDiagnostic(context *glsp.Context) (any, bool, bool, error) {
	var params diagnostic.DocumentDiagnosticParams
	if err := json.Unmarshal(context.Params, &params); err != nil {
		return nil, true, false, err
	}
	result, err := method(h.server, context.Method, diagnostic.DocumentDiagnostic)(context, &params)
	return result, true, true, err
}
