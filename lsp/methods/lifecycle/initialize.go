package lifecycle

import (
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/internal/uriutil"
	"github.com/nomocas/mini-wysiwyg/internal/version"
	codeaction "github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/codeAction"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/diagnostic"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported in the initialize result
const ServerName = "wysiwyg-language-server"

// InitializeResult carries capabilities as a map so LSP 3.17 fields the
// glsp v0.2.2 structs lack can be advertised.
type InitializeResult struct {
	Capabilities map[string]any                       `json:"capabilities"`
	ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
}

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	// The CustomHandler records the capability from the raw params before
	// this handler runs. Without it, fall back to push.
	supportsPullDiagnostics := false
	if detected := req.Server.ClientDiagnosticCapability(); detected != nil {
		supportsPullDiagnostics = *detected
	}
	req.Server.SetUsePullDiagnostics(supportsPullDiagnostics)

	if supportsPullDiagnostics {
		log.Info("Using pull diagnostics model (LSP 3.17)")
	} else {
		log.Info("Using push diagnostics model (LSP 3.0)")
	}

	if params.RootURI != nil {
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
		log.Info("Workspace root: %s", req.Server.RootPath())
	} else if params.RootPath != nil {
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
		log.Info("Workspace root (from rootPath): %s", req.Server.RootPath())
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := map[string]any{
		"textDocumentSync": protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		"documentFormattingProvider": true,
		"codeActionProvider": protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{
				protocol.CodeActionKindQuickFix,
				codeaction.KindSourceFixAll,
			},
		},
	}

	if supportsPullDiagnostics {
		capabilities["diagnosticProvider"] = diagnostic.DiagnosticOptions{
			Identifier:            diagnostic.Source,
			InterFileDependencies: false,
			WorkspaceDiagnostics:  false,
		}
	}

	return InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
