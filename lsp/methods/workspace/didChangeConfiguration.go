package workspace

import (
	"fmt"

	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration
// notification. Settings that cannot be parsed are reported and the
// previous configuration is kept.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	config, err := types.ParseSettings(params.Settings)
	if err != nil {
		req.AddWarning(fmt.Errorf("failed to parse configuration: %w", err))
		ShowMessage(req.GLSP, protocol.MessageTypeWarning, "wysiwyg: ignoring invalid settings: "+err.Error())
		return nil
	}

	req.Server.SetConfig(config)
	log.Debug("New configuration: %+v", req.Server.GetConfig())

	republish(req)
	return nil
}

// republish refreshes pushed diagnostics for every open document
func republish(req *types.RequestContext) {
	glspCtx := req.PushContext()
	if glspCtx == nil {
		return
	}
	for _, doc := range req.Server.AllDocuments() {
		if err := req.Server.PublishDiagnostics(glspCtx, doc.URI()); err != nil {
			req.AddWarning(fmt.Errorf("failed to publish diagnostics for %s: %w", doc.URI(), err))
		}
	}
}
