package lifecycle

import (
	"fmt"

	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification. Configuration and
// watcher failures are reported as warnings and never fail initialization.
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	req.Server.SetGLSPContext(req.GLSP)

	if err := req.Server.LoadWorkspaceConfig(); err != nil {
		req.AddWarning(fmt.Errorf("failed to load workspace configuration: %w", err))
	}

	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		req.AddWarning(fmt.Errorf("failed to register file watchers: %w", err))
	}

	return nil
}
