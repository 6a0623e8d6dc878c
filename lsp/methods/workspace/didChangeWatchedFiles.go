package workspace

import (
	"fmt"

	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/internal/uriutil"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles
// notification. Any change to a workspace configuration file, deletion
// included, reloads the configuration once.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	log.Debug("Watched files changed: %d files", len(params.Changes))

	needsReload := false
	for _, change := range params.Changes {
		path := uriutil.URIToPath(change.URI)
		log.Debug("File change: %s (type: %d)", path, change.Type)
		if req.Server.IsConfigFile(path) {
			needsReload = true
		}
	}

	if !needsReload {
		return nil
	}

	log.Info("Reloading workspace configuration")
	if err := req.Server.LoadWorkspaceConfig(); err != nil {
		req.AddWarning(fmt.Errorf("failed to reload configuration: %w", err))
	}

	republish(req)
	return nil
}
