package lifecycle

import (
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/internal/parser/html"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")
	html.ClosePool()
	return nil
}
