package lifecycle

import (
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles $/setTrace. The server never sends $/logTrace; the
// stderr log level is set by --log-level alone.
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	log.Debug("Client trace value: %s", params.Value)
	return nil
}
