package lsp

import (
	"path/filepath"

	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const fileWatcherID = "wysiwyg-config-watcher"

// configWatchers returns the glob patterns of the workspace configuration files.
func configWatchers(rootPath string) []protocol.FileSystemWatcher {
	names := append([]string{"package.json"}, ConfigFileNames...)
	watchers := make([]protocol.FileSystemWatcher, 0, len(names))
	for _, name := range names {
		pattern := name
		if rootPath != "" {
			pattern = filepath.ToSlash(filepath.Join(rootPath, name))
		}
		watchers = append(watchers, protocol.FileSystemWatcher{GlobPattern: pattern})
	}
	return watchers
}

// RegisterFileWatchers asks the client to watch the workspace configuration files
func (s *Server) RegisterFileWatchers(context *glsp.Context) error {
	// An empty context (created with &glsp.Context{}) won't have Call initialized
	if context == nil || context.Call == nil {
		log.Info("Skipping file watcher registration (no client context)")
		return nil
	}

	watchers := configWatchers(s.RootPath())
	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     fileWatcherID,
				Method: "workspace/didChangeWatchedFiles",
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: watchers,
				},
			},
		},
	}

	// client/registerCapability is a request. Calling it synchronously would
	// block the message loop that has to read the client's reply.
	go func(ctx *glsp.Context) {
		var result any
		ctx.Call("client/registerCapability", params, &result)
		log.Info("File watcher registration completed")
	}(context)

	log.Info("Sent file watcher registration request (%d watchers)", len(watchers))
	return nil
}
