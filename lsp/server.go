package lsp

import (
	"fmt"
	"sync"

	"github.com/nomocas/mini-wysiwyg/internal/documents"
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/markup"
	"github.com/nomocas/mini-wysiwyg/internal/parser/html"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/lifecycle"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument"
	codeaction "github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/codeAction"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/diagnostic"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/formatting"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/workspace"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// ServerName is reported to clients in the initialize result.
const ServerName = lifecycle.ServerName

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server checks and normalizes the contenteditable regions of HTML documents.
type Server struct {
	documents  *documents.Manager
	glspServer *server.Server
	context    *glsp.Context
	rootURI    string // Workspace root URI
	rootPath   string // Workspace root path (file system)

	clientConfig types.ServerConfig // Settings sent by the client
	fileConfig   types.ServerConfig // .wysiwyg.yaml merged with package.json
	config       types.ServerConfig // Effective configuration
	normalizer   *markup.Normalizer // Built from config

	configMu                   sync.RWMutex // Protects everything below documents and glspServer
	clientDiagnosticCapability *bool        // Detected from raw initialize params (nil = not detected yet)
	usePullDiagnostics         bool         // Pull (LSP 3.17) vs push (LSP 3.0) diagnostics
}

// NewServer creates a new language server
func NewServer() (*Server, error) {
	s := &Server{
		documents: documents.NewManager(),
	}
	s.rebuildConfig()

	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentFormatting:          method(s, "textDocument/formatting", formatting.Formatting),
		TextDocumentCodeAction:          method(s, "textDocument/codeAction", codeaction.CodeAction),
	}

	// WORKAROUND: glsp v0.2.2 only knows LSP 3.16, so the CustomHandler
	// intercepts textDocument/diagnostic before protocol.Handler sees it.
	customHandler := &CustomHandler{
		Handler: &protocolHandler,
		server:  s,
	}

	s.glspServer = server.NewServer(customHandler, ServerName, log.GetLevel() == log.LevelDebug)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases the HTML parser pool. It is safe to call Close multiple times.
func (s *Server) Close() error {
	html.ClosePool()
	return nil
}

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// GLSPContext returns the GLSP context.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}

// ClientDiagnosticCapability returns the detected client diagnostic capability,
// or nil before initialize.
func (s *Server) ClientDiagnosticCapability() *bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.clientDiagnosticCapability
}

// SetClientDiagnosticCapability records whether the raw initialize params
// declared textDocument.diagnostic.
func (s *Server) SetClientDiagnosticCapability(hasCapability bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.clientDiagnosticCapability = &hasCapability
}

// UsePullDiagnostics reports whether the client pulls diagnostics via
// textDocument/diagnostic instead of receiving textDocument/publishDiagnostics.
func (s *Server) UsePullDiagnostics() bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.usePullDiagnostics
}

// SetUsePullDiagnostics sets whether to use pull diagnostics based on client capabilities
func (s *Server) SetUsePullDiagnostics(use bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.usePullDiagnostics = use
}

// PublishDiagnostics publishes diagnostics for a document
func (s *Server) PublishDiagnostics(context *glsp.Context, uri string) error {
	log.Debug("Publishing diagnostics for: %s", uri)

	workingContext := context
	if workingContext == nil {
		workingContext = s.GLSPContext()
	}
	if workingContext == nil {
		return fmt.Errorf("cannot publish diagnostics: no client context available")
	}

	if s.UsePullDiagnostics() {
		return nil
	}

	diagnostics, err := diagnostic.GetDiagnostics(s, uri)
	if err != nil {
		return err
	}

	if workingContext.Notify == nil {
		return nil
	}
	workingContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})

	return nil
}
