package types

import (
	"github.com/nomocas/mini-wysiwyg/internal/documents"
	"github.com/nomocas/mini-wysiwyg/markup"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// This unified context eliminates the need for handler-specific interfaces
// and enables dependency injection for testing.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration. SetConfig replaces the client settings layer;
	// GetConfig returns the effective, merged configuration.
	GetConfig() ServerConfig
	SetConfig(config ServerConfig)
	LoadWorkspaceConfig() error
	IsConfigFile(path string) bool
	Normalizer() *markup.Normalizer

	// IsServed reports whether the document at uri is one the server
	// checks and formats.
	IsServed(uri string) bool

	// Workspace initialization (called by Initialized handler)
	RegisterFileWatchers(ctx *glsp.Context) error

	// LSP context (for publishing diagnostics, etc.)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// Diagnostics model
	ClientDiagnosticCapability() *bool
	UsePullDiagnostics() bool
	SetUsePullDiagnostics(use bool)
	PublishDiagnostics(context *glsp.Context, uri string) error
}
