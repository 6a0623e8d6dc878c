package testutil

import (
	"github.com/nomocas/mini-wysiwyg/internal/documents"
	"github.com/nomocas/mini-wysiwyg/markup"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/tliron/glsp"
)

// MockServerContext implements types.ServerContext for testing.
// It provides a minimal implementation with configurable behavior via callback functions.
type MockServerContext struct {
	docs        *documents.Manager
	rootURI     string
	rootPath    string
	config      types.ServerConfig
	normalizer  *markup.Normalizer
	glspContext *glsp.Context
	pull        bool
	clientPull  *bool

	// Optional callbacks for custom behavior in tests
	LoadWorkspaceConfigFunc func() error
	RegisterWatchersFunc    func(*glsp.Context) error
	IsServedFunc            func(string) bool
	IsConfigFileFunc        func(string) bool
	PublishDiagnosticsFunc  func(*glsp.Context, string) error

	// Tracking for tests that need to verify methods were called
	LoadWorkspaceConfigCalled bool
	RegisterWatchersCalled    bool
	Published                 []string
}

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	config := types.DefaultConfig()
	return &MockServerContext{
		docs:       documents.NewManager(),
		config:     config,
		normalizer: config.Normalizer(),
	}
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// GetConfig returns the server configuration
func (m *MockServerContext) GetConfig() types.ServerConfig {
	return m.config
}

// SetConfig merges config over the defaults, as the server does for
// client settings, and rebuilds the normalizer.
func (m *MockServerContext) SetConfig(config types.ServerConfig) {
	m.config = types.DefaultConfig().Merge(config)
	m.normalizer = m.config.Normalizer()
}

// LoadWorkspaceConfig records the call
func (m *MockServerContext) LoadWorkspaceConfig() error {
	m.LoadWorkspaceConfigCalled = true
	if m.LoadWorkspaceConfigFunc != nil {
		return m.LoadWorkspaceConfigFunc()
	}
	return nil
}

// IsConfigFile defaults to false
func (m *MockServerContext) IsConfigFile(path string) bool {
	if m.IsConfigFileFunc != nil {
		return m.IsConfigFileFunc(path)
	}
	return false
}

// Normalizer returns the normalizer for the current config
func (m *MockServerContext) Normalizer() *markup.Normalizer {
	return m.normalizer
}

// IsServed defaults to true
func (m *MockServerContext) IsServed(uri string) bool {
	if m.IsServedFunc != nil {
		return m.IsServedFunc(uri)
	}
	return true
}

// RegisterFileWatchers registers file watchers with the client
func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.RegisterWatchersCalled = true
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}

// ClientDiagnosticCapability returns what SetClientDiagnosticCapability stored
func (m *MockServerContext) ClientDiagnosticCapability() *bool {
	return m.clientPull
}

// SetClientDiagnosticCapability fakes the capability detection done on
// the raw initialize params
func (m *MockServerContext) SetClientDiagnosticCapability(has bool) {
	m.clientPull = &has
}

// UsePullDiagnostics reports the diagnostics model
func (m *MockServerContext) UsePullDiagnostics() bool {
	return m.pull
}

// SetUsePullDiagnostics sets the diagnostics model
func (m *MockServerContext) SetUsePullDiagnostics(use bool) {
	m.pull = use
}

// PublishDiagnostics records uri and runs PublishDiagnosticsFunc
func (m *MockServerContext) PublishDiagnostics(context *glsp.Context, uri string) error {
	m.Published = append(m.Published, uri)
	if m.PublishDiagnosticsFunc != nil {
		return m.PublishDiagnosticsFunc(context, uri)
	}
	return nil
}

var _ types.ServerContext = (*MockServerContext)(nil)
