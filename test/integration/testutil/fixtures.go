package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nomocas/mini-wysiwyg/internal/uriutil"
	"github.com/nomocas/mini-wysiwyg/lsp"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/lifecycle"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// FixtureRoot returns the path to the test fixtures directory
func FixtureRoot() string {
	return filepath.Join("..", "fixtures")
}

// LoadHTMLFixture loads an HTML fixture file and returns the content
func LoadHTMLFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(FixtureRoot(), "html", name)
	data, err := os.ReadFile(path) //nolint:gosec // G304: Test fixture path - test code only
	require.NoError(t, err, "Failed to load HTML fixture: %s", name)
	return string(data)
}

// LoadGoldenFile loads a golden file for comparison
func LoadGoldenFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(FixtureRoot(), "golden", name)
	data, err := os.ReadFile(path) //nolint:gosec // G304: Test fixture path - test code only
	require.NoError(t, err, "Failed to load golden file: %s", name)
	return string(data)
}

// NewTestServer creates a new LSP server for testing
func NewTestServer(t *testing.T) *lsp.Server {
	t.Helper()
	server, err := lsp.NewServer()
	require.NoError(t, err, "Failed to create test server")
	t.Cleanup(func() { _ = server.Close() })
	return server
}

// Workspace writes files (relative path -> content) into a fresh
// directory and returns its path.
func Workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// Start runs initialize and initialized against server with root as the
// workspace, and returns the request context later calls should use.
func Start(t *testing.T, server *lsp.Server, root string) *types.RequestContext {
	t.Helper()
	rootURI := uriutil.PathToURI(root)
	req := types.NewRequestContext(server, &glsp.Context{})

	_, err := lifecycle.Initialize(req, &protocol.InitializeParams{RootURI: &rootURI})
	require.NoError(t, err)
	require.NoError(t, lifecycle.Initialized(req, &protocol.InitializedParams{}))
	return req
}

// OpenHTML opens content as an HTML document at uri
func OpenHTML(t *testing.T, req *types.RequestContext, uri, content string) {
	t.Helper()
	params := &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "html",
			Version:    1,
			Text:       content,
		},
	}
	require.NoError(t, textDocument.DidOpen(req, params), "Failed to open %s", uri)
}
