package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nomocas/mini-wysiwyg/internal/uriutil"
	codeaction "github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/codeAction"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/diagnostic"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/formatting"
	"github.com/nomocas/mini-wysiwyg/lsp/methods/workspace"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/nomocas/mini-wysiwyg/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// applyEdits applies single-line edits to ASCII content.
func applyEdits(t *testing.T, content string, edits []protocol.TextEdit) string {
	t.Helper()
	lines := strings.Split(content, "\n")
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		require.Equal(t, e.Range.Start.Line, e.Range.End.Line, "multi-line edit")
		line := lines[e.Range.Start.Line]
		lines[e.Range.Start.Line] = line[:e.Range.Start.Character] + e.NewText + line[e.Range.End.Character:]
	}
	return strings.Join(lines, "\n")
}

func format(t *testing.T, req *types.RequestContext, uri string) []protocol.TextEdit {
	t.Helper()
	edits, err := formatting.Formatting(req, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	return edits
}

func TestWorkspaceDefaults(t *testing.T) {
	page := testutil.LoadHTMLFixture(t, "page.html")
	root := testutil.Workspace(t, map[string]string{"page.html": page})

	server := testutil.NewTestServer(t)
	req := testutil.Start(t, server, root)
	uri := uriutil.PathToURI(filepath.Join(root, "page.html"))
	testutil.OpenHTML(t, req, uri, page)

	t.Run("diagnostics cover only the editable region", func(t *testing.T) {
		diagnostics, err := diagnostic.GetDiagnostics(server, uri)
		require.NoError(t, err)
		require.Len(t, diagnostics, 1)
		assert.Equal(t, "<span> wrapper is flattened", diagnostics[0].Message)
		assert.Equal(t, protocol.UInteger(4), diagnostics[0].Range.Start.Line)
		require.NotNil(t, diagnostics[0].Source)
		assert.Equal(t, diagnostic.Source, *diagnostics[0].Source)
	})

	t.Run("formatting matches golden", func(t *testing.T) {
		edits := format(t, req, uri)
		require.Len(t, edits, 1)
		assert.Equal(t, protocol.Position{Line: 4, Character: 23}, edits[0].Range.Start)
		assert.Equal(t, protocol.Position{Line: 4, Character: 65}, edits[0].Range.End)
		assert.Equal(t, "hello world", edits[0].NewText)
		assert.Equal(t, testutil.LoadGoldenFile(t, "page.html"), applyEdits(t, page, edits))
	})

	t.Run("code actions", func(t *testing.T) {
		diagnostics, err := diagnostic.GetDiagnostics(server, uri)
		require.NoError(t, err)

		result, err := codeaction.CodeAction(req, &protocol.CodeActionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Range: protocol.Range{
				Start: protocol.Position{Line: 4, Character: 30},
				End:   protocol.Position{Line: 4, Character: 30},
			},
			Context: protocol.CodeActionContext{Diagnostics: diagnostics},
		})
		require.NoError(t, err)

		actions, ok := result.([]protocol.CodeAction)
		require.True(t, ok)
		require.Len(t, actions, 2)

		assert.Equal(t, "Normalize editable <div>", actions[0].Title)
		assert.Len(t, actions[0].Diagnostics, 1)
		assert.Equal(t, "Normalize all editable regions", actions[1].Title)
		assert.Equal(t, actions[0].Edit.Changes[uri], actions[1].Edit.Changes[uri])
	})

	t.Run("normalized document has nothing to do", func(t *testing.T) {
		clean := testutil.LoadHTMLFixture(t, "clean.html")
		cleanURI := uriutil.PathToURI(filepath.Join(root, "clean.html"))
		testutil.OpenHTML(t, req, cleanURI, clean)

		diagnostics, err := diagnostic.GetDiagnostics(server, cleanURI)
		require.NoError(t, err)
		assert.Empty(t, diagnostics)
		assert.Empty(t, format(t, req, cleanURI))
	})
}

func TestWorkspaceConfigFile(t *testing.T) {
	page := testutil.LoadHTMLFixture(t, "page.html")
	root := testutil.Workspace(t, map[string]string{
		"page.html":     page,
		".wysiwyg.yaml": "flattenTags: [p, div]\n",
	})

	server := testutil.NewTestServer(t)
	req := testutil.Start(t, server, root)
	uri := uriutil.PathToURI(filepath.Join(root, "page.html"))
	testutil.OpenHTML(t, req, uri, page)

	assert.Equal(t, []string{"p", "div"}, server.GetConfig().FlattenTags)

	edits := format(t, req, uri)
	require.Len(t, edits, 1)
	assert.Equal(t, "<span>hello</span> world", edits[0].NewText)

	t.Run("deleting the config file restores defaults", func(t *testing.T) {
		configPath := filepath.Join(root, ".wysiwyg.yaml")
		require.NoError(t, os.Remove(configPath))

		err := workspace.DidChangeWatchedFiles(req, &protocol.DidChangeWatchedFilesParams{
			Changes: []protocol.FileEvent{{
				URI:  uriutil.PathToURI(configPath),
				Type: protocol.FileChangeTypeDeleted,
			}},
		})
		require.NoError(t, err)
		assert.False(t, req.HasWarnings())

		edits := format(t, req, uri)
		require.Len(t, edits, 1)
		assert.Equal(t, "hello world", edits[0].NewText)
	})
}

func TestWorkspacePackageJSON(t *testing.T) {
	page := testutil.LoadHTMLFixture(t, "page.html")
	root := testutil.Workspace(t, map[string]string{
		"src/page.html": page,
		"page.html":     page,
		"package.json": `{
  // comments are allowed
  "name": "site",
  "wysiwyg": { "files": ["src/**/*.html"] }
}`,
	})

	server := testutil.NewTestServer(t)
	req := testutil.Start(t, server, root)

	served := uriutil.PathToURI(filepath.Join(root, "src", "page.html"))
	ignored := uriutil.PathToURI(filepath.Join(root, "page.html"))
	testutil.OpenHTML(t, req, served, page)
	testutil.OpenHTML(t, req, ignored, page)

	assert.Len(t, format(t, req, served), 1)
	assert.Nil(t, format(t, req, ignored))

	diagnostics, err := diagnostic.GetDiagnostics(server, ignored)
	require.NoError(t, err)
	assert.Empty(t, diagnostics)
}

func TestWorkspaceClientSettings(t *testing.T) {
	page := testutil.LoadHTMLFixture(t, "page.html")
	root := testutil.Workspace(t, map[string]string{
		"page.html":     page,
		".wysiwyg.yaml": "flattenTags: [p, div]\n",
	})

	server := testutil.NewTestServer(t)
	req := testutil.Start(t, server, root)
	uri := uriutil.PathToURI(filepath.Join(root, "page.html"))
	testutil.OpenHTML(t, req, uri, page)

	err := workspace.DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{
			"wysiwyg": map[string]any{"flattenTags": []any{"span"}},
		},
	})
	require.NoError(t, err)

	edits := format(t, req, uri)
	require.Len(t, edits, 1)
	assert.Equal(t, "hello world", edits[0].NewText)
}
