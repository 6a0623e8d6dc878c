package diagnostic

import (
	"testing"

	"github.com/nomocas/mini-wysiwyg/lsp/testutil"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const page = "<div contenteditable>\n  <span style=\"color:red\">x</span><i></i>\n</div>\n<p>outside <span>ignored</span></p>"

func position(line, char uint32) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func TestGetDiagnostics(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	uri := "file:///page.html"
	ctx.DocumentManager().DidOpen(uri, "html", 1, page)

	diagnostics, err := GetDiagnostics(ctx, uri)
	require.NoError(t, err)
	require.Len(t, diagnostics, 2)

	wrapper := diagnostics[0]
	assert.Equal(t, protocol.Range{Start: position(1, 2), End: position(1, 26)}, wrapper.Range)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *wrapper.Severity)
	assert.Equal(t, "wrapper", wrapper.Code.Value)
	assert.Equal(t, Source, *wrapper.Source)
	assert.Contains(t, wrapper.Message, "<span>")

	empty := diagnostics[1]
	assert.Equal(t, protocol.Range{Start: position(1, 34), End: position(1, 41)}, empty.Range)
	assert.Equal(t, protocol.DiagnosticSeverityInformation, *empty.Severity)
	assert.Equal(t, "empty", empty.Code.Value)
	assert.Equal(t, "<i> has no text content", empty.Message)
}

func TestGetDiagnostics_Edges(t *testing.T) {
	t.Run("unknown document", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		diagnostics, err := GetDiagnostics(ctx, "file:///missing.html")
		require.NoError(t, err)
		assert.Empty(t, diagnostics)
		assert.NotNil(t, diagnostics, "publish needs an array, not null")
	})

	t.Run("document not served", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		ctx.IsServedFunc = func(string) bool { return false }
		ctx.DocumentManager().DidOpen("file:///page.html", "html", 1, page)

		diagnostics, err := GetDiagnostics(ctx, "file:///page.html")
		require.NoError(t, err)
		assert.Empty(t, diagnostics)
	})

	t.Run("normalized region", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		ctx.DocumentManager().DidOpen("file:///ok.html", "html", 1, `<div contenteditable>fine <b>bold</b></div>`)

		diagnostics, err := GetDiagnostics(ctx, "file:///ok.html")
		require.NoError(t, err)
		assert.Empty(t, diagnostics)
	})

	t.Run("configuration changes the findings", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		ctx.SetConfig(types.ServerConfig{FlattenTags: []string{}})
		ctx.DocumentManager().DidOpen("file:///page.html", "html", 1, page)

		diagnostics, err := GetDiagnostics(ctx, "file:///page.html")
		require.NoError(t, err)
		require.Len(t, diagnostics, 2)
		assert.Equal(t, "style", diagnostics[0].Code.Value)
		assert.Equal(t, "empty", diagnostics[1].Code.Value)
	})
}

func TestDocumentDiagnostic(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	uri := "file:///page.html"
	ctx.DocumentManager().DidOpen(uri, "html", 1, page)

	req := types.NewRequestContext(ctx, nil)
	result, err := DocumentDiagnostic(req, &DocumentDiagnosticParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	report, ok := result.(RelatedFullDocumentDiagnosticReport)
	require.True(t, ok)
	assert.Equal(t, "full", report.Kind)
	assert.Len(t, report.Items, 2)
}
