package lifecycle

import (
	"testing"

	"github.com/nomocas/mini-wysiwyg/internal/version"
	codeaction "github.com/nomocas/mini-wysiwyg/lsp/methods/textDocument/codeAction"
	"github.com/nomocas/mini-wysiwyg/lsp/testutil"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func initialize(t *testing.T, ctx *testutil.MockServerContext, params *protocol.InitializeParams) InitializeResult {
	t.Helper()
	req := types.NewRequestContext(ctx, &glsp.Context{})
	result, err := Initialize(req, params)
	require.NoError(t, err)
	initResult, ok := result.(InitializeResult)
	require.True(t, ok)
	return initResult
}

func TestInitialize(t *testing.T) {
	t.Run("sets root URI from params.RootURI", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		rootURI := "file:///workspace"

		initialize(t, ctx, &protocol.InitializeParams{RootURI: &rootURI})

		assert.Equal(t, "file:///workspace", ctx.RootURI())
		assert.Equal(t, "/workspace", ctx.RootPath())
	})

	t.Run("sets root path from params.RootPath", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		rootPath := "/workspace"

		initialize(t, ctx, &protocol.InitializeParams{RootPath: &rootPath})

		assert.Equal(t, "/workspace", ctx.RootPath())
		assert.Equal(t, "file:///workspace", ctx.RootURI())
	})

	t.Run("no root", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()

		initialize(t, ctx, &protocol.InitializeParams{})

		assert.Empty(t, ctx.RootURI())
		assert.Empty(t, ctx.RootPath())
	})

	t.Run("returns server info", func(t *testing.T) {
		clientVersion := "1.85.0"
		result := initialize(t, testutil.NewMockServerContext(), &protocol.InitializeParams{
			ClientInfo: &struct {
				Name    string  `json:"name"`
				Version *string `json:"version,omitempty"`
			}{
				Name:    "vscode",
				Version: &clientVersion,
			},
		})

		require.NotNil(t, result.ServerInfo)
		assert.Equal(t, ServerName, result.ServerInfo.Name)
		assert.Equal(t, version.GetVersion(), *result.ServerInfo.Version)
	})

	t.Run("capabilities", func(t *testing.T) {
		caps := initialize(t, testutil.NewMockServerContext(), &protocol.InitializeParams{}).Capabilities

		assert.Contains(t, caps, "textDocumentSync")
		assert.Equal(t, true, caps["documentFormattingProvider"])
		assert.NotContains(t, caps, "hoverProvider")

		sync, ok := caps["textDocumentSync"].(protocol.TextDocumentSyncOptions)
		require.True(t, ok)
		assert.Equal(t, protocol.TextDocumentSyncKindIncremental, *sync.Change)

		codeActionProvider, ok := caps["codeActionProvider"].(protocol.CodeActionOptions)
		require.True(t, ok)
		assert.Equal(t, []protocol.CodeActionKind{protocol.CodeActionKindQuickFix, codeaction.KindSourceFixAll}, codeActionProvider.CodeActionKinds)
	})
}

func TestInitialize_DiagnosticsModel(t *testing.T) {
	tests := []struct {
		name     string
		detected *bool
		pull     bool
	}{
		{name: "not detected falls back to push"},
		{name: "client without pull support", detected: boolPtr(false)},
		{name: "client with pull support", detected: boolPtr(true), pull: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.NewMockServerContext()
			if tt.detected != nil {
				ctx.SetClientDiagnosticCapability(*tt.detected)
			}

			caps := initialize(t, ctx, &protocol.InitializeParams{}).Capabilities

			assert.Equal(t, tt.pull, ctx.UsePullDiagnostics())
			if tt.pull {
				assert.Contains(t, caps, "diagnosticProvider")
			} else {
				assert.NotContains(t, caps, "diagnosticProvider")
			}
		})
	}
}
