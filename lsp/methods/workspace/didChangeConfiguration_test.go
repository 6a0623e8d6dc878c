package workspace

import (
	"testing"

	"github.com/nomocas/mini-wysiwyg/lsp/testutil"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func changeConfiguration(t *testing.T, ctx *testutil.MockServerContext, settings any) *types.RequestContext {
	t.Helper()
	req := types.NewRequestContext(ctx, ctx.GLSPContext())
	err := DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{Settings: settings})
	require.NoError(t, err)
	return req
}

func TestDidChangeConfiguration_WithValidConfig(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	ctx.SetGLSPContext(&glsp.Context{})
	ctx.DocumentManager().DidOpen("file:///a.html", "html", 1, "")
	ctx.DocumentManager().DidOpen("file:///b.html", "html", 1, "")

	changeConfiguration(t, ctx, map[string]any{
		"wysiwyg": map[string]any{
			"flattenTags": []any{"span", "font"},
			"breakTags":   []any{},
		},
	})

	config := ctx.GetConfig()
	assert.Equal(t, []string{"span", "font"}, config.FlattenTags)
	assert.Equal(t, []string{}, config.BreakTags)
	assert.Equal(t, types.DefaultFiles, config.Files)
	assert.True(t, ctx.Normalizer().IsFlattened("font"))
	assert.Equal(t, []string{"file:///a.html", "file:///b.html"}, ctx.Published)
}

func TestDidChangeConfiguration_WithBareSettings(t *testing.T) {
	ctx := testutil.NewMockServerContext()

	changeConfiguration(t, ctx, map[string]any{"files": "pages/**/*.html"})

	assert.Equal(t, []string{"pages/**/*.html"}, ctx.GetConfig().Files)
}

func TestDidChangeConfiguration_WithNilSettings(t *testing.T) {
	ctx := testutil.NewMockServerContext()

	req := changeConfiguration(t, ctx, nil)

	assert.False(t, req.HasWarnings())
	assert.Equal(t, types.DefaultConfig(), ctx.GetConfig())
}

func TestDidChangeConfiguration_WithInvalidSettings(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	ctx.SetConfig(types.ServerConfig{FlattenTags: []string{"font"}})

	for _, settings := range []any{"not a map", map[string]any{"wysiwyg": 42}} {
		req := changeConfiguration(t, ctx, settings)
		assert.True(t, req.HasWarnings())
		assert.Equal(t, []string{"font"}, ctx.GetConfig().FlattenTags, "previous configuration is kept")
	}
}

func TestDidChangeConfiguration_PullDiagnostics(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	ctx.SetGLSPContext(&glsp.Context{})
	ctx.SetUsePullDiagnostics(true)
	ctx.DocumentManager().DidOpen("file:///a.html", "html", 1, "")

	changeConfiguration(t, ctx, map[string]any{})

	assert.Empty(t, ctx.Published)
}
