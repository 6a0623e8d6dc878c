package lifecycle

import (
	"testing"

	"github.com/nomocas/mini-wysiwyg/markup"
	"github.com/nomocas/mini-wysiwyg/internal/parser/html"
	"github.com/nomocas/mini-wysiwyg/lsp/testutil"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdown(t *testing.T) {
	req := types.NewRequestContext(testutil.NewMockServerContext(), nil)

	t.Run("can be called multiple times safely", func(t *testing.T) {
		assert.NoError(t, Shutdown(req))
		assert.NoError(t, Shutdown(req))
	})

	t.Run("parsers still work after the pool is closed", func(t *testing.T) {
		require.NoError(t, Shutdown(req))
		regions := html.Scan(`<div contenteditable><span>a</span></div>`, markup.New())
		require.Len(t, regions, 1)
		assert.Len(t, regions[0].Findings, 1)
	})
}
