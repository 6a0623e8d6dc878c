package lsp

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/lsp/testutil"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/stretchr/testify/assert"
)

// captureLog redirects the logger at level until the test ends.
func captureLog(t *testing.T, level log.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetLevel(level)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.LevelInfo)
	})
	return &buf
}

// The wrapped handlers run with a nil glsp context: nothing reaches a
// client, only the stderr log.

func TestMethod(t *testing.T) {
	tests := []struct {
		name       string
		handler    func(*types.RequestContext, string) (string, error)
		wantResult string
		wantErr    []string
		wantLog    []string
	}{
		{
			name: "success",
			handler: func(*types.RequestContext, string) (string, error) {
				return "edits", nil
			},
			wantResult: "edits",
			wantLog:    []string{"textDocument/formatting started", "textDocument/formatting completed"},
		},
		{
			name: "error is wrapped with the method name",
			handler: func(*types.RequestContext, string) (string, error) {
				return "", errors.New("no document")
			},
			wantErr: []string{"textDocument/formatting: no document"},
			wantLog: []string{"textDocument/formatting: no document"},
		},
		{
			name: "panic becomes an internal error",
			handler: func(*types.RequestContext, string) (string, error) {
				panic("nil region")
			},
			wantErr: []string{"internal error in textDocument/formatting"},
			wantLog: []string{"PANIC in textDocument/formatting: nil region", "Stack trace"},
		},
		{
			name: "warnings are logged after success",
			handler: func(req *types.RequestContext, _ string) (string, error) {
				req.AddWarning(errors.New("region skipped"))
				return "ok", nil
			},
			wantResult: "ok",
			wantLog:    []string{"textDocument/formatting: region skipped"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLog(t, log.LevelDebug)
			wrapped := method(testutil.NewMockServerContext(), "textDocument/formatting", tt.handler)

			result, err := wrapped(nil, "params")

			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantResult, result)
			} else {
				assert.Error(t, err)
				assert.Empty(t, result)
				for _, want := range tt.wantErr {
					assert.Contains(t, err.Error(), want)
				}
			}
			for _, want := range tt.wantLog {
				assert.Contains(t, logs.String(), want)
			}
		})
	}
}

func TestMethod_ErrorKeepsCause(t *testing.T) {
	captureLog(t, log.LevelError)
	cause := errors.New("cause")

	wrapped := method(testutil.NewMockServerContext(), "m", func(*types.RequestContext, int) (int, error) {
		return 0, cause
	})
	_, err := wrapped(nil, 0)

	assert.ErrorIs(t, err, cause)
}

func TestNotify(t *testing.T) {
	t.Run("passes the server and params", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		var (
			gotServer types.ServerContext
			gotParams int
		)
		wrapped := notify(server, "textDocument/didOpen", func(req *types.RequestContext, params int) error {
			gotServer, gotParams = req.Server, params
			return nil
		})

		assert.NoError(t, wrapped(nil, 7))
		assert.Same(t, server, gotServer)
		assert.Equal(t, 7, gotParams)
	})

	t.Run("recovers panics", func(t *testing.T) {
		logs := captureLog(t, log.LevelError)
		wrapped := notify(testutil.NewMockServerContext(), "textDocument/didOpen", func(*types.RequestContext, int) error {
			panic("boom")
		})

		err := wrapped(nil, 1)
		assert.EqualError(t, err, "internal error in textDocument/didOpen")
		assert.Contains(t, logs.String(), "PANIC")
	})
}

func TestNoParam(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		logs := captureLog(t, log.LevelDebug)
		wrapped := noParam(testutil.NewMockServerContext(), "shutdown", func(*types.RequestContext) error {
			return nil
		})

		assert.NoError(t, wrapped(nil))
		assert.Contains(t, logs.String(), "shutdown completed")
	})

	t.Run("recovers panics", func(t *testing.T) {
		logs := captureLog(t, log.LevelError)
		wrapped := noParam(testutil.NewMockServerContext(), "shutdown", func(*types.RequestContext) error {
			panic("pool closed twice")
		})

		assert.EqualError(t, wrapped(nil), "internal error in shutdown")
		assert.Contains(t, logs.String(), "pool closed twice")
	})
}
