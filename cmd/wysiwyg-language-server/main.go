// Command wysiwyg-language-server reports and fixes un-normalized markup
// in the contenteditable regions of HTML documents over LSP (stdio).
package main

import (
	"fmt"
	"os"

	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/internal/version"
	"github.com/nomocas/mini-wysiwyg/lsp"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:           "wysiwyg-language-server",
		Short:         "Language server for contenteditable HTML regions",
		Version:       version.GetFullVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := lsp.NewServer()
			if err != nil {
				return fmt.Errorf("failed to create LSP server: %w", err)
			}
			defer func() { _ = server.Close() }()

			log.Info("Starting %s %s", lsp.ServerName, version.GetVersion())
			// stdout carries the protocol, so logs stay on stderr
			return server.RunStdio()
		},
	}
	// stdio is accepted for clients that always pass it
	cmd.Flags().Bool("stdio", true, "use stdio transport")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("Server error: %v", err)
		os.Exit(1)
	}
}
