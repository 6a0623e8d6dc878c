package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/markup"
	"github.com/nomocas/mini-wysiwyg/internal/parser/html"
	"github.com/nomocas/mini-wysiwyg/internal/position"
	"github.com/nomocas/mini-wysiwyg/internal/version"
	"github.com/nomocas/mini-wysiwyg/lsp"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/spf13/cobra"
)

// errFindings makes the process exit 1 after --check printed findings.
var errFindings = errors.New("files need normalization")

const stdinName = "<stdin>"

type options struct {
	check       bool
	write       bool
	root        string
	logLevel    string
	flattenTags []string
	breakTags   []string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "wysiwyg-clean [flags] [file...]",
		Short: "Normalize contenteditable regions in HTML files",
		Long: "Flattens wrapper tags, strips inline styles and removes empty elements inside " +
			"every contenteditable element. Without files, reads standard input.",
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.check, "check", "c", false, "report findings and exit 1 instead of printing the result")
	flags.BoolVarP(&opts.write, "write", "w", false, "rewrite files in place")
	flags.StringVar(&opts.root, "root", ".", "directory holding .wysiwyg.yaml or package.json")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringSliceVar(&opts.flattenTags, "flatten-tags", nil, "wrapper tags to flatten (overrides configuration)")
	flags.StringSliceVar(&opts.breakTags, "break-tags", nil, "flattened tags that leave a <br> (overrides configuration)")
	cmd.MarkFlagsMutuallyExclusive("check", "write")

	return cmd
}

// loadConfig layers the workspace files under opts.root and the tag flags
// over the defaults.
func loadConfig(cmd *cobra.Command, opts *options) (types.ServerConfig, error) {
	config := types.DefaultConfig()

	if yamlConfig, err := lsp.ReadConfigFile(opts.root); err != nil {
		return config, err
	} else if yamlConfig != nil {
		config = config.Merge(*yamlConfig)
	}
	if pkgConfig, err := lsp.ReadPackageJsonConfig(opts.root); err != nil {
		return config, err
	} else if pkgConfig != nil {
		config = config.Merge(*pkgConfig)
	}

	var flagConfig types.ServerConfig
	if cmd.Flags().Changed("flatten-tags") {
		flagConfig.FlattenTags = append([]string{}, opts.flattenTags...)
	}
	if cmd.Flags().Changed("break-tags") {
		flagConfig.BreakTags = append([]string{}, opts.breakTags...)
	}
	return config.Merge(flagConfig), nil
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if opts.write && len(args) == 0 {
		return errors.New("--write needs at least one file")
	}

	config, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	n := config.Normalizer()

	if len(args) == 0 {
		source, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", stdinName, err)
		}
		return process(cmd, opts, n, stdinName, string(source))
	}

	var errs []error
	for _, path := range args {
		source, err := os.ReadFile(path) //nolint:gosec // G304: files named on the command line
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := process(cmd, opts, n, path, string(source)); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}

// joinErrors keeps errFindings matchable while reporting I/O errors.
func joinErrors(errs []error) error {
	var others []error
	found := false
	for _, err := range errs {
		if errors.Is(err, errFindings) {
			found = true
			continue
		}
		others = append(others, err)
	}
	if len(others) > 0 {
		return errors.Join(others...)
	}
	if found {
		return errFindings
	}
	return nil
}

func process(cmd *cobra.Command, opts *options, n *markup.Normalizer, name, source string) error {
	regions := html.Scan(source, n)
	log.Debug("%s: %d editable regions", name, len(regions))

	if opts.check {
		return report(cmd.OutOrStdout(), name, source, regions)
	}

	edits, err := html.Edits(regions, n)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	cleaned := html.Apply(source, edits)

	if !opts.write {
		_, err := io.WriteString(cmd.OutOrStdout(), cleaned)
		return err
	}
	if len(edits) == 0 {
		return nil
	}

	info, err := os.Stat(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, []byte(cleaned), info.Mode().Perm()); err != nil {
		return err
	}
	log.Info("Normalized %d regions in %s", len(edits), filepath.Clean(name))
	return nil
}

// report prints one line per finding as name:line:column with 1-based
// positions, and returns errFindings when there was any.
func report(w io.Writer, name, source string, regions []html.Region) error {
	ix := position.NewIndex(source)
	count := 0
	for _, region := range regions {
		for _, finding := range region.Findings {
			p := ix.Point(int(finding.StartByte))
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", name, p.Line+1, p.Character+1, finding.Kind, finding.Message()); err != nil {
				return err
			}
			count++
		}
	}
	if count > 0 {
		return errFindings
	}
	return nil
}
