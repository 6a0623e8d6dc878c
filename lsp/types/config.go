package types

import (
	"slices"

	"github.com/nomocas/mini-wysiwyg/markup"
)

// ConfigKey is the settings section and package.json field holding the
// server configuration.
const ConfigKey = "wysiwyg"

// DefaultFiles are the globs of documents the server works on.
var DefaultFiles = []string{"**/*.html", "**/*.htm"}

// ServerConfig represents the server configuration
type ServerConfig struct {
	// Files are doublestar globs, relative to the workspace root, of the
	// documents to check and format.
	Files []string `json:"files,omitempty" yaml:"files,omitempty"`

	// FlattenTags are the wrapper tags replaced by their content.
	// Default: ["span", "p", "div"]
	FlattenTags []string `json:"flattenTags,omitempty" yaml:"flattenTags,omitempty"`

	// BreakTags are the flattened wrappers that leave a <br> behind.
	// Default: ["p", "div"]
	BreakTags []string `json:"breakTags,omitempty" yaml:"breakTags,omitempty"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Files:       slices.Clone(DefaultFiles),
		FlattenTags: slices.Clone(markup.DefaultFlattenTags),
		BreakTags:   slices.Clone(markup.DefaultBreakTags),
	}
}

// Merge returns c with every field set in over replacing its own.
func (c ServerConfig) Merge(over ServerConfig) ServerConfig {
	if len(over.Files) > 0 {
		c.Files = slices.Clone(over.Files)
	}
	if over.FlattenTags != nil {
		c.FlattenTags = slices.Clone(over.FlattenTags)
	}
	if over.BreakTags != nil {
		c.BreakTags = slices.Clone(over.BreakTags)
	}
	return c
}

// Normalizer builds the normalizer the configuration describes.
func (c ServerConfig) Normalizer() *markup.Normalizer {
	return markup.New(
		markup.WithFlattenTags(c.FlattenTags...),
		markup.WithBreakTags(c.BreakTags...),
	)
}
