package lsp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames are the workspace configuration files, in lookup order.
var ConfigFileNames = []string{".wysiwyg.yaml", ".wysiwyg.yml"}

// configFileIn returns the first configuration file present in rootPath,
// or "" when there is none.
func configFileIn(rootPath string) string {
	for _, name := range ConfigFileNames {
		path := filepath.Join(rootPath, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ReadConfigFile reads the workspace configuration file.
// Returns nil if no config file exists (not an error).
func ReadConfigFile(rootPath string) (*types.ServerConfig, error) {
	if rootPath == "" {
		return nil, nil
	}

	path := configFileIn(rootPath)
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: workspace config file
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var config types.ServerConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return &config, nil
}
