package lsp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nomocas/mini-wysiwyg/lsp/types"
	"github.com/tidwall/jsonc"
)

// ReadPackageJsonConfig reads the "wysiwyg" field of the package.json in
// rootPath. Comments and trailing commas are tolerated. A missing file or
// field yields nil without error.
func ReadPackageJsonConfig(rootPath string) (*types.ServerConfig, error) {
	if rootPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(rootPath, "package.json")) //nolint:gosec // G304: workspace package.json
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var manifest map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	section, err := types.Section(manifest)
	if err != nil {
		return nil, fmt.Errorf("package.json: %w", err)
	}
	if section == nil {
		return nil, nil
	}

	config := types.ConfigFromMap(section)
	return &config, nil
}
