package lsp

import (
	"errors"
	"path/filepath"

	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/markup"
	"github.com/nomocas/mini-wysiwyg/lsp/types"
)

// GetConfig returns the effective configuration: defaults, then workspace
// files, then client settings.
func (s *Server) GetConfig() types.ServerConfig {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// SetConfig replaces the client settings layer
func (s *Server) SetConfig(config types.ServerConfig) {
	s.configMu.Lock()
	s.clientConfig = config
	s.configMu.Unlock()
	s.rebuildConfig()
}

// Normalizer returns the normalizer built from the effective configuration
func (s *Server) Normalizer() *markup.Normalizer {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.normalizer
}

// LoadWorkspaceConfig reads .wysiwyg.yaml and the package.json "wysiwyg"
// field from the workspace root. package.json wins over the YAML file.
// A missing root or missing files leave the defaults in place.
func (s *Server) LoadWorkspaceConfig() error {
	rootPath := s.RootPath()
	if rootPath == "" {
		return nil
	}

	var (
		fileConfig types.ServerConfig
		errs       []error
	)

	yamlConfig, err := ReadConfigFile(rootPath)
	if err != nil {
		errs = append(errs, err)
	} else if yamlConfig != nil {
		log.Info("Loaded configuration from %s", configFileIn(rootPath))
		fileConfig = fileConfig.Merge(*yamlConfig)
	}

	pkgConfig, err := ReadPackageJsonConfig(rootPath)
	if err != nil {
		errs = append(errs, err)
	} else if pkgConfig != nil {
		log.Info("Loaded configuration from package.json")
		fileConfig = fileConfig.Merge(*pkgConfig)
	}

	s.configMu.Lock()
	s.fileConfig = fileConfig
	s.configMu.Unlock()
	s.rebuildConfig()

	return errors.Join(errs...)
}

// IsConfigFile reports whether path is one of the workspace configuration
// files LoadWorkspaceConfig reads.
func (s *Server) IsConfigFile(path string) bool {
	rootPath := s.RootPath()
	if rootPath == "" {
		return false
	}
	clean := filepath.Clean(path)
	if clean == filepath.Join(rootPath, "package.json") {
		return true
	}
	for _, name := range ConfigFileNames {
		if clean == filepath.Join(rootPath, name) {
			return true
		}
	}
	return false
}

func (s *Server) rebuildConfig() {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.config = types.DefaultConfig().Merge(s.fileConfig).Merge(s.clientConfig)
	s.normalizer = s.config.Normalizer()
}
