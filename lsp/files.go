package lsp

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/internal/uriutil"
)

// IsServed reports whether uri matches the configured file globs. Documents
// that are not on disk are served when their language is HTML.
func (s *Server) IsServed(uri string) bool {
	if !strings.HasPrefix(uri, "file://") {
		doc := s.Document(uri)
		return doc != nil && doc.LanguageID() == "html"
	}
	return MatchFiles(s.GetConfig().Files, s.RootPath(), uri)
}

// MatchFiles reports whether the file uri matches one of the doublestar
// globs. Globs are relative to rootPath; without a root they are matched
// against the absolute path.
func MatchFiles(globs []string, rootPath, uri string) bool {
	var rel string
	if rootPath == "" {
		rel = strings.TrimPrefix(filepath.ToSlash(uriutil.URIToPath(uri)), "/")
	} else {
		var ok bool
		if rel, ok = uriutil.RelPath(rootPath, uri); !ok {
			return false
		}
	}

	for _, glob := range globs {
		matched, err := doublestar.Match(glob, rel)
		if err != nil {
			log.Warn("Invalid file glob %q: %v", glob, err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
