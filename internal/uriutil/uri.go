// Package uriutil converts between file:// URIs and filesystem paths.
package uriutil

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// PathToURI converts a filesystem path to a file:// URI with
// percent-encoded segments. Relative paths are made absolute first.
//
//	/home/user/a b.html -> file:///home/user/a%20b.html
//	C:\site\index.html  -> file:///C:/site/index.html
//	\\server\share      -> file://server/share
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if runtime.GOOS == "windows" && strings.HasPrefix(path, `\\`) {
		return "file://" + escapeSegments(filepath.ToSlash(strings.TrimPrefix(path, `\\`)))
	}
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "file://" + escapeSegments(path)
}

func escapeSegments(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// URIToPath converts a file:// URI to a filesystem path. Anything that
// does not parse as a file URI has its scheme prefix stripped.
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return fromSlash(strings.TrimPrefix(uri, "file://"))
	}
	if parsed.Host != "" && parsed.Host != "localhost" {
		if runtime.GOOS == "windows" {
			return `\\` + parsed.Host + filepath.FromSlash(parsed.Path)
		}
		return parsed.Host + parsed.Path
	}
	return fromSlash(parsed.Path)
}

// fromSlash drops the slash in front of a drive letter and converts to
// the OS separator.
func fromSlash(path string) string {
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

// RelPath returns the slash-separated path of uri relative to root, and
// false when uri lies outside root.
func RelPath(root, uri string) (string, bool) {
	rel, err := filepath.Rel(root, URIToPath(uri))
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
