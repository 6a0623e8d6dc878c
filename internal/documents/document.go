package documents

import (
	"fmt"
	"sync"

	"github.com/nomocas/mini-wysiwyg/markup"
	"github.com/nomocas/mini-wysiwyg/internal/parser/html"
	"github.com/nomocas/mini-wysiwyg/internal/position"
)

// Document is an open text document. Its position index and editable
// regions are computed on first use and dropped whenever the content
// changes.
type Document struct {
	uri        string
	languageID string
	content    string
	version    int

	mu         sync.Mutex
	index      *position.Index
	regions    []html.Region
	scannedFor *markup.Normalizer
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version
func (d *Document) Version() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Content returns the document's current content
func (d *Document) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

// SetContent updates the document's content and version.
// Returns an error if the provided version is older than the current document version,
// preventing stale updates from being applied.
func (d *Document) SetContent(content string, version int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	d.index = nil
	d.regions = nil
	d.scannedFor = nil
	return nil
}

// Index returns the position index of the current content.
func (d *Document) Index() *position.Index {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.index == nil {
		d.index = position.NewIndex(d.content)
	}
	return d.index
}

// Regions returns the editable regions of the current content as n sees
// them. The result is cached until the content or the normalizer changes.
func (d *Document) Regions(n *markup.Normalizer) []html.Region {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scannedFor != n {
		d.regions = html.Scan(d.content, n)
		d.scannedFor = n
	}
	return d.regions
}
