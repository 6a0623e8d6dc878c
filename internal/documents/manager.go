package documents

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nomocas/mini-wysiwyg/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager manages text documents for the language server
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get retrieves a document by URI
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns all managed documents, ordered by URI
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].uri < docs[j].uri })
	return docs
}

// DidOpen handles the textDocument/didOpen notification
func (m *Manager) DidOpen(uri, languageID string, version int, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[uri] = NewDocument(uri, languageID, version, content)
}

// DidClose handles the textDocument/didClose notification
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("document not found: %s", uri)
	}
	delete(m.documents, uri)
	return nil
}

// DidChange handles the textDocument/didChange notification
func (m *Manager) DidChange(uri string, version int, changes []any) error {
	doc := m.Get(uri)
	if doc == nil {
		return fmt.Errorf("document not found: %s", uri)
	}

	content := doc.Content()
	for _, change := range changes {
		var err error
		if content, err = applyChange(content, change); err != nil {
			return fmt.Errorf("failed to apply changes: %w", err)
		}
	}

	if err := doc.SetContent(content, version); err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	return nil
}

// applyChange applies one content change event. glsp decodes each event
// either as a ranged edit or as a whole-document replacement.
func applyChange(content string, change any) (string, error) {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return c.Text, nil
	case protocol.TextDocumentContentChangeEvent:
		if c.Range == nil {
			return c.Text, nil
		}
		return applyIncrementalChange(content, *c.Range, c.Text)
	default:
		return "", fmt.Errorf("unsupported content change %T", change)
	}
}

// applyIncrementalChange replaces the UTF-16 addressed range with text.
func applyIncrementalChange(content string, r protocol.Range, text string) (string, error) {
	ix := position.NewIndex(content)
	start, err := ix.Offset(position.Point{Line: r.Start.Line, Character: r.Start.Character})
	if err != nil {
		return "", fmt.Errorf("start: %w", err)
	}
	end, err := ix.Offset(position.Point{Line: r.End.Line, Character: r.End.Character})
	if err != nil {
		return "", fmt.Errorf("end: %w", err)
	}
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start %d:%d",
			r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}
	return content[:start] + text + content[end:], nil
}
