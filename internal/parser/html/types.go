package html

import "github.com/nomocas/mini-wysiwyg/markup"

// Region is the content of one contenteditable element in an HTML source.
type Region struct {
	// Tag is the editable element's tag name, lower-cased.
	Tag string
	// Content is the source between the element's start and end tags.
	Content string
	// StartByte and EndByte bound Content in the source.
	StartByte uint
	EndByte   uint
	// Findings lists the markup normalization would rewrite, in source
	// order.
	Findings []Finding
}

// Finding is markup inside a region that normalization would rewrite.
type Finding struct {
	Kind markup.FindingKind
	Tag  string
	// StartByte and EndByte bound the offending start tag, attribute or
	// element.
	StartByte uint
	EndByte   uint
}

// Message describes the finding for people.
func (f Finding) Message() string {
	return markup.Finding{Kind: f.Kind, Tag: f.Tag}.String()
}

// Edit replaces source[StartByte:EndByte] with Text.
type Edit struct {
	StartByte uint
	EndByte   uint
	Text      string
}
