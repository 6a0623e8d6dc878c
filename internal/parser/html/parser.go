package html

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/nomocas/mini-wysiwyg/internal/dom"
	"github.com/nomocas/mini-wysiwyg/internal/log"
	"github.com/nomocas/mini-wysiwyg/markup"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	nethtml "golang.org/x/net/html"
)

// Parser locates contenteditable regions in HTML source.
type Parser struct {
	parser       *sitter.Parser
	editingQuery *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		editingQuery, qerr := sitter.NewQuery(htmlLang, `
			(element
				(start_tag
					(tag_name)
					(attribute (attribute_name) @attr_name) @attr)) @element
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile contenteditable query: %v", qerr))
		}

		return &Parser{
			parser:       parser,
			editingQuery: editingQuery,
		}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.editingQuery != nil {
		p.editingQuery.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Scan is Regions on a pooled parser.
func Scan(source string, n *markup.Normalizer) []Region {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.Regions(source, n)
}

// Regions returns the outermost editable regions of source with the
// findings n reports for them. An element is editable when it carries a
// contenteditable attribute whose value is not "false".
func (p *Parser) Regions(source string, n *markup.Normalizer) []Region {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var elements []sitter.Node
	matches := cursor.Matches(p.editingQuery, tree.RootNode(), src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var element, attr sitter.Node
		var attrName string
		for _, capture := range match.Captures {
			switch p.editingQuery.CaptureNames()[capture.Index] {
			case "element":
				element = capture.Node
			case "attr":
				attr = capture.Node
			case "attr_name":
				attrName = capture.Node.Utf8Text(src)
			}
		}
		if !strings.EqualFold(attrName, "contenteditable") {
			continue
		}
		if strings.EqualFold(attributeValue(&attr, src), "false") {
			continue
		}
		elements = append(elements, element)
	}

	slices.SortFunc(elements, func(a, b sitter.Node) int {
		return cmp.Compare(a.StartByte(), b.StartByte())
	})

	var regions []Region
	var outerEnd uint
	for i := range elements {
		el := &elements[i]
		if len(regions) > 0 && el.StartByte() < outerEnd {
			// nested inside the previous region, which already covers it
			continue
		}
		start, end, ok := contentBounds(el)
		if !ok {
			continue
		}
		outerEnd = el.EndByte()
		regions = append(regions, Region{
			Tag:       tagName(el, src),
			Content:   source[start:end],
			StartByte: start,
			EndByte:   end,
			Findings:  inspect(el, src, source[start:end], start, n),
		})
	}
	return regions
}

// contentBounds returns the byte range between el's start and end tags.
// An element left open runs to its own end.
func contentBounds(el *sitter.Node) (start, end uint, ok bool) {
	count := el.ChildCount()
	if count == 0 {
		return 0, 0, false
	}
	first := el.Child(0)
	if first.Kind() != "start_tag" {
		return 0, 0, false
	}
	start, end = first.EndByte(), el.EndByte()
	if last := el.Child(count - 1); last.Kind() == "end_tag" {
		end = last.StartByte()
	}
	return start, end, true
}

// tagName returns the lower-cased tag name of an element-like node.
func tagName(el *sitter.Node, src []byte) string {
	if el.ChildCount() == 0 {
		return ""
	}
	tag := el.Child(0)
	for i := uint(0); i < tag.ChildCount(); i++ {
		if c := tag.Child(i); c.Kind() == "tag_name" {
			return strings.ToLower(c.Utf8Text(src))
		}
	}
	return ""
}

// attributeValue returns the unquoted value of an attribute node, or ""
// when it has none.
func attributeValue(attr *sitter.Node, src []byte) string {
	for i := uint(0); i < attr.ChildCount(); i++ {
		c := attr.Child(i)
		switch c.Kind() {
		case "attribute_value":
			return c.Utf8Text(src)
		case "quoted_attribute_value":
			for j := uint(0); j < c.ChildCount(); j++ {
				if v := c.Child(j); v.Kind() == "attribute_value" {
					return v.Utf8Text(src)
				}
			}
			return ""
		}
	}
	return ""
}

// findAttribute returns the first attribute of el's start tag named name.
func findAttribute(el *sitter.Node, src []byte, name string) *sitter.Node {
	if el.ChildCount() == 0 {
		return nil
	}
	tag := el.Child(0)
	for i := uint(0); i < tag.ChildCount(); i++ {
		attr := tag.Child(i)
		if attr.Kind() != "attribute" || attr.ChildCount() == 0 {
			continue
		}
		if strings.EqualFold(attr.Child(0).Utf8Text(src), name) {
			return attr
		}
	}
	return nil
}

func isElementKind(kind string) bool {
	switch kind {
	case "element", "script_element", "style_element":
		return true
	}
	return false
}

// descendants lists the elements under parent in source order.
func descendants(parent *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := uint(0); i < parent.ChildCount(); i++ {
		c := parent.Child(i)
		if isElementKind(c.Kind()) {
			out = append(out, c)
		}
		out = append(out, descendants(c)...)
	}
	return out
}

// parsedElements lists the elements under root in document order.
func parsedElements(root *nethtml.Node) []*nethtml.Node {
	var out []*nethtml.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode {
			out = append(out, c)
		}
		out = append(out, parsedElements(c)...)
	}
	return out
}

// inspect runs n over the parsed content of region and places each finding
// on the matching element of the syntax tree. Elements are paired in start
// tag order by name; a finding whose element has no counterpart in the
// source, such as one the HTML parser implied, is placed at the start of
// the region's content.
func inspect(region *sitter.Node, src []byte, content string, contentStart uint, n *markup.Normalizer) []Finding {
	root, err := dom.Fragment(content)
	if err != nil {
		log.Warn("failed to parse <%s> region: %v", tagName(region, src), err)
		return nil
	}
	found := n.Inspect(root)
	if len(found) == 0 {
		return nil
	}

	syntax := descendants(region)
	placed := make(map[*nethtml.Node]*sitter.Node)
	next := 0
	for _, el := range parsedElements(root) {
		for k := next; k < len(syntax); k++ {
			if strings.EqualFold(tagName(syntax[k], src), el.Data) {
				placed[el] = syntax[k]
				next = k + 1
				break
			}
		}
	}

	findings := make([]Finding, 0, len(found))
	for _, f := range found {
		finding := Finding{Kind: f.Kind, Tag: f.Tag, StartByte: contentStart, EndByte: contentStart}
		if c, ok := placed[f.Node]; ok {
			finding.StartByte, finding.EndByte = c.StartByte(), c.EndByte()
			switch f.Kind {
			case markup.WrapperTag:
				open := c.Child(0)
				finding.StartByte, finding.EndByte = open.StartByte(), open.EndByte()
			case markup.StyleAttribute:
				if attr := findAttribute(c, src, "style"); attr != nil {
					finding.StartByte, finding.EndByte = attr.StartByte(), attr.EndByte()
				}
			}
		}
		findings = append(findings, finding)
	}
	return findings
}

// Edits returns one edit per region whose content n would rewrite.
// Regions without findings are left alone so that a serialization
// difference alone never produces an edit, and so are regions whose
// cleaned markup equals their content.
func Edits(regions []Region, n *markup.Normalizer) ([]Edit, error) {
	var edits []Edit
	for _, r := range regions {
		if len(r.Findings) == 0 {
			continue
		}
		cleaned, err := n.CleanHTML(r.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize <%s> region: %w", r.Tag, err)
		}
		if cleaned == r.Content {
			continue
		}
		edits = append(edits, Edit{StartByte: r.StartByte, EndByte: r.EndByte, Text: cleaned})
	}
	return edits, nil
}

// Apply returns source with edits applied. Edits must not overlap.
func Apply(source string, edits []Edit) string {
	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b Edit) int { return cmp.Compare(a.StartByte, b.StartByte) })

	var b strings.Builder
	var pos uint
	for _, e := range sorted {
		b.WriteString(source[pos:e.StartByte])
		b.WriteString(e.Text)
		pos = e.EndByte
	}
	b.WriteString(source[pos:])
	return b.String()
}
