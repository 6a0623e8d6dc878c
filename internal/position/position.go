// Package position converts between Go byte offsets and the zero-based
// line / UTF-16 character positions used by LSP clients.
package position

import (
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Point is a zero-based line and UTF-16 character position.
type Point struct {
	Line      uint32
	Character uint32
}

// Before reports whether p sorts before q.
func (p Point) Before(q Point) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Character < q.Character)
}

// Index maps byte offsets of one text to Points and back. Lines end at
// '\n'.
type Index struct {
	text  string
	lines []int // byte offset of each line start
}

// NewIndex indexes text.
func NewIndex(text string) *Index {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Index{text: text, lines: lines}
}

// Text returns the indexed text.
func (ix *Index) Text() string {
	return ix.text
}

// LineCount returns the number of lines; an empty text has one.
func (ix *Index) LineCount() int {
	return len(ix.lines)
}

func (ix *Index) line(i int) string {
	end := len(ix.text)
	if i+1 < len(ix.lines) {
		end = ix.lines[i+1] - 1
	}
	return ix.text[ix.lines[i]:end]
}

// Point returns the position of the byte offset, clamped to the text.
func (ix *Index) Point(offset int) Point {
	offset = max(0, min(offset, len(ix.text)))
	i := sort.Search(len(ix.lines), func(i int) bool { return ix.lines[i] > offset }) - 1
	start := ix.lines[i]
	return Point{
		Line:      uint32(i),                                                //nolint:gosec // bounded by text size
		Character: uint32(ByteOffsetToUTF16(ix.text[start:], offset-start)), //nolint:gosec // bounded by text size
	}
}

// End returns the position just past the last character.
func (ix *Index) End() Point {
	return ix.Point(len(ix.text))
}

// Offset returns the byte offset of p. Characters past the end of a line
// clamp to the line end. A point on the line after the last one is
// accepted as the end of the text when its character is 0.
func (ix *Index) Offset(p Point) (int, error) {
	line := int(p.Line)
	if line == len(ix.lines) && p.Character == 0 {
		return len(ix.text), nil
	}
	if line >= len(ix.lines) {
		return 0, fmt.Errorf("line %d out of bounds (total lines: %d)", p.Line, len(ix.lines))
	}
	return ix.lines[line] + UTF16ToByteOffset(ix.line(line), int(p.Character)), nil
}

// UTF16ToByteOffset converts a UTF-16 code unit offset within s to a byte
// offset. An offset inside a surrogate pair clamps to the start of the
// rune; one past the end clamps to len(s).
func UTF16ToByteOffset(s string, units int) int {
	offset := 0
	for offset < len(s) && units > 0 {
		r, size := utf8.DecodeRuneInString(s[offset:])
		n := 1
		if r != utf8.RuneError || size != 1 {
			n = utf16.RuneLen(r)
		}
		if n > units {
			break
		}
		units -= n
		offset += size
	}
	return offset
}

// ByteOffsetToUTF16 converts a byte offset within s to UTF-16 code units.
// An offset inside a multi-byte rune counts up to the start of that rune.
func ByteOffsetToUTF16(s string, offset int) int {
	offset = min(offset, len(s))
	units := 0
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > offset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		i += size
	}
	return units
}

// LengthUTF16 returns the length of s in UTF-16 code units.
func LengthUTF16(s string) int {
	return ByteOffsetToUTF16(s, len(s))
}
