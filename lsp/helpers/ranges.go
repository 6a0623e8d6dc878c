package helpers

import (
	"github.com/nomocas/mini-wysiwyg/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ToPosition converts a byte offset into an LSP position.
func ToPosition(ix *position.Index, offset uint) protocol.Position {
	p := ix.Point(int(offset))
	return protocol.Position{Line: p.Line, Character: p.Character}
}

// ToRange converts a byte range into an LSP range.
func ToRange(ix *position.Index, start, end uint) protocol.Range {
	return protocol.Range{
		Start: ToPosition(ix, start),
		End:   ToPosition(ix, end),
	}
}

func before(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

// RangesIntersect checks if two LSP ranges intersect.
// Ranges are treated as half-open intervals [start, end) where the end position is exclusive.
// An empty range is a cursor: it intersects a range that contains it,
// including at either end.
//
// Examples:
//   - [0:0, 0:5) and [0:3, 0:7) -> true (overlap from 0:3 to 0:5)
//   - [0:0, 0:5) and [0:5, 0:10) -> false (adjacent but not overlapping)
//   - [0:5, 0:5) and [0:5, 0:10) -> true (cursor at the start)
func RangesIntersect(a, b protocol.Range) bool {
	if a.Start == a.End {
		return !before(a.Start, b.Start) && !before(b.End, a.Start)
	}
	if b.Start == b.End {
		return RangesIntersect(b, a)
	}
	return before(a.Start, b.End) && before(b.Start, a.End)
}
