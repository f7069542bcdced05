// Package position provides source position and span tracking for the
// Veld front end. Spans are half-open byte ranges with 1-based line and
// column information attached for diagnostic rendering.
package position

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Position represents a single point in source code.
type Position struct {
	Filename string // source file name, may be empty
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Offset   int    // 0-based byte offset in source
}

// IsValid returns true if the position is valid.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns a string representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before returns true if this position comes before other.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span represents a half-open range of source code: [Start, End).
type Span struct {
	Start Position // starting position (inclusive)
	End   Position // ending position (exclusive)
}

// IsValid returns true if the span is valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.Start.Offset <= s.End.Offset
}

// String returns a string representation of the span.
func (s Span) String() string {
	if s.Start.Filename != "" {
		filename := filepath.Base(s.Start.Filename)
		if s.Start.Line == s.End.Line {
			return fmt.Sprintf("%s:%d:%d-%d", filename, s.Start.Line, s.Start.Column, s.End.Column)
		}
		return fmt.Sprintf("%s:%d:%d-%d:%d", filename, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Contains returns true if the span contains the given position.
func (s Span) Contains(pos Position) bool {
	return s.Start.Offset <= pos.Offset && pos.Offset < s.End.Offset
}

// ContainsSpan returns true if other lies entirely within this span.
// An empty span at the boundary still counts as contained.
func (s Span) ContainsSpan(other Span) bool {
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}

// Union returns a span that encompasses both this span and other.
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}
	start := s.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := s.End
	if end.Before(other.End) {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Length returns the length of the span in bytes.
func (s Span) Length() int {
	return s.End.Offset - s.Start.Offset
}

// SourceFile represents an in-memory source buffer with a line index,
// used by external front ends to render diagnostics.
type SourceFile struct {
	Filename string
	Content  string

	lineOffsets []int // byte offset of the start of each line
}

// NewSourceFile creates a new source file from content.
func NewSourceFile(filename, content string) *SourceFile {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &SourceFile{
		Filename:    filename,
		Content:     content,
		lineOffsets: offsets,
	}
}

// NumLines returns the number of lines in the file.
func (sf *SourceFile) NumLines() int {
	return len(sf.lineOffsets)
}

// GetLine returns the specified line (1-based) without its trailing
// newline, or an empty string if the line number is out of range.
func (sf *SourceFile) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.lineOffsets) {
		return ""
	}
	start := sf.lineOffsets[lineNum-1]
	end := len(sf.Content)
	if lineNum < len(sf.lineOffsets) {
		end = sf.lineOffsets[lineNum] - 1
	}
	return strings.TrimSuffix(sf.Content[start:end], "\r")
}

// GetSpanText returns the text covered by the span.
func (sf *SourceFile) GetSpanText(span Span) string {
	if span.Start.Offset < 0 || span.End.Offset > len(sf.Content) || span.Start.Offset > span.End.Offset {
		return ""
	}
	return sf.Content[span.Start.Offset:span.End.Offset]
}

// PositionFromOffset converts a byte offset to a full Position.
func (sf *SourceFile) PositionFromOffset(offset int) Position {
	if offset < 0 || offset > len(sf.Content) {
		return Position{}
	}
	line := sort.Search(len(sf.lineOffsets), func(i int) bool {
		return sf.lineOffsets[i] > offset
	})
	return Position{
		Filename: sf.Filename,
		Line:     line,
		Column:   offset - sf.lineOffsets[line-1] + 1,
		Offset:   offset,
	}
}
