// Package position provides half-open source spans for tokens and
// diagnostics, plus line lookup over raw source content.
package position

import (
	"fmt"
	"strings"
)

// Position is a half-open [Start, End) range of byte offsets into the
// source text.
type Position struct {
	Start int
	End   int
}

// New creates a position spanning [start, end).
func New(start, end int) Position {
	return Position{Start: start, End: end}
}

// IsValid returns true if the position is a well-formed span.
func (p Position) IsValid() bool {
	return p.Start >= 0 && p.End >= p.Start
}

// Length returns the length of the span in bytes.
func (p Position) Length() int {
	if p.End < p.Start {
		return 0
	}
	return p.End - p.Start
}

// String returns a string representation of the span.
func (p Position) String() string {
	return fmt.Sprintf("[%d, %d)", p.Start, p.End)
}

// SourceFile wraps source content with line lookup so diagnostics can
// point at the offending line.
type SourceFile struct {
	Content string
	lines   []Position
}

// NewSourceFile creates a source file from raw content.
func NewSourceFile(content string) *SourceFile {
	return &SourceFile{Content: content, lines: computeLineSpans(content)}
}

// computeLineSpans returns the span of every line, newline included.
func computeLineSpans(content string) []Position {
	var lines []Position

	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, New(start, i+1))
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, New(start, len(content)))
	}

	return lines
}

// LineCount returns the number of lines in the file.
func (sf *SourceFile) LineCount() int {
	return len(sf.lines)
}

// LineFor returns the 1-based line number containing the given byte
// offset and the span of that line. Offsets past the end of the
// content resolve to the last line.
func (sf *SourceFile) LineFor(offset int) (int, Position) {
	if len(sf.lines) == 0 {
		return 1, New(0, 0)
	}

	for i, line := range sf.lines {
		if offset >= line.Start && offset < line.End {
			return i + 1, line
		}
	}

	last := len(sf.lines) - 1
	return last + 1, sf.lines[last]
}

// Line returns the contents of the 1-based line without its trailing
// newline, or the empty string for an out-of-range line number.
func (sf *SourceFile) Line(n int) string {
	if n < 1 || n > len(sf.lines) {
		return ""
	}

	span := sf.lines[n-1]
	return strings.TrimRight(sf.Content[span.Start:span.End], "\n")
}
