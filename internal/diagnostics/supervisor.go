// Package diagnostics tracks the errors recorded during a compilation
// run. The lexer and parser poll HasErrors between tokens, so a single
// recorded error stops the whole pipeline at the next token boundary.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dead-tech/dead-lang/internal/position"
)

// Error is a single recorded diagnostic with its source span.
type Error struct {
	Message string
	Span    position.Position
}

// String returns a compact single-line form of the error.
func (e Error) String() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// Supervisor collects errors recorded by the compilation stages and
// renders them as caret diagnostics against the original source.
type Supervisor struct {
	errors      []Error
	file        *position.SourceFile
	projectRoot string
	color       bool
}

// New creates a supervisor for the given file contents. projectRoot is
// the directory the source file lives in.
func New(fileContents, projectRoot string) *Supervisor {
	return &Supervisor{
		file:        position.NewSourceFile(fileContents),
		projectRoot: projectRoot,
	}
}

// EnableColor toggles ANSI escapes in Dump output.
func (s *Supervisor) EnableColor(on bool) {
	s.color = on
}

// Push records an error with its source span.
func (s *Supervisor) Push(message string, span position.Position) {
	s.errors = append(s.errors, Error{Message: message, Span: span})
}

// HasErrors reports whether any error has been recorded.
func (s *Supervisor) HasErrors() bool {
	return len(s.errors) > 0
}

// Errors returns the recorded errors in insertion order.
func (s *Supervisor) Errors() []Error {
	return s.errors
}

// ProjectRoot returns the directory containing the compiled file.
func (s *Supervisor) ProjectRoot() string {
	return s.projectRoot
}

const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

func (s *Supervisor) paint(code string) string {
	if !s.color {
		return ""
	}
	return code
}

// Dump writes every recorded error to w and clears the list.
func (s *Supervisor) Dump(w io.Writer) {
	for _, err := range s.errors {
		s.printError(w, err)
	}
	s.errors = s.errors[:0]
}

// printError renders one error with its source line and a caret run
// under the offending span.
func (s *Supervisor) printError(w io.Writer, e Error) {
	fmt.Fprintf(w, "%serror%s: %s%s%s\n",
		s.paint(colorRed), s.paint(colorReset),
		s.paint(colorBold), e.Message, s.paint(colorReset))

	lineNum, lineSpan := s.file.LineFor(e.Span.Start)
	fmt.Fprintf(w, " --> %d:%d\n", lineNum, e.Span.Start+1)
	fmt.Fprintln(w, "  |")
	fmt.Fprintf(w, "  %d\t%s\n", lineNum, s.file.Line(lineNum))

	padding := e.Span.Start - lineSpan.Start
	if padding < 0 {
		padding = 0
	}
	carets := e.Span.Length()
	if carets < 1 {
		carets = 1
	}
	fmt.Fprintf(w, "  |\t%s%s%s %s%s\n",
		s.paint(colorRed),
		strings.Repeat(" ", padding), strings.Repeat("^", carets),
		e.Message, s.paint(colorReset))
}
