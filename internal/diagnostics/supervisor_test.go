package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Dead-tech/dead-lang/internal/position"
)

func TestPushAndHasErrors(t *testing.T) {
	sup := New("fn main\n", "")

	if sup.HasErrors() {
		t.Fatal("fresh supervisor reports errors")
	}

	sup.Push("boom", position.New(0, 2))
	if !sup.HasErrors() {
		t.Fatal("HasErrors() = false after Push")
	}

	errs := sup.Errors()
	if len(errs) != 1 || errs[0].Message != "boom" {
		t.Fatalf("Errors() = %v, want one error with message %q", errs, "boom")
	}
}

func TestErrorString(t *testing.T) {
	e := Error{Message: "boom", Span: position.New(2, 5)}
	if got := e.String(); got != "[2, 5): boom" {
		t.Fatalf("String() = %q, want %q", got, "[2, 5): boom")
	}
}

func TestProjectRoot(t *testing.T) {
	sup := New("x", "/tmp/project")
	if got := sup.ProjectRoot(); got != "/tmp/project" {
		t.Fatalf("ProjectRoot() = %q, want %q", got, "/tmp/project")
	}
}

func TestDumpRendersCaretDiagnostic(t *testing.T) {
	src := "fn main\nreturn x;\n"
	sup := New(src, "")

	// Span of "return" on line 2.
	sup.Push("boom", position.New(8, 14))

	var buf bytes.Buffer
	sup.Dump(&buf)

	want := "error: boom\n" +
		" --> 2:9\n" +
		"  |\n" +
		"  2\treturn x;\n" +
		"  |\t^^^^^^ boom\n"
	if got := buf.String(); got != want {
		t.Fatalf("Dump output:\n%q\nwant:\n%q", got, want)
	}
}

func TestDumpPadsCaretsToSpanColumn(t *testing.T) {
	src := "fn main\nreturn x;\n"
	sup := New(src, "")

	// Span of "x" on line 2.
	sup.Push("unknown name", position.New(15, 16))

	var buf bytes.Buffer
	sup.Dump(&buf)

	want := "  |\t       ^ unknown name\n"
	if got := buf.String(); !strings.Contains(got, want) {
		t.Fatalf("Dump output %q does not contain %q", got, want)
	}
}

func TestDumpClearsErrors(t *testing.T) {
	sup := New("x\n", "")
	sup.Push("boom", position.New(0, 1))

	var buf bytes.Buffer
	sup.Dump(&buf)

	if sup.HasErrors() {
		t.Fatal("HasErrors() = true after Dump")
	}

	buf.Reset()
	sup.Dump(&buf)
	if buf.Len() != 0 {
		t.Fatalf("second Dump wrote %q, want nothing", buf.String())
	}
}

func TestDumpEmitsColorWhenEnabled(t *testing.T) {
	sup := New("x\n", "")
	sup.EnableColor(true)
	sup.Push("boom", position.New(0, 1))

	var buf bytes.Buffer
	sup.Dump(&buf)

	if !strings.Contains(buf.String(), "\x1b[31m") {
		t.Fatal("colored Dump output carries no ANSI escape")
	}
}

func TestDumpOmitsColorByDefault(t *testing.T) {
	sup := New("x\n", "")
	sup.Push("boom", position.New(0, 1))

	var buf bytes.Buffer
	sup.Dump(&buf)

	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("uncolored Dump output carries an ANSI escape")
	}
}
