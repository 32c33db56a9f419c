package parser

import (
	"strings"
	"testing"

	"github.com/Dead-tech/dead-lang/internal/ast"
	"github.com/Dead-tech/dead-lang/internal/diagnostics"
	"github.com/Dead-tech/dead-lang/internal/lexer"
)

func parseSource(t *testing.T, src string) (ast.Statement, *diagnostics.Supervisor) {
	t.Helper()

	sup := diagnostics.New(src, "")
	tokens := lexer.Lex(src, sup)
	return Parse(tokens, sup), sup
}

func renderSource(t *testing.T, src string) string {
	t.Helper()

	module, sup := parseSource(t, src)
	if sup.HasErrors() {
		t.Fatalf("unexpected errors: %v", sup.Errors())
	}
	if module == nil {
		t.Fatal("Parse returned nil without errors")
	}
	return module.Render()
}

func TestParseMinimalFunction(t *testing.T) {
	got := renderSource(t, "fn main() -> i32 {\nreturn 0;\n}")

	want := "\n\nint main() {\nreturn 0;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseFunctionWithParams(t *testing.T) {
	got := renderSource(t, "fn add(i32 a, i32 b) -> i32 {\nreturn a + b;\n}")

	// Expression lexemes are concatenated without separators.
	want := "\n\nint add(const int a, const int b) {\nreturn a+b;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseMutParameter(t *testing.T) {
	got := renderSource(t, "fn inc(mut i32 x) -> i32 {\nreturn x;\n}")

	want := "\n\nint inc(int x) {\nreturn x;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseVariableAndPlusEqual(t *testing.T) {
	src := "fn main() -> i32 {\n" +
		"mut i32 x = 0;\n" +
		"x += 1;\n" +
		"return x;\n" +
		"}"
	got := renderSource(t, src)

	want := "\n\nint main() {\nint x = 0;\nx += 1;\nreturn x;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseImmutableVariable(t *testing.T) {
	got := renderSource(t, "fn main() -> i32 {\ni32 x = 5;\nreturn x;\n}")

	want := "\n\nint main() {\nconst int x = 5;\nreturn x;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	src := "fn main() -> i32 {\n" +
		"if (x <= 2) {\n" +
		"foo(x);\n" +
		"}\n" +
		"return 0;\n" +
		"}"
	got := renderSource(t, src)

	want := "\n\nint main() {\nif (x<=2) {\nfoo(x);\n}\n\nreturn 0;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseIfElse(t *testing.T) {
	src := "fn main() -> i32 {\n" +
		"if (x == 1) {\n" +
		"return 1;\n" +
		"} else {\n" +
		"return 2;\n" +
		"}\n" +
		"return 0;\n" +
		"}"
	got := renderSource(t, src)

	want := "\n\nint main() {\nif (x==1) {\nreturn 1;\n} else {\nreturn 2;\n}\n\nreturn 0;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseWhile(t *testing.T) {
	src := "fn main() -> i32 {\n" +
		"mut i32 i = 0;\n" +
		"while (i < 3) {\n" +
		"i += 1;\n" +
		"}\n" +
		"return i;\n" +
		"}"
	got := renderSource(t, src)

	want := "\n\nint main() {\nint i = 0;\nwhile (i<3) {\ni += 1;\n}\n\nreturn i;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseFor(t *testing.T) {
	src := "fn main() -> i32 {\n" +
		"for (mut i32 i = 0; i < 3; i += 1) {\n" +
		"foo(i);\n" +
		"}\n" +
		"return 0;\n" +
		"}"
	got := renderSource(t, src)

	want := "\n\nint main() {\nfor (int i = 0; i<3i+=1) {\nfoo(i);\n}\n\nreturn 0;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseStruct(t *testing.T) {
	src := "struct Point {\n" +
		"i32 x;\n" +
		"i32 y;\n" +
		"}\n" +
		"fn main() -> i32 {\n" +
		"return 0;\n" +
		"}"
	got := renderSource(t, src)

	want := "\ntypedef struct Point {\n    int x;\n    int y;\n} Point;\n\n\nint main() {\nreturn 0;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseStructTypedMember(t *testing.T) {
	src := "struct Point {\n" +
		"i32 x;\n" +
		"}\n" +
		"struct Line {\n" +
		"Point a;\n" +
		"Point b;\n" +
		"}\n" +
		"fn main() -> i32 {\nreturn 0;\n}"
	got := renderSource(t, src)

	wantFragment := "typedef struct Line {\n    Point a;\n    Point b;\n} Line;\n"
	if !strings.Contains(got, wantFragment) {
		t.Fatalf("rendered %q, want it to contain %q", got, wantFragment)
	}
}

func TestParseFunctionCallConcatenatesArgs(t *testing.T) {
	got := renderSource(t, "fn main() -> i32 {\nprintf(fmt, x);\nreturn 0;\n}")

	want := "\n\nint main() {\nprintf(fmt,x);\nreturn 0;\n}\n\n"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestParseEmptySource(t *testing.T) {
	got := renderSource(t, "")

	if got != "\n\n" {
		t.Fatalf("rendered %q, want %q", got, "\n\n")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"missing function name",
			"fn () -> i32 {}",
			"expected function name after 'fn' keyword while parsing",
		},
		{
			"missing opening paren",
			"fn main -> i32 {}",
			"expected '(' after function name while parsing",
		},
		{
			"missing arrow",
			"fn main() i32 {}",
			"expected '->' arrow after function arguments while parsing",
		},
		{
			"missing return type",
			"fn main() -> {}",
			"expected return type after '->' while parsing",
		},
		{
			"statement at top level",
			"return 0;",
			"expected 'struct' or 'fn' at top level while parsing",
		},
		{
			"unsupported assignment operator",
			"fn main() -> i32 {\ny = 2;\nreturn 0;\n}",
			"unsupported variable assignment operator while parsing",
		},
		{
			"missing struct name",
			"struct {\ni32 x;\n}",
			"expected struct name after 'struct' keyword while parsing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module, sup := parseSource(t, tt.src)
			if module != nil {
				t.Fatal("Parse returned a module despite the error")
			}
			errs := sup.Errors()
			if len(errs) == 0 {
				t.Fatal("no error recorded")
			}
			if errs[0].Message != tt.want {
				t.Fatalf("error = %q, want %q", errs[0].Message, tt.want)
			}
		})
	}
}

func TestParseStopsAtFirstError(t *testing.T) {
	src := "fn main() - i32 {\nreturn 0;\n}\n" +
		"fn other() -> i32 {\nreturn 1;\n}"

	module, sup := parseSource(t, src)
	if module != nil {
		t.Fatal("Parse returned a module despite the error")
	}
	if got := len(sup.Errors()); got != 1 {
		t.Fatalf("recorded %d errors, want 1: %v", got, sup.Errors())
	}
}
