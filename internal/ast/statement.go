// Package ast defines the dead-lang statement nodes and their
// rendering into C source text. Nodes are immutable once constructed
// and own their children outright; rendering is pure, total over
// well-formed nodes, and idempotent.
package ast

import (
	"fmt"
	"strings"

	"github.com/Dead-tech/dead-lang/internal/types"
)

// Statement is the closed set of dead-lang statement nodes. The
// unexported marker method keeps the variant set sealed to this
// package.
type Statement interface {
	// Render returns the C source fragment for this node.
	Render() string

	statementNode()
}

// Empty is the explicit "no body" marker, used where a sub-block is
// syntactically absent (e.g. a missing else branch).
type Empty struct{}

func (e *Empty) statementNode() {}

func (e *Empty) Render() string { return "" }

// Block is an ordered sequence of statements.
type Block struct {
	Statements []Statement
}

// NewBlock creates a block holding the given statements.
func NewBlock(statements []Statement) *Block {
	return &Block{Statements: statements}
}

func (b *Block) statementNode() {}

// IsEmpty reports whether the block holds zero statements.
func (b *Block) IsEmpty() bool {
	return len(b.Statements) == 0
}

// Render renders every child in order, each followed by a newline. An
// Empty child contributes no newline; its empty rendering is simply
// concatenated.
func (b *Block) Render() string {
	var sb strings.Builder

	for _, stmt := range b.Statements {
		sb.WriteString(stmt.Render())
		if _, isEmpty := stmt.(*Empty); !isEmpty {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Module is a full translation unit: C includes, struct definitions
// and function definitions. Its rendering is suitable for writing
// directly to a .c file.
type Module struct {
	Name      string
	CIncludes []string
	Structs   *Block
	Functions *Block
}

func (m *Module) statementNode() {}

func (m *Module) Render() string {
	var sb strings.Builder

	for _, include := range m.CIncludes {
		sb.WriteString(fmt.Sprintf("#include <%s>\n", stripDelimiters(include)))
	}
	sb.WriteString("\n")

	sb.WriteString(m.Structs.Render())
	sb.WriteString("\n")

	sb.WriteString(m.Functions.Render())

	return sb.String()
}

// stripDelimiters drops the surrounding delimiter characters (quotes
// or angle brackets) from a recorded include name before it is
// re-wrapped in angle brackets.
func stripDelimiters(include string) string {
	if len(include) < 2 {
		return include
	}
	return include[1 : len(include)-1]
}

// Function is a C function definition. Args is the raw comma-separated
// parameter list in "[mut] <type> [extension...] <name>" form; a
// parameter without the leading mut marker is emitted const.
type Function struct {
	Name       string
	Args       string
	ReturnType string
	Body       *Block
}

func (f *Function) statementNode() {}

func (f *Function) Render() string {
	var sb strings.Builder

	sb.WriteString(types.CTypeFor(f.ReturnType))
	sb.WriteString(" ")
	sb.WriteString(f.Name)
	sb.WriteString("(")
	sb.WriteString(renderParams(f.Args))
	sb.WriteString(") {\n")
	sb.WriteString(f.Body.Render())
	sb.WriteString("}\n")

	return sb.String()
}

// renderParams translates the raw parameter-list string into its C
// form: parameters are split on commas, pieces on spaces; a leading
// "mut" piece marks the parameter mutable and is dropped; the first
// remaining piece is the base type, the last the parameter name, and
// anything between them is concatenated directly after the mapped type
// as type extensions.
func renderParams(args string) string {
	if strings.TrimSpace(args) == "" {
		return ""
	}

	var params []string
	for _, arg := range strings.Split(args, ",") {
		pieces := strings.Fields(arg)
		if len(pieces) == 0 {
			continue
		}

		mutable := pieces[0] == "mut"
		if mutable {
			pieces = pieces[1:]
		}
		if len(pieces) == 0 {
			continue
		}

		baseType := types.CTypeFor(pieces[0])
		name := pieces[len(pieces)-1]
		extensions := ""
		if len(pieces) > 2 {
			extensions = strings.Join(pieces[1:len(pieces)-1], "")
		}

		param := baseType + extensions + " " + name
		if !mutable {
			param = "const " + param
		}
		params = append(params, param)
	}

	return strings.Join(params, ", ")
}

// If is a conditional statement. The else branch is emitted only when
// the else block is non-empty.
type If struct {
	Condition string
	Then      *Block
	Else      *Block
}

func (i *If) statementNode() {}

func (i *If) Render() string {
	var sb strings.Builder

	sb.WriteString("if (")
	sb.WriteString(i.Condition)
	sb.WriteString(") {\n")
	sb.WriteString(i.Then.Render())

	if !i.Else.IsEmpty() {
		sb.WriteString("} else {\n")
		sb.WriteString(i.Else.Render())
	}

	sb.WriteString("}\n")

	return sb.String()
}

// Return is a return statement carrying its raw expression text.
type Return struct {
	Expression string
}

func (r *Return) statementNode() {}

func (r *Return) Render() string {
	return "return " + r.Expression + ";"
}

// Variable is a variable declaration with an initializer expression.
type Variable struct {
	Mutable        bool
	Type           types.BuiltinType
	TypeExtensions string
	Name           string
	Expression     string
}

func (v *Variable) statementNode() {}

func (v *Variable) Render() string {
	mutability := "const "
	if v.Mutable {
		mutability = ""
	}
	return mutability + v.Type.CType() + v.TypeExtensions + " " + v.Name + " = " + v.Expression + ";"
}

// PlusEqual is a compound assignment to an existing variable.
type PlusEqual struct {
	Name       string
	Expression string
}

func (p *PlusEqual) statementNode() {}

func (p *PlusEqual) Render() string {
	return p.Name + " += " + p.Expression + ";"
}

// While is a while loop.
type While struct {
	Condition string
	Body      *Block
}

func (w *While) statementNode() {}

func (w *While) Render() string {
	var sb strings.Builder

	sb.WriteString("while (")
	sb.WriteString(w.Condition)
	sb.WriteString(") {\n")
	sb.WriteString(w.Body.Render())
	sb.WriteString("}\n")

	return sb.String()
}

// For is a for loop. The init statement's own rendering (trailing ';'
// included) is embedded verbatim; condition and increment are raw
// pre-rendered text concatenated with no separator, so callers embed
// any ';' they need in the condition text themselves.
type For struct {
	Init      Statement
	Condition string
	Increment string
	Body      *Block
}

func (f *For) statementNode() {}

func (f *For) Render() string {
	var sb strings.Builder

	sb.WriteString("for (")
	sb.WriteString(f.Init.Render())
	sb.WriteString(" ")
	sb.WriteString(f.Condition)
	sb.WriteString(f.Increment)
	sb.WriteString(") {\n")
	sb.WriteString(f.Body.Render())
	sb.WriteString("}\n")

	return sb.String()
}

// ExpressionStatement is a bare expression followed by a semicolon.
type ExpressionStatement struct {
	Expression string
}

func (e *ExpressionStatement) statementNode() {}

func (e *ExpressionStatement) Render() string {
	return e.Expression + ";"
}

// Array is an array declaration. Elements is the raw pre-joined
// element list.
type Array struct {
	Mutable        bool
	Type           types.BuiltinType
	TypeExtensions string
	Name           string
	Elements       string
}

func (a *Array) statementNode() {}

func (a *Array) Render() string {
	mutability := "const "
	if a.Mutable {
		mutability = ""
	}
	return fmt.Sprintf("%s %s %s%s = { %s };", mutability, a.Type.CType(), a.Name, a.TypeExtensions, a.Elements)
}

// IndexOperator is an assignment through a subscript.
type IndexOperator struct {
	Name       string
	Index      string
	Expression string
}

func (i *IndexOperator) statementNode() {}

func (i *IndexOperator) Render() string {
	return fmt.Sprintf("%s[%s] = %s;", i.Name, i.Index, i.Expression)
}

// FunctionCall is a function call used as a statement.
type FunctionCall struct {
	Name string
	Args string
}

func (f *FunctionCall) statementNode() {}

func (f *FunctionCall) Render() string {
	return fmt.Sprintf("%s(%s);", f.Name, f.Args)
}

// Struct is a typedef'd struct definition. Members are pre-rendered
// member-variable declaration strings.
type Struct struct {
	Name    string
	Members []string
}

func (s *Struct) statementNode() {}

func (s *Struct) Render() string {
	var sb strings.Builder

	sb.WriteString("typedef struct " + s.Name + " {\n")
	for _, member := range s.Members {
		sb.WriteString(fmt.Sprintf("    %s;\n", member))
	}
	sb.WriteString(fmt.Sprintf("} %s;\n", s.Name))

	return sb.String()
}
