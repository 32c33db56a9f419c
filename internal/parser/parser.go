// Package parser builds the dead-lang statement tree from a token
// stream by recursive descent. Every error path records a diagnostic
// on the supervisor and unwinds; the token-consuming loops poll the
// supervisor so parsing stops at the first recorded error.
package parser

import (
	"strings"

	"github.com/Dead-tech/dead-lang/internal/ast"
	"github.com/Dead-tech/dead-lang/internal/diagnostics"
	"github.com/Dead-tech/dead-lang/internal/lexer"
	"github.com/Dead-tech/dead-lang/internal/position"
	"github.com/Dead-tech/dead-lang/internal/source"
	"github.com/Dead-tech/dead-lang/internal/types"
)

// Parser walks the token sequence with the same cursor the lexer uses
// over bytes.
type Parser struct {
	*source.Iterator[lexer.Token]
	supervisor *diagnostics.Supervisor
}

// Parse consumes the token stream and returns the module statement, or
// nil when an error was recorded.
func Parse(tokens []lexer.Token, sup *diagnostics.Supervisor) ast.Statement {
	p := &Parser{
		Iterator:   source.NewIterator(tokens),
		supervisor: sup,
	}
	return p.parseModule()
}

// parseModule parses top-level struct and function definitions into
// the module's two blocks.
func (p *Parser) parseModule() ast.Statement {
	const name = "main"

	var structs []ast.Statement
	var functions []ast.Statement

	for !p.EOF() && !p.supervisor.HasErrors() {
		tok, _ := p.Peek()
		switch tok.Type {
		case lexer.TokenStruct:
			if stmt := p.parseStructStatement(); stmt != nil {
				structs = append(structs, stmt)
			}
		case lexer.TokenFn:
			if stmt := p.parseFunctionStatement(); stmt != nil {
				functions = append(functions, stmt)
			}
		default:
			p.supervisor.Push("expected 'struct' or 'fn' at top level while parsing", tok.Span)
		}
	}

	if p.supervisor.HasErrors() {
		return nil
	}

	return &ast.Module{
		Name:      name,
		Structs:   ast.NewBlock(structs),
		Functions: ast.NewBlock(functions),
	}
}

func (p *Parser) parseFunctionStatement() ast.Statement {
	fnToken, _ := p.Next()

	name, ok := p.Next()
	if !ok || !name.Matches(lexer.TokenIdentifier) {
		p.supervisor.Push("expected function name after 'fn' keyword while parsing", p.previousPosition())
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenLParen) {
		p.supervisor.Push("expected '(' after function name while parsing", p.previousPosition())
		return nil
	}

	// Argument tokens are re-joined into the raw string form the
	// Function node's parameter sub-parser expects: every lexeme
	// prefixed with a space, commas included.
	var args strings.Builder
	p.consumeTokensUntil(lexer.TokenRParen, func() {
		tok, _ := p.Next()
		args.WriteString(" ")
		args.WriteString(tok.Literal)
	})

	if !p.matchesAndConsume(lexer.TokenRParen) {
		p.supervisor.Push("expected ')' after function arguments while parsing", fnToken.Span)
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenArrow) {
		p.supervisor.Push("expected '->' arrow after function arguments while parsing", p.previousPosition())
		return nil
	}

	returnType, ok := p.Next()
	if !ok || !returnType.Matches(lexer.TokenIdentifier) {
		p.supervisor.Push("expected return type after '->' while parsing", p.previousPosition())
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenLBrace) {
		p.supervisor.Push("expected '{' after function return type while parsing", p.previousPosition())
		return nil
	}

	body := p.parseStatementBlock()

	if !p.matchesAndConsume(lexer.TokenRBrace) {
		p.supervisor.Push("expected '}' after function body while parsing", p.previousPosition())
		return nil
	}

	return &ast.Function{
		Name:       name.Literal,
		Args:       args.String(),
		ReturnType: returnType.Literal,
		Body:       body,
	}
}

func (p *Parser) parseStatement() ast.Statement {
	tok, ok := p.Peek()
	if !ok {
		return nil
	}

	switch tok.Type {
	case lexer.TokenIf:
		return p.parseIfStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenWhile:
		return p.parseWhileStatement()
	case lexer.TokenFor:
		return p.parseForStatement()
	case lexer.TokenMut:
		return p.parseVariableStatement()
	case lexer.TokenIdentifier:
		if p.identifierIsFunctionCall() {
			return p.parseFunctionCallStatement()
		}
		return p.parseVariableStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseIfStatement() ast.Statement {
	ifToken, _ := p.Next()

	if !p.matchesAndConsume(lexer.TokenLParen) {
		p.supervisor.Push("expected '(' after if keyword while parsing", p.previousPosition())
		return nil
	}

	condition := p.parseExpression(lexer.TokenRParen)
	if !p.matchesAndConsume(lexer.TokenRParen) || condition == "" {
		p.supervisor.Push("expected expression while parsing if statement condition", ifToken.Span)
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenLBrace) {
		p.supervisor.Push("expected '{' after if condition while parsing", p.previousPosition())
		return nil
	}

	thenBlock := p.parseStatementBlock()

	if !p.matchesAndConsume(lexer.TokenRBrace) {
		p.supervisor.Push("expected '}' after if statement's 'then branch' while parsing", ifToken.Span)
		return nil
	}

	elseBlock := ast.NewBlock(nil)
	if tok, ok := p.Peek(); ok && tok.Matches(lexer.TokenElse) {
		p.Advance(1)

		if !p.matchesAndConsume(lexer.TokenLBrace) {
			p.supervisor.Push("expected '{' after else keyword while parsing", p.previousPosition())
			return nil
		}

		elseBlock = p.parseStatementBlock()

		if !p.matchesAndConsume(lexer.TokenRBrace) {
			p.supervisor.Push("expected '}' after if statement's 'else branch' while parsing", p.previousPosition())
			return nil
		}
	}

	return &ast.If{Condition: condition, Then: thenBlock, Else: elseBlock}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	returnToken, _ := p.Next()

	expression := p.parseExpression(lexer.TokenSemicolon)
	if expression == "" {
		p.supervisor.Push("expected expression after return keyword while parsing", p.previousPosition())
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenSemicolon) {
		p.supervisor.Push("expected ';' after return statement's expression while parsing", returnToken.Span)
		return nil
	}

	return &ast.Return{Expression: expression}
}

// parseVariableStatement parses "[mut] <builtin-type> <name> = <expr>;".
// An identifier that is not a builtin type falls through to the
// assignment forms.
func (p *Parser) parseVariableStatement() ast.Statement {
	tok, _ := p.Peek()
	mutable := tok.Matches(lexer.TokenMut)
	if mutable {
		p.Advance(1)
	}

	typeToken, _ := p.Peek()
	variableType := types.FromString(typeToken.Literal)
	if variableType == types.None {
		return p.parseVariableAssignment()
	}

	p.Advance(1)

	nameToken, ok := p.Next()
	if !ok || !nameToken.Matches(lexer.TokenIdentifier) {
		p.supervisor.Push("expected variable name after variable type while parsing", p.positionBehind(2))
		return nil
	}

	equalToken, _ := p.Peek()
	if !p.matchesAndConsume(lexer.TokenAssign) {
		p.supervisor.Push("expected '=' after variable name while parsing", p.previousPosition())
		return nil
	}

	expression := p.parseExpression(lexer.TokenSemicolon)
	if expression == "" {
		p.supervisor.Push("expected expression after '=' in variable declaration while parsing", equalToken.Span)
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenSemicolon) {
		p.supervisor.Push("expected ';' after expression in variable declaration while parsing", equalToken.Span)
		return nil
	}

	return &ast.Variable{
		Mutable:    mutable,
		Type:       variableType,
		Name:       nameToken.Literal,
		Expression: expression,
	}
}

func (p *Parser) parseVariableAssignment() ast.Statement {
	nameToken, _ := p.Next()

	if tok, ok := p.Peek(); ok && tok.Matches(lexer.TokenPlusAssign) {
		return p.parsePlusEqualStatement(nameToken.Literal)
	}

	p.supervisor.Push("unsupported variable assignment operator while parsing", p.previousPosition())
	return nil
}

func (p *Parser) parsePlusEqualStatement(variableName string) ast.Statement {
	plusEqualToken, _ := p.Next()

	expression := p.parseExpression(lexer.TokenSemicolon)
	if expression == "" {
		p.supervisor.Push("expected expression after '+=' in variable assignment while parsing", plusEqualToken.Span)
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenSemicolon) {
		p.supervisor.Push("expected ';' after expression in variable assignment while parsing", p.previousPosition())
		return nil
	}

	return &ast.PlusEqual{Name: variableName, Expression: expression}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	whileToken, _ := p.Next()

	if !p.matchesAndConsume(lexer.TokenLParen) {
		p.supervisor.Push("expected '(' after while keyword while parsing", p.previousPosition())
		return nil
	}

	condition := p.parseExpression(lexer.TokenRParen)
	if condition == "" {
		p.supervisor.Push("expected expression while parsing while-loop condition", whileToken.Span)
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenRParen) {
		p.supervisor.Push("expected ')' after while-loop condition while parsing", whileToken.Span)
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenLBrace) {
		p.supervisor.Push("expected '{' after while-loop condition while parsing", p.previousPosition())
		return nil
	}

	body := p.parseStatementBlock()

	if !p.matchesAndConsume(lexer.TokenRBrace) {
		p.supervisor.Push("expected '}' after while-loop body while parsing", p.previousPosition())
	}

	return &ast.While{Condition: condition, Body: body}
}

func (p *Parser) parseForStatement() ast.Statement {
	forToken, _ := p.Next()

	if !p.matchesAndConsume(lexer.TokenLParen) {
		p.supervisor.Push("expected '(' after for keyword while parsing", p.previousPosition())
		return nil
	}

	initializer := p.parseVariableStatement()
	if initializer == nil {
		p.supervisor.Push("expected variable declaration while parsing for-loop initializer", forToken.Span)
		return nil
	}

	condition := p.parseExpression(lexer.TokenSemicolon)

	if !p.matchesAndConsume(lexer.TokenSemicolon) {
		p.supervisor.Push("expected ';' after for-loop condition while parsing", p.previousPosition())
		return nil
	}

	increment := p.parseExpression(lexer.TokenRParen)

	if !p.matchesAndConsume(lexer.TokenRParen) {
		p.supervisor.Push("expected ')' after for-loop increment while parsing", p.previousPosition())
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenLBrace) {
		p.supervisor.Push("expected '{' after for-loop increment while parsing", p.previousPosition())
		return nil
	}

	body := p.parseStatementBlock()

	if !p.matchesAndConsume(lexer.TokenRBrace) {
		p.supervisor.Push("expected '}' after for-loop body while parsing", p.previousPosition())
	}

	return &ast.For{
		Init:      initializer,
		Condition: condition,
		Increment: increment,
		Body:      body,
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expression := p.parseExpression(lexer.TokenSemicolon)
	if expression == "" {
		p.supervisor.Push("expected expression while parsing expression statement", p.previousPosition())
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenSemicolon) {
		p.supervisor.Push("expected ';' after expression while parsing expression statement", p.previousPosition())
		return nil
	}

	return &ast.ExpressionStatement{Expression: expression}
}

func (p *Parser) parseFunctionCallStatement() ast.Statement {
	nameToken, _ := p.Next()

	// identifierIsFunctionCall guarantees the '('.
	p.Advance(1)

	var args strings.Builder
	p.consumeTokensUntil(lexer.TokenRParen, func() {
		tok, _ := p.Next()
		args.WriteString(tok.Literal)
	})

	if !p.matchesAndConsume(lexer.TokenRParen) {
		p.supervisor.Push("expected ')' after function call arguments while parsing", nameToken.Span)
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenSemicolon) {
		p.supervisor.Push("expected ';' after function call while parsing", p.previousPosition())
		return nil
	}

	return &ast.FunctionCall{Name: nameToken.Literal, Args: args.String()}
}

func (p *Parser) parseStructStatement() ast.Statement {
	structToken, _ := p.Next()

	nameToken, ok := p.Next()
	if !ok || !nameToken.Matches(lexer.TokenIdentifier) {
		p.supervisor.Push("expected struct name after 'struct' keyword while parsing", p.previousPosition())
		return nil
	}

	if !p.matchesAndConsume(lexer.TokenLBrace) {
		p.supervisor.Push("expected '{' after struct name while parsing", p.previousPosition())
		return nil
	}

	members := p.parseMemberVariables()

	if !p.matchesAndConsume(lexer.TokenRBrace) {
		p.supervisor.Push("expected '}' after struct members while parsing", structToken.Span)
		return nil
	}

	return &ast.Struct{Name: nameToken.Literal, Members: members}
}

// parseMemberVariables parses "<type> <name>;" member declarations and
// returns them already mapped to their C form.
func (p *Parser) parseMemberVariables() []string {
	var members []string

	p.consumeTokensUntil(lexer.TokenRBrace, func() {
		typeToken, ok := p.Next()
		if !ok || !typeToken.Matches(lexer.TokenIdentifier) {
			p.supervisor.Push("expected member variable type while parsing struct", p.previousPosition())
			return
		}

		nameToken, ok := p.Next()
		if !ok || !nameToken.Matches(lexer.TokenIdentifier) {
			p.supervisor.Push("expected member variable name while parsing struct", p.previousPosition())
			return
		}

		if !p.matchesAndConsume(lexer.TokenSemicolon) {
			p.supervisor.Push("expected ';' after struct member while parsing", p.previousPosition())
			return
		}

		members = append(members, types.CTypeFor(typeToken.Literal)+" "+nameToken.Literal)
	})

	return members
}

// parseExpression concatenates lexemes, with no separator, until the
// delimiter token. The delimiter itself is not consumed.
func (p *Parser) parseExpression(delimiter lexer.TokenType) string {
	var expression strings.Builder

	p.consumeTokensUntil(delimiter, func() {
		tok, _ := p.Next()
		expression.WriteString(tok.Literal)
	})

	return expression.String()
}

func (p *Parser) parseStatementBlock() *ast.Block {
	var block []ast.Statement

	p.consumeTokensUntil(lexer.TokenRBrace, func() {
		if stmt := p.parseStatement(); stmt != nil {
			block = append(block, stmt)
		}
	})

	return ast.NewBlock(block)
}

// identifierIsFunctionCall reports whether the identifier at the read
// position is directly followed by '('.
func (p *Parser) identifierIsFunctionCall() bool {
	next, ok := p.PeekAhead(1)
	return ok && next.Matches(lexer.TokenLParen)
}

// consumeTokensUntil invokes fn until the delimiter is at the read
// position, end-of-input is reached, or the supervisor records an
// error.
func (p *Parser) consumeTokensUntil(delimiter lexer.TokenType, fn func()) {
	for {
		if p.EOF() || p.supervisor.HasErrors() {
			return
		}

		tok, _ := p.Peek()
		if tok.Matches(delimiter) {
			return
		}

		fn()
	}
}

// matchesAndConsume consumes the token at the read position iff it has
// the given type.
func (p *Parser) matchesAndConsume(delimiter lexer.TokenType) bool {
	tok, ok := p.Peek()
	if !ok || !tok.Matches(delimiter) {
		return false
	}

	p.Advance(1)
	return true
}

func (p *Parser) previousPosition() position.Position {
	return p.positionBehind(1)
}

func (p *Parser) positionBehind(n int) position.Position {
	tok, ok := p.PeekBehind(n)
	if !ok {
		return position.New(0, 0)
	}
	return tok.Span
}
