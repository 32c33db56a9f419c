package lexer

import (
	"fmt"

	"github.com/Dead-tech/dead-lang/internal/position"
)

// TokenType represents the type of a token.
type TokenType int

// Token types for the dead-lang lexer.
const (
	TokenEOF TokenType = iota

	// Literals
	TokenIdentifier

	// Keywords
	TokenFn
	TokenIf
	TokenElse
	TokenMut
	TokenReturn
	TokenWhile
	TokenFor
	TokenInclude
	TokenStruct
	TokenTrue
	TokenFalse
	TokenClass

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenSemicolon
	TokenComma

	// Operators
	TokenMinus
	TokenArrow
	TokenMinusMinus
	TokenAssign
	TokenEq
	TokenStar
	TokenPlus
	TokenPlusAssign
	TokenLt
	TokenLe
)

// tokenNames provides string representations for token types.
var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "IDENTIFIER",

	TokenFn:      "FN",
	TokenIf:      "IF",
	TokenElse:    "ELSE",
	TokenMut:     "MUT",
	TokenReturn:  "RETURN",
	TokenWhile:   "WHILE",
	TokenFor:     "FOR",
	TokenInclude: "INCLUDE",
	TokenStruct:  "STRUCT",
	TokenTrue:    "TRUE",
	TokenFalse:   "FALSE",
	TokenClass:   "CLASS",

	TokenLParen:    "LPAREN",
	TokenRParen:    "RPAREN",
	TokenLBrace:    "LBRACE",
	TokenRBrace:    "RBRACE",
	TokenSemicolon: "SEMICOLON",
	TokenComma:     "COMMA",

	TokenMinus:      "MINUS",
	TokenArrow:      "ARROW",
	TokenMinusMinus: "MINUS_MINUS",
	TokenAssign:     "ASSIGN",
	TokenEq:         "EQ",
	TokenStar:       "STAR",
	TokenPlus:       "PLUS",
	TokenPlusAssign: "PLUS_ASSIGN",
	TokenLt:         "LT",
	TokenLe:         "LE",
}

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// keywords maps source lexemes to their keyword token types.
var keywords = map[string]TokenType{
	"fn":      TokenFn,
	"if":      TokenIf,
	"else":    TokenElse,
	"mut":     TokenMut,
	"return":  TokenReturn,
	"while":   TokenWhile,
	"for":     TokenFor,
	"include": TokenInclude,
	"struct":  TokenStruct,
	"true":    TokenTrue,
	"false":   TokenFalse,
	"class":   TokenClass,
}

// lookupIdent classifies an identifier-style lexeme. An exact keyword
// match always wins over the identifier classification.
func lookupIdent(lexeme string) TokenType {
	if tt, ok := keywords[lexeme]; ok {
		return tt
	}
	return TokenIdentifier
}

// Token is an immutable lexeme with its type and source span.
type Token struct {
	Type    TokenType
	Literal string
	Span    position.Position
}

// Matches reports whether the token has the given type.
func (t Token) Matches(tt TokenType) bool {
	return t.Type == tt
}

// String returns a string representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Span: %s}", t.Type, t.Literal, t.Span)
}
