// Package lexer implements the dead-lang lexical analyzer. It turns
// raw source text into an ordered token sequence, stopping early when
// the supervisor reports that an error has been recorded elsewhere.
package lexer

import (
	"github.com/Dead-tech/dead-lang/internal/diagnostics"
	"github.com/Dead-tech/dead-lang/internal/position"
	"github.com/Dead-tech/dead-lang/internal/source"
)

// Lexer scans one token at a time. The supervisor is polled at the top
// of every scan, so an error recorded anywhere takes effect at the next
// token boundary.
type Lexer struct {
	*source.Iterator[byte]
	supervisor *diagnostics.Supervisor
}

// Lex converts source text into its full token sequence. The
// end-of-file sentinel is a scanning artifact and is excluded from the
// returned slice.
func Lex(src string, sup *diagnostics.Supervisor) []Token {
	l := &Lexer{
		Iterator:   source.NewIterator([]byte(src)),
		supervisor: sup,
	}

	var tokens []Token
	for {
		tok := l.nextToken()
		if tok.Matches(TokenEOF) {
			break
		}
		tokens = append(tokens, tok)
	}

	return tokens
}

// nextToken classifies and consumes one token. It returns the
// end-of-file sentinel at end-of-input or as soon as the supervisor
// reports an error.
func (l *Lexer) nextToken() Token {
	if l.supervisor.HasErrors() {
		return l.eofToken()
	}

	l.skipWhitespace()

	ch, ok := l.Peek()
	if !ok {
		return l.eofToken()
	}

	switch ch {
	case '(':
		return l.lexSingle(TokenLParen, "(")
	case ')':
		return l.lexSingle(TokenRParen, ")")
	case '{':
		return l.lexSingle(TokenLBrace, "{")
	case '}':
		return l.lexSingle(TokenRBrace, "}")
	case ';':
		return l.lexSingle(TokenSemicolon, ";")
	case ',':
		return l.lexSingle(TokenComma, ",")
	case '-':
		return l.lexMinus()
	case '=':
		return l.lexAssign()
	case '*':
		return l.lexSingle(TokenStar, "*")
	case '+':
		return l.lexPlus()
	case '<':
		return l.lexLt()
	default:
		return l.lexKeywordOrIdentifier()
	}
}

func (l *Lexer) eofToken() Token {
	return Token{Type: TokenEOF, Span: position.New(l.Cursor(), l.Cursor())}
}

// skipWhitespace consumes spaces, tabs, carriage returns and newlines.
func (l *Lexer) skipWhitespace() {
	for {
		ch, ok := l.Peek()
		if !ok {
			return
		}
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.Advance(1)
			continue
		}
		return
	}
}

// lexSingle consumes exactly one character.
func (l *Lexer) lexSingle(tt TokenType, literal string) Token {
	start := l.Cursor()
	l.Advance(1)
	return Token{Type: tt, Literal: literal, Span: position.New(start, l.Cursor())}
}

func (l *Lexer) lexMinus() Token {
	start := l.Cursor()

	if ch, ok := l.PeekAhead(1); ok && ch == '>' {
		l.Advance(2)
		return Token{Type: TokenArrow, Literal: "->", Span: position.New(start, l.Cursor())}
	}
	if ch, ok := l.PeekAhead(1); ok && ch == '-' {
		l.Advance(2)
		return Token{Type: TokenMinusMinus, Literal: "--", Span: position.New(start, l.Cursor())}
	}

	l.Advance(1)
	return Token{Type: TokenMinus, Literal: "-", Span: position.New(start, l.Cursor())}
}

func (l *Lexer) lexAssign() Token {
	start := l.Cursor()

	if ch, ok := l.PeekAhead(1); ok && ch == '=' {
		l.Advance(2)
		return Token{Type: TokenEq, Literal: "==", Span: position.New(start, l.Cursor())}
	}

	l.Advance(1)
	return Token{Type: TokenAssign, Literal: "=", Span: position.New(start, l.Cursor())}
}

func (l *Lexer) lexPlus() Token {
	start := l.Cursor()

	if ch, ok := l.PeekAhead(1); ok && ch == '=' {
		l.Advance(2)
		return Token{Type: TokenPlusAssign, Literal: "+=", Span: position.New(start, l.Cursor())}
	}

	l.Advance(1)
	return Token{Type: TokenPlus, Literal: "+", Span: position.New(start, l.Cursor())}
}

func (l *Lexer) lexLt() Token {
	start := l.Cursor()

	if ch, ok := l.PeekAhead(1); ok && ch == '=' {
		l.Advance(2)
		return Token{Type: TokenLe, Literal: "<=", Span: position.New(start, l.Cursor())}
	}

	l.Advance(1)
	return Token{Type: TokenLt, Literal: "<", Span: position.New(start, l.Cursor())}
}

// lexKeywordOrIdentifier consumes the maximal run of alphanumeric
// characters and underscores, then classifies it against the keyword
// table. A run of zero characters means the leading character has no
// classification at all; the scan terminates there instead of spinning
// on it.
func (l *Lexer) lexKeywordOrIdentifier() Token {
	start := l.Cursor()

	var lexeme []byte
	for {
		ch, ok := l.Peek()
		if !ok || !(isLetter(ch) || isDigit(ch) || ch == '_') {
			break
		}
		lexeme = append(lexeme, ch)
		l.Advance(1)
	}

	if len(lexeme) == 0 {
		return l.eofToken()
	}

	return Token{
		Type:    lookupIdent(string(lexeme)),
		Literal: string(lexeme),
		Span:    position.New(start, l.Cursor()),
	}
}

// isLetter checks if character is an ASCII letter.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if character is an ASCII digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
