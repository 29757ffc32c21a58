package lexer

import (
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/token"
	"github.com/shopspring/decimal"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number

	err *diagnostics.DiagnosticError
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// Err returns the error behind the last ILLEGAL token, if any.
func (l *Lexer) Err() *diagnostics.DiagnosticError {
	return l.err
}

// NextToken lexes one token. On malformed input it returns an ILLEGAL token
// and records the cause, see Err.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start := token.Token{Offset: l.position, Line: l.line, Column: l.column}

	switch {
	case l.atEnd():
		start.Type = token.EOF
		return start
	case isLetter(l.ch):
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '-' {
			l.readChar()
		}
		return l.finish(start, token.IDENTIFIER, nil)
	case isDigit(l.ch), (l.ch == '+' || l.ch == '-') && isDigit(l.peekChar()):
		return l.readNumber(start)
	case l.ch == '\'':
		return l.readCharacter(start)
	case l.ch == '"':
		return l.readString(start)
	case l.ch == '<' || l.ch == '>' || l.ch == '!' || l.ch == '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
		}
		return l.finish(start, token.OPERATOR, nil)
	case unicode.IsControl(l.ch) || l.ch == utf8.RuneError:
		l.readChar()
		tok := l.finish(start, token.ILLEGAL, nil)
		return l.illegal(tok, diagnostics.ErrL001, "invalid character %q", tok.Lexeme)
	default:
		l.readChar()
		return l.finish(start, token.OPERATOR, nil)
	}
}

func (l *Lexer) finish(tok token.Token, tt token.TokenType, literal interface{}) token.Token {
	tok.Type = tt
	tok.Lexeme = l.input[tok.Offset:min(l.position, len(l.input))]
	tok.Literal = literal
	return tok
}

func (l *Lexer) illegal(tok token.Token, code diagnostics.ErrorCode, format string, args ...interface{}) token.Token {
	tok.Type = token.ILLEGAL
	if tok.Lexeme == "" && l.position > tok.Offset {
		tok.Lexeme = l.input[tok.Offset:min(l.position, len(l.input))]
	}
	l.err = diagnostics.NewErrorf(code, tok, format, args...)
	return tok
}

func (l *Lexer) readNumber(tok token.Token) token.Token {
	if l.ch == '+' || l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' {
		if !isDigit(l.peekChar()) {
			l.readChar()
			return l.illegal(tok, diagnostics.ErrL004, "expected digits after the decimal point")
		}
		l.readChar() // .
		for isDigit(l.ch) {
			l.readChar()
		}
		tok = l.finish(tok, token.DECIMAL, nil)
		val, err := decimal.NewFromString(strings.TrimPrefix(tok.Lexeme, "+"))
		if err != nil {
			return l.illegal(tok, diagnostics.ErrL004, "invalid decimal %s", tok.Lexeme)
		}
		tok.Literal = val
		return tok
	}

	tok = l.finish(tok, token.INTEGER, nil)
	val, ok := new(big.Int).SetString(strings.TrimPrefix(tok.Lexeme, "+"), 10)
	if !ok {
		return l.illegal(tok, diagnostics.ErrL004, "invalid integer %s", tok.Lexeme)
	}
	tok.Literal = val
	return tok
}

func (l *Lexer) readCharacter(tok token.Token) token.Token {
	l.readChar() // opening '

	var value rune
	switch {
	case l.atEnd() || l.ch == '\n' || l.ch == '\r':
		return l.illegal(tok, diagnostics.ErrL002, "unterminated character literal")
	case l.ch == '\'':
		l.readChar()
		return l.illegal(tok, diagnostics.ErrL002, "empty character literal")
	case l.ch == '\\':
		r, ok := l.readEscape()
		if !ok {
			return l.illegal(tok, diagnostics.ErrL003, "invalid escape sequence")
		}
		value = r
	default:
		value = l.ch
		l.readChar()
	}

	if l.ch != '\'' {
		return l.illegal(tok, diagnostics.ErrL002, "unterminated character literal, expected '")
	}
	l.readChar()
	return l.finish(tok, token.CHARACTER, value)
}

func (l *Lexer) readString(tok token.Token) token.Token {
	l.readChar() // opening "

	var sb strings.Builder
	for l.ch != '"' {
		switch {
		case l.atEnd() || l.ch == '\n' || l.ch == '\r':
			return l.illegal(tok, diagnostics.ErrL002, "unterminated string literal")
		case l.ch == '\\':
			r, ok := l.readEscape()
			if !ok {
				return l.illegal(tok, diagnostics.ErrL003, "invalid escape sequence")
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
	l.readChar() // closing "
	return l.finish(tok, token.STRING, sb.String())
}

// readEscape consumes a backslash and the escaped character.
func (l *Lexer) readEscape() (rune, bool) {
	l.readChar() // backslash
	var r rune
	switch l.ch {
	case 'b':
		r = '\b'
	case 'n':
		r = '\n'
	case 'r':
		r = '\r'
	case 't':
		r = '\t'
	case '\'', '"', '\\':
		r = l.ch
	default:
		if !l.atEnd() && l.ch != '\n' {
			l.readChar()
		}
		return 0, false
	}
	l.readChar()
	return r, true
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && (l.ch == ' ' || l.ch == '\b' || l.ch == '\n' || l.ch == '\r' || l.ch == '\t') {
		l.readChar()
	}
}
