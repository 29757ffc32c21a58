package lexer

import (
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/token"
)

// Tokenize lexes the whole input. It stops at the first malformed token.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			if err := l.Err(); err != nil {
				return tokens, err
			}
			return tokens, diagnostics.NewError(diagnostics.ErrL001, tok, "invalid token")
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// TokenStream is a buffered token slice implementing pipeline.TokenStream.
type TokenStream struct {
	tokens []token.Token
	pos    int
}

// NewTokenStream wraps tokens; a trailing EOF is appended when missing.
func NewTokenStream(tokens []token.Token) *TokenStream {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		eof := token.Token{Type: token.EOF}
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			eof.Offset = last.Offset + len(last.Lexeme)
			eof.Line = last.Line
			eof.Column = last.Column + len(last.Lexeme)
		}
		tokens = append(tokens, eof)
	}
	return &TokenStream{tokens: tokens}
}

func (s *TokenStream) Next() token.Token {
	tok := s.Peek(0)
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return tok
}

func (s *TokenStream) Peek(n int) token.Token {
	i := s.pos + n
	if i >= len(s.tokens) {
		i = len(s.tokens) - 1
	}
	return s.tokens[i]
}

func (s *TokenStream) Tokens() []token.Token {
	return s.tokens
}
