package token

import "fmt"

type TokenType string

const (
	ILLEGAL    TokenType = "ILLEGAL"
	EOF        TokenType = "EOF"
	IDENTIFIER TokenType = "IDENTIFIER"
	INTEGER    TokenType = "INTEGER"
	DECIMAL    TokenType = "DECIMAL"
	CHARACTER  TokenType = "CHARACTER"
	STRING     TokenType = "STRING"
	OPERATOR   TokenType = "OPERATOR"
)

// Keywords are lexed as identifiers and recognized by the parser.
const (
	LET    = "LET"
	DEF    = "DEF"
	DO     = "DO"
	END    = "END"
	IF     = "IF"
	ELSE   = "ELSE"
	FOR    = "FOR"
	IN     = "IN"
	WHILE  = "WHILE"
	RETURN = "RETURN"
	NIL    = "NIL"
	TRUE   = "TRUE"
	FALSE  = "FALSE"
	AND    = "AND"
	OR     = "OR"
)

var keywords = map[string]bool{
	LET: true, DEF: true, DO: true, END: true, IF: true, ELSE: true,
	FOR: true, IN: true, WHILE: true, RETURN: true, NIL: true, TRUE: true,
	FALSE: true, AND: true, OR: true,
}

// IsKeyword reports whether an identifier lexeme is reserved.
func IsKeyword(lexeme string) bool {
	return keywords[lexeme]
}

type Token struct {
	Type    TokenType
	Lexeme  string      // raw source text
	Literal interface{} // decoded value for character and string tokens
	Offset  int         // byte offset of the first character
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// Is reports whether the token has the given type and lexeme.
func (t Token) Is(tt TokenType, lexeme string) bool {
	return t.Type == tt && t.Lexeme == lexeme
}
