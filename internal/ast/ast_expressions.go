package ast

import (
	"math/big"

	"github.com/funvibe/plc/internal/token"
	"github.com/shopspring/decimal"
)

type NilLiteral struct {
	Token token.Token
}

func (n *NilLiteral) node()                 {}
func (n *NilLiteral) expressionNode()       {}
func (n *NilLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NilLiteral) GetToken() token.Token { return n.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) node()                 {}
func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

// IntegerLiteral holds an arbitrary-precision value; range checking is the
// analyzer's job.
type IntegerLiteral struct {
	Token token.Token
	Value *big.Int
}

func (il *IntegerLiteral) node()                 {}
func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type DecimalLiteral struct {
	Token token.Token
	Value decimal.Decimal
}

func (dl *DecimalLiteral) node()                 {}
func (dl *DecimalLiteral) expressionNode()       {}
func (dl *DecimalLiteral) TokenLiteral() string  { return dl.Token.Lexeme }
func (dl *DecimalLiteral) GetToken() token.Token { return dl.Token }

type CharacterLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharacterLiteral) node()                 {}
func (cl *CharacterLiteral) expressionNode()       {}
func (cl *CharacterLiteral) TokenLiteral() string  { return cl.Token.Lexeme }
func (cl *CharacterLiteral) GetToken() token.Token { return cl.Token }

// StringLiteral holds the decoded value (escapes already resolved).
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) node()                 {}
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// GroupExpression is a parenthesized expression.
type GroupExpression struct {
	Token      token.Token // the '(' token
	Expression Expression
}

func (ge *GroupExpression) node()                 {}
func (ge *GroupExpression) expressionNode()       {}
func (ge *GroupExpression) TokenLiteral() string  { return ge.Token.Lexeme }
func (ge *GroupExpression) GetToken() token.Token { return ge.Token }

type BinaryExpression struct {
	Token    token.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) node()                 {}
func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// AccessExpression reads a variable, or a field when Receiver is set.
// name | receiver.name
type AccessExpression struct {
	Token    token.Token // the name token
	Receiver Expression  // nil for plain variables
	Name     string
}

func (ae *AccessExpression) node()                 {}
func (ae *AccessExpression) expressionNode()       {}
func (ae *AccessExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AccessExpression) GetToken() token.Token { return ae.Token }

// CallExpression calls a function, or a method when Receiver is set.
// name(args) | receiver.name(args)
type CallExpression struct {
	Token     token.Token // the name token
	Receiver  Expression  // nil for plain calls
	Name      string
	Arguments []Expression
}

func (ce *CallExpression) node()                 {}
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }
