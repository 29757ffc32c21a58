package ast

import (
	"github.com/funvibe/plc/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes. The set of implementations
// is closed: every pass switches over the concrete types in this package.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	node()
}

// Statement is a Node that represents a statement inside a method body.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Source is the root node of every AST the parser produces.
type Source struct {
	Token   token.Token // first token of the file
	File    string
	Fields  []*Field
	Methods []*Method
}

func (s *Source) node()                 {}
func (s *Source) TokenLiteral() string  { return s.Token.Lexeme }
func (s *Source) GetToken() token.Token { return s.Token }

// Field is a global variable.
// LET name: Type = value;
type Field struct {
	Token    token.Token // the 'LET' token
	Name     string
	TypeName string
	Value    Expression // nil when no initializer
}

func (f *Field) node()                 {}
func (f *Field) TokenLiteral() string  { return f.Token.Lexeme }
func (f *Field) GetToken() token.Token { return f.Token }

// Method is a global function.
// DEF name(a: A, b: B): R DO ... END
type Method struct {
	Token              token.Token // the 'DEF' token
	Name               string
	Parameters         []string
	ParameterTypeNames []string
	ReturnTypeName     string // empty when omitted
	Statements         []Statement
}

func (m *Method) node()                 {}
func (m *Method) TokenLiteral() string  { return m.Token.Lexeme }
func (m *Method) GetToken() token.Token { return m.Token }

// HasReturnType reports whether a return type was written.
func (m *Method) HasReturnType() bool { return m.ReturnTypeName != "" }

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) node()                 {}
func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// DeclarationStatement declares a local variable.
// LET name[: Type][ = value];
type DeclarationStatement struct {
	Token    token.Token // the 'LET' token
	Name     string
	TypeName string     // empty when omitted
	Value    Expression // nil when omitted
}

func (ds *DeclarationStatement) node()                 {}
func (ds *DeclarationStatement) statementNode()        {}
func (ds *DeclarationStatement) TokenLiteral() string  { return ds.Token.Lexeme }
func (ds *DeclarationStatement) GetToken() token.Token { return ds.Token }

// AssignmentStatement stores a value into a variable or field.
type AssignmentStatement struct {
	Token    token.Token // the '=' token
	Receiver Expression
	Value    Expression
}

func (as *AssignmentStatement) node()                 {}
func (as *AssignmentStatement) statementNode()        {}
func (as *AssignmentStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AssignmentStatement) GetToken() token.Token { return as.Token }

type IfStatement struct {
	Token     token.Token // the 'IF' token
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (is *IfStatement) node()                 {}
func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// ForStatement iterates over an IntegerIterable.
// FOR name IN value DO ... END
type ForStatement struct {
	Token      token.Token // the 'FOR' token
	Name       string
	Value      Expression
	Statements []Statement
}

func (fs *ForStatement) node()                 {}
func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token { return fs.Token }

type WhileStatement struct {
	Token      token.Token // the 'WHILE' token
	Condition  Expression
	Statements []Statement
}

func (ws *WhileStatement) node()                 {}
func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

type ReturnStatement struct {
	Token token.Token // the 'RETURN' token
	Value Expression
}

func (rs *ReturnStatement) node()                 {}
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }
