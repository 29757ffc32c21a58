package diagnostics

import (
	"fmt"

	"github.com/funvibe/plc/internal/token"
)

type ErrorCode string

// Lexer errors
const (
	ErrL001 ErrorCode = "L001" // invalid character
	ErrL002 ErrorCode = "L002" // unterminated character or string literal
	ErrL003 ErrorCode = "L003" // invalid escape sequence
	ErrL004 ErrorCode = "L004" // malformed number
)

// Parser errors
const (
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // missing token
	ErrP003 ErrorCode = "P003" // invalid expression
)

// Analyzer errors
const (
	ErrA001 ErrorCode = "A001" // undefined variable
	ErrA002 ErrorCode = "A002" // undefined function
	ErrA003 ErrorCode = "A003" // undefined field
	ErrA004 ErrorCode = "A004" // undefined method
	ErrA005 ErrorCode = "A005" // type mismatch
	ErrA006 ErrorCode = "A006" // invalid assignment target
	ErrA007 ErrorCode = "A007" // ambiguous declaration
	ErrA008 ErrorCode = "A008" // empty branch
	ErrA009 ErrorCode = "A009" // return outside method
	ErrA010 ErrorCode = "A010" // missing entry point
	ErrA011 ErrorCode = "A011" // invalid entry point type
	ErrA012 ErrorCode = "A012" // integer out of range
	ErrA013 ErrorCode = "A013" // decimal out of range
	ErrA014 ErrorCode = "A014" // invalid group target
	ErrA015 ErrorCode = "A015" // unknown operator
	ErrA016 ErrorCode = "A016" // useless expression
	ErrA017 ErrorCode = "A017" // duplicate declaration
	ErrA018 ErrorCode = "A018" // undefined type
)

// Runtime errors
const (
	ErrR001 ErrorCode = "R001" // generic runtime failure
	ErrR002 ErrorCode = "R002" // undefined variable
	ErrR003 ErrorCode = "R003" // undefined field
	ErrR004 ErrorCode = "R004" // unexpected runtime kind
	ErrR005 ErrorCode = "R005" // division by zero
	ErrR006 ErrorCode = "R006" // undefined function
	ErrR007 ErrorCode = "R007" // undefined method
)

// Generator errors
const (
	ErrG001 ErrorCode = "G001" // tree was not analyzed
)

var names = map[ErrorCode]string{
	ErrL001: "InvalidCharacter",
	ErrL002: "UnterminatedLiteral",
	ErrL003: "InvalidEscape",
	ErrL004: "MalformedNumber",
	ErrP001: "UnexpectedToken",
	ErrP002: "MissingToken",
	ErrP003: "InvalidExpression",
	ErrA001: "UndefinedVariable",
	ErrA002: "UndefinedFunction",
	ErrA003: "UndefinedField",
	ErrA004: "UndefinedMethod",
	ErrA005: "TypeMismatch",
	ErrA006: "InvalidAssignmentTarget",
	ErrA007: "AmbiguousDeclaration",
	ErrA008: "EmptyBranch",
	ErrA009: "ReturnOutsideMethod",
	ErrA010: "MissingEntryPoint",
	ErrA011: "InvalidEntryPointType",
	ErrA012: "IntegerOutOfRange",
	ErrA013: "DecimalOutOfRange",
	ErrA014: "InvalidGroupTarget",
	ErrA015: "UnknownOperator",
	ErrA016: "UselessExpression",
	ErrA017: "DuplicateDeclaration",
	ErrA018: "UndefinedType",
	ErrR001: "RuntimeError",
	ErrR002: "UndefinedVariable",
	ErrR003: "UndefinedField",
	ErrR004: "TypeError",
	ErrR005: "DivisionByZero",
	ErrR006: "UndefinedFunction",
	ErrR007: "UndefinedMethod",
	ErrG001: "UnanalyzedTree",
}

// Name returns the symbolic name of the code, e.g. "TypeMismatch".
func (c ErrorCode) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return string(c)
}

// DiagnosticError is a positioned, coded error produced by any stage.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func NewErrorf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *DiagnosticError) Error() string {
	prefix := ""
	if e.File != "" {
		prefix = e.File + ":"
	}
	if e.Token.Line > 0 {
		prefix += fmt.Sprintf("%d:%d:", e.Token.Line, e.Token.Column)
	}
	if prefix != "" {
		prefix += " "
	}
	return fmt.Sprintf("%s%s %s: %s", prefix, e.Code, e.Code.Name(), e.Message)
}

// Is lets errors.Is match on the code alone.
func (e *DiagnosticError) Is(target error) bool {
	t, ok := target.(*DiagnosticError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == "" && t.Token.Line == 0
}

// Code builds a bare sentinel for errors.Is comparisons.
func Code(code ErrorCode) *DiagnosticError {
	return &DiagnosticError{Code: code}
}
