package config

import "strings"

const SourceFileExt = ".plc"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".plc"}

// SettingsFileName is looked up next to the source file when no -config flag is given.
const SettingsFileName = "plc.yaml"

// Version is reported by `plc version`.
const Version = "0.4.0"

// Entry point
const (
	MainFuncName  = "main"
	MainFuncArity = 0
)

// Built-in function names
const (
	PrintFuncName = "print"
	RangeFuncName = "range"
)

// Built-in method names
const (
	SliceMethodName = "slice"
)

// Built-in type names
const (
	AnyTypeName             = "Any"
	NilTypeName             = "Nil"
	VoidTypeName            = "Void" // accepted alias of Nil in type positions
	ComparableTypeName      = "Comparable"
	BooleanTypeName         = "Boolean"
	IntegerTypeName         = "Integer"
	DecimalTypeName         = "Decimal"
	CharacterTypeName       = "Character"
	StringTypeName          = "String"
	IntegerIterableTypeName = "IntegerIterable"
)

// Host (generated code) names
const (
	HostClassName  = "Main"
	HostPrintName  = "System.out.println"
	HostRangeName  = "java.util.stream.IntStream.range"
	HostSliceName  = "substring"
	HostIndentUnit = 4
)

// Binary operators
const (
	OpAnd = "AND"
	OpOr  = "OR"
	OpEq  = "=="
	OpNe  = "!="
	OpLt  = "<"
	OpLe  = "<="
	OpGt  = ">"
	OpGe  = ">="
	OpAdd = "+"
	OpSub = "-"
	OpMul = "*"
	OpDiv = "/"
)

// DefaultDecimalScale is the number of fractional digits of a Decimal
// division result unless interpreter.decimal_scale says otherwise.
const DefaultDecimalScale = 1

// DefaultMaxDepth bounds nested evaluation to keep the host stack safe.
const DefaultMaxDepth = 10000

// NilText is how the unit value prints.
const NilText = "NIL"

// HasSourceExt reports whether path ends with a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension from name.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
