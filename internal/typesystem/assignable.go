package typesystem

import (
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/funvibe/plc/internal/token"
)

// RequireAssignable succeeds iff a value of type source may be stored where
// target is expected:
//   - target and source are the same type,
//   - target is Any,
//   - target is Comparable and source is Integer, Decimal, Character or String.
//
// The returned error carries no position; callers attach the offending token.
func RequireAssignable(target, source *Type) error {
	if target == source || target == Any {
		return nil
	}
	if target == Comparable {
		switch source {
		case Integer, Decimal, Character, String:
			return nil
		}
	}
	return diagnostics.NewErrorf(diagnostics.ErrA005, token.Token{},
		"type %s is not assignable to %s", source, target)
}

// IsComparable reports whether t may be used with relational operators.
func IsComparable(t *Type) bool {
	return RequireAssignable(Comparable, t) == nil
}
