package diagnostics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/funvibe/plc/internal/token"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		err  *DiagnosticError
		want string
	}{
		{NewError(ErrA005, token.Token{Line: 3, Column: 7}, "boom"), "3:7: A005 TypeMismatch: boom"},
		{&DiagnosticError{Code: ErrR005, Message: "division by zero", File: "a.plc", Token: token.Token{Line: 1, Column: 2}},
			"a.plc:1:2: R005 DivisionByZero: division by zero"},
		{&DiagnosticError{Code: ErrG001, Message: "x", File: "a.plc"}, "a.plc: G001 UnanalyzedTree: x"},
		{NewErrorf(ErrL001, token.Token{}, "invalid character %q", "\x01"), `L001 InvalidCharacter: invalid character "\x01"`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewError(ErrA017, token.Token{Line: 1, Column: 1}, "x is already declared"))
	if !errors.Is(err, Code(ErrA017)) {
		t.Error("wrapped diagnostic should match its code")
	}
	if errors.Is(err, Code(ErrA001)) {
		t.Error("different code must not match")
	}
	if errors.Is(err, NewError(ErrA017, token.Token{Line: 1, Column: 1}, "x is already declared")) {
		t.Error("only bare sentinels match")
	}
}

func TestNames(t *testing.T) {
	if ErrR004.Name() != "TypeError" {
		t.Errorf("R004 name = %s", ErrR004.Name())
	}
	if ErrorCode("X999").Name() != "X999" {
		t.Error("unknown codes name themselves")
	}
}
