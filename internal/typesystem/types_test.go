package typesystem

import (
	"errors"
	"testing"

	"github.com/funvibe/plc/internal/diagnostics"
)

func TestRequireAssignable(t *testing.T) {
	tests := []struct {
		target *Type
		source *Type
		ok     bool
	}{
		{Integer, Integer, true},
		{Any, Boolean, true},
		{Any, Nil, true},
		{Comparable, Integer, true},
		{Comparable, Decimal, true},
		{Comparable, Character, true},
		{Comparable, String, true},
		{Comparable, Boolean, false},
		{Comparable, Nil, false},
		{Comparable, Any, false},
		{Integer, Decimal, false},
		{Decimal, Integer, false},
		{Integer, Comparable, false},
		{Integer, Any, false},
		{Nil, Integer, false},
		{IntegerIterable, Integer, false},
	}

	for _, tt := range tests {
		err := RequireAssignable(tt.target, tt.source)
		if tt.ok && err != nil {
			t.Errorf("RequireAssignable(%s, %s): unexpected error %v", tt.target, tt.source, err)
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("RequireAssignable(%s, %s): expected error", tt.target, tt.source)
				continue
			}
			if !errors.Is(err, diagnostics.Code(diagnostics.ErrA005)) {
				t.Errorf("RequireAssignable(%s, %s): expected A005, got %v", tt.target, tt.source, err)
			}
		}
	}
}

func TestGetType(t *testing.T) {
	for _, name := range []string{"Any", "Nil", "Comparable", "Boolean", "Integer", "Decimal", "Character", "String", "IntegerIterable"} {
		typ, err := GetType(name)
		if err != nil {
			t.Fatalf("GetType(%q): %v", name, err)
		}
		if typ.Name != name {
			t.Errorf("GetType(%q).Name = %q", name, typ.Name)
		}
	}

	void, err := GetType("Void")
	if err != nil {
		t.Fatalf("GetType(Void): %v", err)
	}
	if void != Nil {
		t.Errorf("Void should alias Nil, got %s", void)
	}

	if _, err := GetType("Float"); !errors.Is(err, diagnostics.Code(diagnostics.ErrA018)) {
		t.Errorf("expected A018 for unknown type, got %v", err)
	}
}

func TestStringSliceMethod(t *testing.T) {
	m, ok := String.Method("slice", 2)
	if !ok {
		t.Fatal("String has no slice/2")
	}
	if m.HostName != "substring" {
		t.Errorf("slice host name = %q, want substring", m.HostName)
	}
	if m.ReturnType != String {
		t.Errorf("slice returns %s, want String", m.ReturnType)
	}
	if _, ok := String.Method("slice", 1); ok {
		t.Error("slice/1 should not resolve")
	}
}

func TestRegistryRegister(t *testing.T) {
	point := NewType("Point", "Point")
	point.DefineField("x", "x", Integer)

	r := NewRegistry()
	r.Register(point)

	got, err := r.GetType("Point")
	if err != nil {
		t.Fatal(err)
	}
	if got != point {
		t.Fatalf("expected registered type back")
	}
	if f, ok := got.Field("x"); !ok || f.Type != Integer {
		t.Errorf("field x = %v, %v", f, ok)
	}
	if _, err := GetType("Point"); err == nil {
		t.Error("registering into one registry must not leak into the default one")
	}
}
