package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatDecimal(t *testing.T) {
	tests := map[string]string{
		"1.50":   "1.50",
		"10":     "10.0",
		"-0.125": "-0.125",
		"100.00": "100.00",
	}
	for in, want := range tests {
		if got := FormatDecimal(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatDecimal(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		q    byte
		want string
	}{
		{"abc", '"', `"abc"`},
		{"a\"b", '"', `"a\"b"`},
		{"it's", '"', `"it's"`},
		{"line\nbreak\t", '"', `"line\nbreak\t"`},
		{`back\slash`, '"', `"back\\slash"`},
		{"'", '\'', `'\''`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in, tt.q); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if got := QuoteCharacter('\n'); got != `'\n'` {
		t.Errorf("QuoteCharacter = %s", got)
	}
}

func TestExtractProgramName(t *testing.T) {
	if got := ExtractProgramName("dir/square.plc"); got != "square" {
		t.Errorf("got %q", got)
	}
	if got := GeneratedPath("dir/square.plc", "Main"); got != "dir/Main.java" {
		t.Errorf("got %q", got)
	}
}
