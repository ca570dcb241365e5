package formats

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		tok      string
		expected float32
	}{
		{"0", 0},
		{"1.5", 1.5},
		{"-2.25", -2.25},
		{"1e3", 1000},
		{"+.5", 0.5},
	}

	for _, tc := range tests {
		got, err := ParseFloat(tc.tok)
		if err != nil {
			t.Errorf("ParseFloat(%q) failed: %v", tc.tok, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseFloat(%q) = %v, expected %v", tc.tok, got, tc.expected)
		}
	}
}

func TestParseFloat_Invalid(t *testing.T) {
	tests := []struct {
		tok    string
		reason string
	}{
		{"abc", "not a float"},
		{"1.0x", "not a float"},
		{"", "not a float"},
		{"1e60", "out of range"},
		{"nan", "not a finite float"},
		{"NaN", "not a finite float"},
		{"inf", "not a finite float"},
		{"-Infinity", "not a finite float"},
	}

	for _, tc := range tests {
		_, err := ParseFloat(tc.tok)
		if !errors.Is(err, ErrParse) {
			t.Errorf("ParseFloat(%q): expected ErrParse, got %v", tc.tok, err)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("ParseFloat(%q): expected *ParseError, got %T", tc.tok, err)
		}
		if pe.Token != tc.tok {
			t.Errorf("ParseError.Token = %q, expected %q", pe.Token, tc.tok)
		}
		if !strings.Contains(pe.Reason, tc.reason) {
			t.Errorf("ParseError.Reason = %q, expected it to mention %q", pe.Reason, tc.reason)
		}
	}
}

func TestParseInt(t *testing.T) {
	got, err := ParseInt("42")
	if err != nil || got != 42 {
		t.Errorf("ParseInt(\"42\") = %d, %v", got, err)
	}

	for _, tok := range []string{"4.2", "x", "", "99999999999999999999999"} {
		if _, err := ParseInt(tok); !errors.Is(err, ErrParse) {
			t.Errorf("ParseInt(%q): expected ErrParse, got %v", tok, err)
		}
	}

	_, err = ParseInt("99999999999999999999999")
	var pe *ParseError
	if errors.As(err, &pe) && !strings.Contains(pe.Reason, "out of range") {
		t.Errorf("expected out of range reason, got %q", pe.Reason)
	}
}
