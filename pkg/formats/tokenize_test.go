package formats

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		line   string
		record string
		fields []string
		ok     bool
	}{
		{"v 1 2 3", "v", []string{"1", "2", "3"}, true},
		{"v  1   2\t3\r", "v", []string{"1", "2", "3"}, true},
		{"f 1/1/1 2/2/2 3/3/3", "f", []string{"1/1/1", "2/2/2", "3/3/3"}, true},
		{"\tKd 0.5 0.5 0.5", "Kd", []string{"0.5", "0.5", "0.5"}, true},
		{"usemtl", "usemtl", []string{}, true},
		{"", "", nil, false},
		{"\r", "", nil, false},
		{"   \t ", "", nil, false},
		{"v\v1\f2 3", "v", []string{"1", "2", "3"}, true},
		{"usemtl red\u00a0paint", "usemtl", []string{"red\u00a0paint"}, true},
		{"newmtl a\u0085b c", "newmtl", []string{"a\u0085b", "c"}, true},
	}

	for _, tc := range tests {
		record, fields, ok := Tokenize(tc.line)
		if ok != tc.ok {
			t.Errorf("Tokenize(%q) ok = %v, expected %v", tc.line, ok, tc.ok)
			continue
		}
		if record != tc.record {
			t.Errorf("Tokenize(%q) record = %q, expected %q", tc.line, record, tc.record)
		}
		if len(fields) != len(tc.fields) || (len(fields) > 0 && !reflect.DeepEqual(fields, tc.fields)) {
			t.Errorf("Tokenize(%q) fields = %q, expected %q", tc.line, fields, tc.fields)
		}
	}
}

func TestRequireFields(t *testing.T) {
	if err := requireFields("v", []string{"1", "2", "3"}, 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := requireFields("v", []string{"1", "2"}, 3)
	if !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}
