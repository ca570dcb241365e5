package formats

import "strings"

// Tokenize splits a line into its record type and field tokens.
// A trailing carriage return is dropped, and runs of ASCII whitespace
// separate tokens. Other Unicode spaces are part of a token. ok is false
// for lines that hold nothing but whitespace.
func Tokenize(line string) (record string, fields []string, ok bool) {
	line = strings.TrimSuffix(line, "\r")
	tokens := strings.FieldsFunc(line, isASCIISpace)
	if len(tokens) == 0 {
		return "", nil, false
	}
	return tokens[0], tokens[1:], true
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}

// requireFields fails with a ParseError when a record carries fewer fields
// than it needs.
func requireFields(record string, fields []string, n int) error {
	if len(fields) < n {
		return parseErrorf(record, "expected at least %d fields, got %d", n, len(fields))
	}
	return nil
}
