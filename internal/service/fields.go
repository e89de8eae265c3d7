package service

import "strings"

// FieldDelimiter separates the pieces of a reminder or expense entry.
const FieldDelimiter = "-"

// SplitFields splits text on delim and trims surrounding whitespace from each
// piece. There is no escaping: a field that itself contains the delimiter
// cannot be expressed.
func SplitFields(text, delim string) []string {
	parts := strings.Split(text, delim)
	fields := make([]string, len(parts))
	for i, p := range parts {
		fields[i] = strings.TrimSpace(p)
	}
	return fields
}
