package bowling

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseTokens turns text fields into engine tokens. Integers become ints and
// x/X becomes StrikeMarker; anything else is passed through unchanged so
// NewScoreCard reports it as the offending token.
func ParseTokens(fields []string) []any {
	out := make([]any, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if strings.EqualFold(field, StrikeMarker) {
			out = append(out, StrikeMarker)
			continue
		}
		if n, err := strconv.Atoi(field); err == nil {
			out = append(out, n)
			continue
		}
		out = append(out, field)
	}
	return out
}

// SplitTokens splits s on commas and whitespace and parses the fields.
func SplitTokens(s string) []any {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	return ParseTokens(fields)
}
