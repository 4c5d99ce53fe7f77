package questions

import "strings"

// SplitTopLevelValues scans text character-by-character and returns each
// top-level JSON value as its own substring. String content is skipped
// (honoring backslash escapes) rather than bracket-counted, so fragments
// containing braces inside quoted strings are not truncated.
//
// This separates {...}{...} or [...][...] sequences that lack separators.
// If the whole input is one outer array whose inner content is itself a
// concatenated sequence, the scan is re-run on the unwrapped content.
func SplitTopLevelValues(text string) []string {
	values := scanTopLevel(text)

	if len(values) == 1 {
		v := strings.TrimSpace(values[0])
		if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
			inner := strings.TrimSpace(v[1 : len(v)-1])
			if strings.HasPrefix(inner, "{") || strings.HasPrefix(inner, "[") {
				if innerValues := scanTopLevel(inner); len(innerValues) > 1 {
					return innerValues
				}
			}
		}
	}

	return values
}

func scanTopLevel(text string) []string {
	var (
		values   []string
		depth    int
		start    = -1
		inString bool
		escaped  bool
	)

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			if depth == 0 {
				start = i
			}
			depth++
		case '}', ']':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					values = append(values, text[start:i+1])
					start = -1
				}
			}
		}
	}

	return values
}
