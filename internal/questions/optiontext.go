package questions

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Nested-legacy files store the passage, prompt, and A)–D) option lines in
// one text blob. These parsers split that blob into structured fields.
// Both are best-effort heuristics over hand-authored data: a passage that
// itself contains a line starting with "A)" will be mis-split, a known
// ambiguity of the source format.

var (
	// First "A)" anchored at line start (or buffer start), optionally
	// preceded by whitespace.
	reOptionRegion = regexp.MustCompile(`(?m)(?:^|\n)\s*A\)`)

	// Greedy letter) text spans, running up to the next letter marker or
	// end of string, across newlines. Whitespace after the marker must
	// stay on the same line: eating the newline there would hide the
	// terminator of an empty-bodied option and capture the next option
	// line as its text.
	reOptionSpan = regexp.MustCompile(`(?s)([A-D])\)[ \t]*(.*?)(?:\n\s*[A-D]\)|$)`)

	// Line-by-line fallback for letters the greedy match missed.
	reOptionLine = regexp.MustCompile(`^\s*([A-D])\)\s*(.+)$`)

	reCollapseWS = regexp.MustCompile(`\s+`)
)

// ParsedOptions is the result of splitting a combined question blob.
type ParsedOptions struct {
	// QuestionText is everything before the option region: the combined
	// passage + prompt text.
	QuestionText string
	// Options maps letter labels A-D to option text.
	Options map[string]string
}

// ParseOptions extracts multiple-choice options and the bare question text
// from a single combined blob.
func ParseOptions(text string) ParsedOptions {
	text = norm.NFC.String(text)

	loc := reOptionRegion.FindStringIndex(text)
	if loc == nil {
		return ParsedOptions{QuestionText: strings.TrimSpace(text), Options: map[string]string{}}
	}

	questionText := strings.TrimSpace(text[:loc[0]])
	region := text[loc[0]:]

	options := make(map[string]string, 4)
	scanGreedy(region, options)
	if len(options) < 4 {
		scanLines(region, options)
	}
	return ParsedOptions{QuestionText: questionText, Options: options}
}

func scanGreedy(region string, options map[string]string) {
	// The greedy regex consumes the next letter marker as its terminator,
	// so matches overlap; re-scan from each letter position instead of
	// using FindAllStringSubmatch.
	for start := 0; start < len(region); {
		m := reOptionSpan.FindStringSubmatchIndex(region[start:])
		if m == nil {
			return
		}
		letter := region[start+m[2] : start+m[3]]
		body := region[start+m[4] : start+m[5]]
		if _, seen := options[letter]; !seen {
			options[letter] = collapseWhitespace(body)
		}
		// Resume at the terminator so the next letter marker is found.
		next := start + m[5]
		if next <= start {
			return
		}
		start = next
	}
}

func scanLines(region string, options map[string]string) {
	for _, line := range strings.Split(region, "\n") {
		m := reOptionLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if _, seen := options[m[1]]; !seen {
			options[m[1]] = collapseWhitespace(m[2])
		}
	}
}

// collapseWhitespace folds embedded newlines and runs of spaces within an
// option's text to single spaces.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(reCollapseWS.ReplaceAllString(s, " "))
}

// Ordered question-shaped patterns for isolating the trailing prompt from
// combined passage + prompt text. The first match wins.
var promptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)Which (?:choice|of the following)[^?]*\?\s*$`),
	regexp.MustCompile(`(?s)What [^?]*\?\s*$`),
	regexp.MustCompile(`(?s)Based on [^?]*\?\s*$`),
	regexp.MustCompile(`(?s)According to [^?]*\?\s*$`),
	regexp.MustCompile(`(?s)As used in [^?]*\?\s*$`),
	regexp.MustCompile(`(?s)The author [^?]*\?\s*$`),
}

// SplitPrompt separates combined passage + prompt text into its parts.
// The nested-legacy shape has no explicit separator, so the trailing
// interrogative clause is matched against an ordered pattern list, with a
// last-double-newline fallback. If nothing matches, the whole text is the
// prompt and the passage is empty.
func SplitPrompt(text string) (passage, prompt string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	for _, re := range promptPatterns {
		if loc := re.FindStringIndex(text); loc != nil {
			return strings.TrimSpace(text[:loc[0]]), strings.TrimSpace(text[loc[0]:])
		}
	}

	if i := strings.LastIndex(text, "\n\n"); i >= 0 {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+2:])
	}

	return "", text
}
