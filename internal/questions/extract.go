package questions

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Last-resort structural recovery for documents that defeat both string
// repair and top-level splitting (truncation, stray characters mid-stream).
// Question-shaped fragments are located by their id fields, sliced out,
// brace-rebalanced, and parsed; fragments that still refuse to parse get
// their fields captured individually by regex.

var (
	reTokenID = regexp.MustCompile(`"id"\s*:\s*"([A-Za-z]+_[0-9]+)"`)
	reIntID   = regexp.MustCompile(`\{\s*"id"\s*:\s*[0-9]+`)

	reFieldPassage     = regexp.MustCompile(`"passage"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	reFieldQuestion    = regexp.MustCompile(`"question"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	reFieldAnswer      = regexp.MustCompile(`"answer"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	reFieldExplanation = regexp.MustCompile(`"explanation"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	reFieldDifficulty  = regexp.MustCompile(`"difficulty"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	reFieldOptions     = regexp.MustCompile(`"options"\s*:\s*\[([^\]]*)\]`)
	reQuotedString     = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
	reFieldIntID       = regexp.MustCompile(`"id"\s*:\s*([0-9]+)`)
)

// ExtractQuestions recovers question fragments from unparseable text by
// locating string-token id fields (letters + underscore + digits) and
// slicing the buffer at their object boundaries.
func ExtractQuestions(text string) []SourceQuestion {
	matches := reTokenID.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	// Each fragment runs from its token's containing object start to the
	// next token's object start, or end of document for the last.
	starts := make([]int, len(matches))
	for i, m := range matches {
		starts[i] = objectStartBefore(text, m[0])
	}

	var recovered []SourceQuestion
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = starts[i+1]
		}
		span := text[starts[i]:end]
		id := text[m[2]:m[3]]

		if q, ok := parseFragment(span); ok {
			if q.SourceID() == "" {
				q.setSourceID(id)
			}
			recovered = append(recovered, q)
			continue
		}
		if q, ok := captureFields(span, id); ok {
			recovered = append(recovered, q)
		}
	}
	return recovered
}

// ExtractMathQuestions is the simpler variant for math documents that use
// plain integer id fields, splitting the buffer on each {"id": N boundary.
func ExtractMathQuestions(text string) []SourceQuestion {
	bounds := reIntID.FindAllStringIndex(text, -1)
	if len(bounds) == 0 {
		return nil
	}

	var recovered []SourceQuestion
	for i, b := range bounds {
		end := len(text)
		if i+1 < len(bounds) {
			end = bounds[i+1][0]
		}
		span := text[b[0]:end]

		if q, ok := parseFragment(span); ok {
			recovered = append(recovered, q)
			continue
		}

		id := ""
		if m := reFieldIntID.FindStringSubmatch(span); m != nil {
			id = m[1]
		}
		if q, ok := captureFields(span, id); ok {
			recovered = append(recovered, q)
		}
	}
	return recovered
}

// parseFragment rebalances braces on a sliced span and attempts a JSON
// parse of the result.
func parseFragment(span string) (SourceQuestion, bool) {
	span = strings.TrimSpace(span)
	span = strings.TrimRight(span, ",\n\r\t ")

	opens := strings.Count(span, "{")
	closes := strings.Count(span, "}")
	if opens > closes {
		span += strings.Repeat("}", opens-closes)
	}

	var q SourceQuestion
	if err := json.Unmarshal([]byte(span), &q); err != nil {
		return SourceQuestion{}, false
	}
	return q, true
}

// captureFields falls back to independent per-field regex captures. A span
// contributes a question only if at minimum id, question, and answer were
// recovered.
func captureFields(span, id string) (SourceQuestion, bool) {
	question := captureString(reFieldQuestion, span)
	answer := captureString(reFieldAnswer, span)
	if id == "" || question == "" || answer == "" {
		return SourceQuestion{}, false
	}

	q := SourceQuestion{
		Question:    question,
		Answer:      answer,
		Passage:     captureString(reFieldPassage, span),
		Explanation: captureString(reFieldExplanation, span),
		Difficulty:  captureString(reFieldDifficulty, span),
	}
	q.setSourceID(id)

	if m := reFieldOptions.FindStringSubmatch(span); m != nil {
		for _, opt := range reQuotedString.FindAllStringSubmatch(m[1], -1) {
			q.Options = append(q.Options, unescapeFragment(opt[1]))
		}
	}
	return q, true
}

func captureString(re *regexp.Regexp, span string) string {
	m := re.FindStringSubmatch(span)
	if m == nil {
		return ""
	}
	return unescapeFragment(m[1])
}

// unescapeFragment undoes the escape sequences regex captures see inside
// JSON string literals.
func unescapeFragment(s string) string {
	r := strings.NewReplacer(`\"`, `"`, `\n`, "\n", `\t`, "\t", `\\`, `\`)
	return r.Replace(s)
}

// objectStartBefore walks backwards from pos to the opening brace of the
// containing object.
func objectStartBefore(text string, pos int) int {
	for i := pos; i >= 0; i-- {
		if text[i] == '{' {
			return i
		}
	}
	return 0
}
