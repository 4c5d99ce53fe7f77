package questions

import "regexp"

// The repair pass targets a known, narrow class of authoring errors seen in
// hand-concatenated dataset files: missing separators between adjacent
// values, duplicated terminators, and trailing commas. It is a textual
// transform and can in principle corrupt string content that coincidentally
// matches these patterns; the data is static and pre-vetted, so that risk
// is accepted.
var (
	reMissingComma   = regexp.MustCompile(`\}\s*\{|\]\s*\[|\]\s*\{`)
	reDoubledCloseA  = regexp.MustCompile(`\}\s*\}\s*\]`)
	reDoubledCloseB  = regexp.MustCompile(`\}\s*\}\s*\{`)
	reTrailingCommas = regexp.MustCompile(`,\s*([\]\}])`)
)

// RepairJSON applies order-sensitive heuristic cleanup to malformed JSON
// text. It must not be assumed to repair arbitrary malformed input.
func RepairJSON(s string) string {
	// Doubled terminators first, so }}{ becomes },{ rather than },{{ via
	// the separator rule.
	s = reDoubledCloseA.ReplaceAllString(s, "}]")
	s = reDoubledCloseB.ReplaceAllString(s, "},{")
	s = reMissingComma.ReplaceAllStringFunc(s, func(m string) string {
		// Keep the two bracket characters, insert a comma between them.
		open := m[len(m)-1]
		return string(m[0]) + "," + string(open)
	})
	s = reTrailingCommas.ReplaceAllString(s, "$1")
	return s
}
