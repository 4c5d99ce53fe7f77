package questions

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Document is one parsed dataset file in either accepted shape, or a
// partially-recovered equivalent assembled by the recovery cascade.
type Document struct {
	// Stage records how the document was obtained, for diagnostics.
	Stage LoadStage

	// Root holds the decoded top-level object fields, used by the
	// nested-legacy normalizer to walk section/category/skill paths.
	// Nil when the document was assembled by a recovery stage.
	Root map[string]json.RawMessage

	// Metadata carries the flat-canonical test_metadata object, if any.
	Metadata map[string]any

	// Questions holds the flat-canonical question list, decoded directly
	// or recovered by the cascade.
	Questions []SourceQuestion
}

// SourceQuestion is one question record as it appears on disk. It
// accommodates both accepted shapes: flat-canonical records carry Content
// and Solution, nested-legacy records (and regex-recovered fragments)
// carry the top-level Question/Answer fields.
type SourceQuestion struct {
	ID         json.RawMessage `json:"id,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`

	Content  *SourceContent  `json:"content,omitempty"`
	Solution *SourceSolution `json:"solution,omitempty"`

	Passage     string   `json:"passage,omitempty"`
	Question    string   `json:"question,omitempty"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// SourceContent is the flat-canonical content block.
type SourceContent struct {
	Passage  string   `json:"passage,omitempty"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

// SourceSolution is the flat-canonical solution block.
type SourceSolution struct {
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// SourceID returns the record's identifier as a string, whether the file
// stored it as a quoted token ("BND_003") or a bare integer (math files).
func (q *SourceQuestion) SourceID() string {
	raw := bytes.TrimSpace(q.ID)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		return ""
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return ""
}

// setSourceID stores a string identifier on a recovered fragment.
func (q *SourceQuestion) setSourceID(id string) {
	encoded, _ := json.Marshal(id)
	q.ID = encoded
}
