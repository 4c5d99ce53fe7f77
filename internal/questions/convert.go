package questions

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// flatDocument mirrors the canonical on-disk dataset shape.
type flatDocument struct {
	TestMetadata flatMetadata `json:"test_metadata"`
	Questions    []flatRecord `json:"questions"`
}

type flatMetadata struct {
	Topic       string `json:"topic"`
	SubTopic    string `json:"sub_topic,omitempty"`
	ConvertedAt string `json:"converted_at"`
}

type flatRecord struct {
	ID         string          `json:"id"`
	Difficulty string          `json:"difficulty"`
	Content    SourceContent   `json:"content"`
	Solution   *SourceSolution `json:"solution"`
}

// IsFlatCanonical reports whether raw already carries the canonical
// shape, so a conversion pass can skip files it has already produced.
func IsFlatCanonical(raw []byte) bool {
	var probe struct {
		TestMetadata json.RawMessage `json:"test_metadata"`
		Questions    json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.TestMetadata != nil && probe.Questions != nil
}

// ConvertToFlat rewrites a nested-legacy document as a flat-canonical
// one, running the same normalization the bank applies: option extraction
// from comingled text, prompt/passage split, and curated difficulty
// assignment.
func ConvertToFlat(ds Dataset, doc *Document) ([]byte, error) {
	if ds.Shape != ShapeNestedLegacy {
		return nil, fmt.Errorf("dataset %s is not nested-legacy", ds.Name)
	}

	records := ds.Normalize(doc)
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s yielded no questions", ds.Name)
	}

	out := flatDocument{
		TestMetadata: flatMetadata{
			Topic:       ds.Topic,
			SubTopic:    ds.SubTopic,
			ConvertedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Questions: make([]flatRecord, 0, len(records)),
	}
	for i := range records {
		rec := &records[i]
		out.Questions = append(out.Questions, flatRecord{
			ID:         rec.sourceID,
			Difficulty: string(rec.difficulty),
			Content: SourceContent{
				Passage:  rec.passage,
				Question: rec.prompt,
				Options:  labeledOptions(rec.options),
			},
			Solution: &SourceSolution{
				Answer:      rec.correctAnswer,
				Explanation: rec.explanation,
			},
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

// labeledOptions rebuilds the "A) text" list form from an option map, in
// letter order.
func labeledOptions(options map[string]string) []string {
	if len(options) == 0 {
		return nil
	}
	letters := make([]string, 0, len(options))
	for letter := range options {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	out := make([]string, 0, len(letters))
	for _, letter := range letters {
		out = append(out, letter+") "+options[letter])
	}
	return out
}
