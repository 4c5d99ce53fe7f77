package questions

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// DatasetShape tags the two accepted on-disk formats.
type DatasetShape int

const (
	// ShapeNestedLegacy is the {Section:{Category:{Skill:[...]}}} format
	// whose question field mixes prompt and inline A)-D) option text.
	ShapeNestedLegacy DatasetShape = iota
	// ShapeFlatCanonical is the {test_metadata, questions:[...]} format
	// with pre-split content/solution fields.
	ShapeFlatCanonical
)

// Dataset describes one source file: where it lives, which shape it uses,
// and the classification applied to every question it contributes.
type Dataset struct {
	Name       string
	Shape      DatasetShape
	Section    Section
	SubSection string
	Topic      string
	SubTopic   string

	// IDPrefix generates per-topic sequential sourceIDs (e.g. "BND_004")
	// for records that lack one.
	IDPrefix string

	// NestedPath selects the question array inside a nested-legacy file.
	NestedPath []string
}

var reFlatOptionLabel = regexp.MustCompile(`(?s)^\s*([A-D])\)\s*(.*)$`)

// Normalize maps a loaded document to the uniform intermediate question
// shape. A document missing the dataset's expected structure yields an
// empty list, never an error.
func (ds Dataset) Normalize(doc *Document) []rawQuestion {
	if doc == nil {
		return nil
	}
	switch ds.Shape {
	case ShapeNestedLegacy:
		return ds.normalizeNested(doc)
	default:
		return ds.normalizeFlat(doc)
	}
}

func (ds Dataset) normalizeNested(doc *Document) []rawQuestion {
	records := ds.nestedRecords(doc)

	out := make([]rawQuestion, 0, len(records))
	for i, rec := range records {
		blob := rec.Question
		if blob == "" && rec.Content != nil {
			blob = rec.Content.Question
		}
		if blob == "" {
			continue
		}

		parsed := ParseOptions(blob)
		passage, prompt := SplitPrompt(parsed.QuestionText)

		q := rawQuestion{
			sourceID:      ds.recordID(&rec, i),
			section:       ds.Section,
			subSection:    ds.SubSection,
			topic:         ds.Topic,
			subTopic:      ds.SubTopic,
			passage:       passage,
			prompt:        prompt,
			options:       parsed.Options,
			correctAnswer: normalizeAnswer(rec.Answer),
			explanation:   rec.Explanation,
			difficulty:    QuestionDifficulty(ds.Topic, ds.SubTopic, i),
		}
		out = append(out, q)
	}
	return out
}

// nestedRecords walks the dataset's nested path to its question array.
// A recovered document has no root to walk; its extracted fragments stand
// in for the array.
func (ds Dataset) nestedRecords(doc *Document) []SourceQuestion {
	if doc.Root == nil {
		return doc.Questions
	}

	node := doc.Root
	for i, key := range ds.NestedPath {
		raw, ok := node[key]
		if !ok {
			return nil
		}
		if i == len(ds.NestedPath)-1 {
			var records []SourceQuestion
			if err := json.Unmarshal(raw, &records); err != nil {
				return nil
			}
			return records
		}
		var next map[string]json.RawMessage
		if err := json.Unmarshal(raw, &next); err != nil {
			return nil
		}
		node = next
	}
	return nil
}

func (ds Dataset) normalizeFlat(doc *Document) []rawQuestion {
	out := make([]rawQuestion, 0, len(doc.Questions))
	for i, rec := range doc.Questions {
		passage := rec.Passage
		promptBlob := rec.Question
		rawOptions := rec.Options
		if rec.Content != nil {
			passage = rec.Content.Passage
			promptBlob = rec.Content.Question
			rawOptions = rec.Content.Options
		}
		if promptBlob == "" {
			continue
		}

		answer := rec.Answer
		explanation := rec.Explanation
		if rec.Solution != nil {
			answer = rec.Solution.Answer
			explanation = rec.Solution.Explanation
		}

		options := splitLabeledOptions(rawOptions)

		difficulty, ok := parseDifficulty(rec.Difficulty)
		if !ok {
			difficulty = QuestionDifficulty(ds.Topic, ds.SubTopic, i)
		}

		q := rawQuestion{
			sourceID:      ds.recordID(&rec, i),
			section:       ds.Section,
			subSection:    ds.SubSection,
			topic:         ds.Topic,
			subTopic:      ds.SubTopic,
			passage:       strings.TrimSpace(passage),
			prompt:        strings.TrimSpace(promptBlob),
			options:       options,
			correctAnswer: normalizeAnswer(answer),
			explanation:   explanation,
			difficulty:    difficulty,
			gridIn:        len(options) == 0,
		}
		out = append(out, q)
	}
	return out
}

// splitLabeledOptions separates "A) ..."-style strings into label and
// text. Unlabeled entries get sequential letters by position.
func splitLabeledOptions(raw []string) map[string]string {
	options := make(map[string]string, len(raw))
	for i, opt := range raw {
		if m := reFlatOptionLabel.FindStringSubmatch(opt); m != nil {
			options[m[1]] = collapseWhitespace(m[2])
			continue
		}
		if i < 4 {
			options[string(rune('A'+i))] = collapseWhitespace(opt)
		}
	}
	return options
}

// normalizeAnswer maps full-text answers ("B) Because ...") to their bare
// letter when the letter form is unambiguous.
func normalizeAnswer(answer string) string {
	answer = strings.TrimSpace(answer)
	if len(answer) >= 2 && answer[1] == ')' && answer[0] >= 'A' && answer[0] <= 'D' {
		return string(answer[0])
	}
	return answer
}

// recordID returns the record's own identifier, or a generated per-topic
// sequential one when the raw record lacks it.
func (ds Dataset) recordID(rec *SourceQuestion, ordinal int) string {
	if id := rec.SourceID(); id != "" {
		// Math files use bare integers; scope them with the topic prefix
		// so they cannot collide across datasets.
		if ds.Shape == ShapeFlatCanonical && !strings.Contains(id, "_") && ds.IDPrefix != "" {
			return fmt.Sprintf("%s_%s", ds.IDPrefix, id)
		}
		return id
	}
	return fmt.Sprintf("%s_%03d", ds.IDPrefix, ordinal+1)
}
