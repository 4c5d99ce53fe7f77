package questions

import (
	"encoding/json"
	"testing"
)

func nestedDoc(t *testing.T, body string) *Document {
	t.Helper()
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &root); err != nil {
		t.Fatalf("test document invalid: %v", err)
	}
	return &Document{Root: root}
}

var boundariesDataset = Dataset{
	Name:       "data/boundaries.json",
	Shape:      ShapeNestedLegacy,
	Section:    SectionReadingWriting,
	SubSection: "Standard English Conventions",
	Topic:      "Boundaries",
	IDPrefix:   "BND",
	NestedPath: []string{"English Reading & Writing", "Standard English Conventions", "Boundaries"},
}

func TestDataset_NormalizeNested(t *testing.T) {
	doc := nestedDoc(t, `{
		"English Reading & Writing": {
			"Standard English Conventions": {
				"Boundaries": [{
					"id": "BND_001",
					"question": "The storm passed quickly. Which choice completes the text?\nA) however\nB) therefore\nC) meanwhile\nD) instead",
					"answer": "B",
					"explanation": "Cause and effect."
				}]
			}
		}
	}`)

	got := boundariesDataset.Normalize(doc)
	if len(got) != 1 {
		t.Fatalf("Normalize() = %d questions, want 1", len(got))
	}

	q := got[0]
	if q.sourceID != "BND_001" {
		t.Errorf("sourceID = %q", q.sourceID)
	}
	if q.passage != "The storm passed quickly." {
		t.Errorf("passage = %q", q.passage)
	}
	if q.prompt != "Which choice completes the text?" {
		t.Errorf("prompt = %q", q.prompt)
	}
	if len(q.options) != 4 || q.options["B"] != "therefore" {
		t.Errorf("options = %v", q.options)
	}
	if q.correctAnswer != "B" {
		t.Errorf("correctAnswer = %q", q.correctAnswer)
	}
	if q.topic != "Boundaries" || q.section != SectionReadingWriting {
		t.Errorf("classification = %v/%v", q.section, q.topic)
	}
}

func TestDataset_NormalizeNested_MissingPath(t *testing.T) {
	doc := nestedDoc(t, `{"Math": {"Algebra": {"Linear": []}}}`)
	if got := boundariesDataset.Normalize(doc); len(got) != 0 {
		t.Errorf("Normalize() = %d questions, want 0 for absent path", len(got))
	}
}

func TestDataset_NormalizeNested_GeneratedIDs(t *testing.T) {
	doc := nestedDoc(t, `{
		"English Reading & Writing": {
			"Standard English Conventions": {
				"Boundaries": [
					{"question": "First?\nA) a\nB) b", "answer": "A"},
					{"question": "Second?\nA) a\nB) b", "answer": "B"}
				]
			}
		}
	}`)

	got := boundariesDataset.Normalize(doc)
	if len(got) != 2 {
		t.Fatalf("Normalize() = %d, want 2", len(got))
	}
	if got[0].sourceID != "BND_001" || got[1].sourceID != "BND_002" {
		t.Errorf("generated ids = %q, %q", got[0].sourceID, got[1].sourceID)
	}
}

func TestDataset_NormalizeFlat(t *testing.T) {
	ds := Dataset{
		Name: "data/math/percentages.json", Shape: ShapeFlatCanonical,
		Section: SectionMath, SubSection: "Problem-Solving and Data Analysis",
		Topic: "Percentages", IDPrefix: "PCT",
	}
	doc := &Document{Questions: []SourceQuestion{
		{
			ID:         json.RawMessage(`7`),
			Difficulty: "hard",
			Content: &SourceContent{
				Passage:  "A store discounts an item by 20%.",
				Question: "What is the final price of a $50 item?",
				Options:  []string{"A) $30", "B) $40", "C) $45", "D) $48"},
			},
			Solution: &SourceSolution{Answer: "B", Explanation: "50 * 0.8 = 40."},
		},
		{
			ID:       json.RawMessage(`8`),
			Content:  &SourceContent{Question: "If 30% of x is 12, what is x?"},
			Solution: &SourceSolution{Answer: "40"},
		},
	}}

	got := ds.Normalize(doc)
	if len(got) != 2 {
		t.Fatalf("Normalize() = %d, want 2", len(got))
	}

	mc := got[0]
	if mc.sourceID != "PCT_7" {
		t.Errorf("sourceID = %q, want PCT_7 (integer id scoped by prefix)", mc.sourceID)
	}
	if mc.difficulty != DifficultyHard {
		t.Errorf("difficulty = %v, want hard from dataset field", mc.difficulty)
	}
	if mc.options["D"] != "$48" {
		t.Errorf("options = %v", mc.options)
	}
	if mc.gridIn {
		t.Error("multiple-choice question marked grid-in")
	}

	grid := got[1]
	if !grid.gridIn {
		t.Error("question without options should be grid-in")
	}
	if len(grid.options) != 0 {
		t.Errorf("grid-in options = %v, want empty", grid.options)
	}
	if grid.correctAnswer != "40" {
		t.Errorf("grid-in answer = %q", grid.correctAnswer)
	}
}

func TestDataset_NormalizeFlat_UncuratedDifficultyDefaults(t *testing.T) {
	ds := Dataset{Name: "x", Shape: ShapeFlatCanonical, Topic: "No Such Topic", IDPrefix: "X"}
	doc := &Document{Questions: []SourceQuestion{
		{ID: json.RawMessage(`"X_001"`), Content: &SourceContent{Question: "q", Options: []string{"A) a"}}, Solution: &SourceSolution{Answer: "A"}},
	}}

	got := ds.Normalize(doc)
	if len(got) != 1 || got[0].difficulty != DifficultyMedium {
		t.Errorf("Normalize() = %+v, want medium default difficulty", got)
	}
}

func TestJoinText(t *testing.T) {
	if got := joinText("passage", "prompt"); got != "passage\n\nprompt" {
		t.Errorf("joinText = %q", got)
	}
	if got := joinText("", "prompt"); got != "prompt" {
		t.Errorf("joinText empty passage = %q", got)
	}
}
