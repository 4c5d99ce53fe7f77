package questions

import (
	"encoding/json"
	"testing"
)

func TestConvertToFlat(t *testing.T) {
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

	raw, err := ConvertToFlat(boundariesDataset, doc)
	if err != nil {
		t.Fatalf("ConvertToFlat() error = %v", err)
	}

	if !IsFlatCanonical(raw) {
		t.Fatal("converted output is not flat-canonical")
	}

	var out struct {
		TestMetadata struct {
			Topic string `json:"topic"`
		} `json:"test_metadata"`
		Questions []struct {
			ID         string `json:"id"`
			Difficulty string `json:"difficulty"`
			Content    struct {
				Passage  string   `json:"passage"`
				Question string   `json:"question"`
				Options  []string `json:"options"`
			} `json:"content"`
			Solution struct {
				Answer      string `json:"answer"`
				Explanation string `json:"explanation"`
			} `json:"solution"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding converted output: %v", err)
	}

	if out.TestMetadata.Topic != "Boundaries" {
		t.Errorf("metadata topic = %q", out.TestMetadata.Topic)
	}
	if len(out.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(out.Questions))
	}
	q := out.Questions[0]
	if q.ID != "BND_001" {
		t.Errorf("id = %q", q.ID)
	}
	if q.Content.Passage != "The storm passed quickly." {
		t.Errorf("passage = %q", q.Content.Passage)
	}
	if q.Content.Question != "Which choice completes the text?" {
		t.Errorf("question = %q", q.Content.Question)
	}
	want := []string{"A) however", "B) therefore", "C) meanwhile", "D) instead"}
	if len(q.Content.Options) != 4 {
		t.Fatalf("options = %v", q.Content.Options)
	}
	for i := range want {
		if q.Content.Options[i] != want[i] {
			t.Errorf("option[%d] = %q, want %q", i, q.Content.Options[i], want[i])
		}
	}
	if q.Solution.Answer != "B" || q.Solution.Explanation != "Cause and effect." {
		t.Errorf("solution = %+v", q.Solution)
	}
	if q.Difficulty == "" {
		t.Error("difficulty not assigned")
	}
}

func TestConvertToFlat_RoundTripsThroughFlatNormalizer(t *testing.T) {
	doc := nestedDoc(t, `{
		"English Reading & Writing": {
			"Standard English Conventions": {
				"Boundaries": [{
					"id": "BND_001",
					"question": "Pick one.\nA) a\nB) b\nC) c\nD) d",
					"answer": "A"
				}]
			}
		}
	}`)

	raw, err := ConvertToFlat(boundariesDataset, doc)
	if err != nil {
		t.Fatalf("ConvertToFlat() error = %v", err)
	}

	var converted Document
	root := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &root); err != nil {
		t.Fatalf("re-parsing converted output: %v", err)
	}
	var probe struct {
		Questions []SourceQuestion `json:"questions"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		t.Fatalf("decoding converted questions: %v", err)
	}
	converted.Root = root
	converted.Questions = probe.Questions

	flat := boundariesDataset
	flat.Shape = ShapeFlatCanonical
	got := flat.Normalize(&converted)
	if len(got) != 1 {
		t.Fatalf("flat Normalize() = %d questions, want 1", len(got))
	}
	if got[0].sourceID != "BND_001" || got[0].correctAnswer != "A" {
		t.Errorf("round trip = %q/%q", got[0].sourceID, got[0].correctAnswer)
	}
	if got[0].options["B"] != "b" {
		t.Errorf("options = %v", got[0].options)
	}
}

func TestConvertToFlat_RejectsFlatDataset(t *testing.T) {
	flat := boundariesDataset
	flat.Shape = ShapeFlatCanonical
	if _, err := ConvertToFlat(flat, &Document{}); err == nil {
		t.Error("ConvertToFlat() accepted a flat dataset")
	}
}

func TestIsFlatCanonical(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"flat", `{"test_metadata": {}, "questions": []}`, true},
		{"nested", `{"English Reading & Writing": {}}`, false},
		{"invalid", `{"questions": `, false},
		{"missing metadata", `{"questions": []}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFlatCanonical([]byte(tt.raw)); got != tt.want {
				t.Errorf("IsFlatCanonical() = %v, want %v", got, tt.want)
			}
		})
	}
}
