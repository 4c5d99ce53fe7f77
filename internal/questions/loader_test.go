package questions

import (
	"testing"
	"testing/fstest"
)

func TestLoader_DirectParse(t *testing.T) {
	// Well-formed input must parse directly; the recovery cascade is not
	// reached.
	fsys := fstest.MapFS{
		"data/flat.json": {Data: []byte(`{
			"test_metadata": {"title": "Form, Structure, and Sense"},
			"questions": [
				{"id": "FSS_001", "content": {"question": "Pick one", "options": ["A) x", "B) y"]}, "solution": {"answer": "A"}}
			]
		}`)},
	}

	doc, report := NewLoader(fsys).Load("data/flat.json")
	if doc == nil {
		t.Fatal("Load() returned nil document for valid input")
	}
	if report.Stage != StageDirect {
		t.Errorf("stage = %v, want direct", report.Stage)
	}
	if len(doc.Questions) != 1 || doc.Questions[0].SourceID() != "FSS_001" {
		t.Errorf("questions = %+v", doc.Questions)
	}
	if doc.Metadata["title"] != "Form, Structure, and Sense" {
		t.Errorf("metadata = %v", doc.Metadata)
	}
}

func TestLoader_NestedDirectParse(t *testing.T) {
	fsys := fstest.MapFS{
		"data/nested.json": {Data: []byte(`{
			"English Reading & Writing": {
				"Standard English Conventions": {
					"Boundaries": [{"id": "BND_001", "question": "Q?\nA) a\nB) b", "answer": "A", "explanation": "e"}]
				}
			}
		}`)},
	}

	doc, report := NewLoader(fsys).Load("data/nested.json")
	if doc == nil || report.Stage != StageDirect {
		t.Fatalf("Load() doc=%v stage=%v, want direct parse", doc, report.Stage)
	}
	if doc.Root == nil {
		t.Error("nested document should retain its root for path walking")
	}
}

func TestLoader_ConcatenatedDocuments(t *testing.T) {
	// Two well-formed objects with no separator: the splitter recovers
	// both questions arrays in first-then-second order.
	fsys := fstest.MapFS{
		"data/concat.json": {Data: []byte(
			`{"test_metadata": {"source": "first"}, "questions": [{"id": "TRN_001", "content": {"question": "one"}, "solution": {"answer": "A"}}]}` +
				`{"questions": [{"id": "TRN_002", "content": {"question": "two"}, "solution": {"answer": "B"}}]}`)},
	}

	doc, report := NewLoader(fsys).Load("data/concat.json")
	if doc == nil {
		t.Fatal("Load() failed to recover concatenated documents")
	}
	if report.Stage != StageSplit {
		t.Errorf("stage = %v, want split", report.Stage)
	}
	if len(doc.Questions) != 2 {
		t.Fatalf("recovered %d questions, want 2", len(doc.Questions))
	}
	if doc.Questions[0].SourceID() != "TRN_001" || doc.Questions[1].SourceID() != "TRN_002" {
		t.Errorf("question order = %q, %q", doc.Questions[0].SourceID(), doc.Questions[1].SourceID())
	}
	if doc.Metadata["source"] != "first" {
		t.Errorf("metadata = %v, want first document's test_metadata carried forward", doc.Metadata)
	}
}

func TestLoader_TruncatedDocumentExtraction(t *testing.T) {
	fsys := fstest.MapFS{
		"data/truncated.json": {Data: []byte(
			`{"questions": [{"id": "INF_001", "question": "First?", "answer": "A"}, {"id": "INF_002", "question": "Second?", "answer": "B"`)},
	}

	doc, report := NewLoader(fsys).Load("data/truncated.json")
	if doc == nil {
		t.Fatal("Load() failed to recover truncated document")
	}
	if report.Stage != StageExtracted {
		t.Errorf("stage = %v, want extracted", report.Stage)
	}
	if len(doc.Questions) != 2 {
		t.Errorf("recovered %d questions, want 2", len(doc.Questions))
	}
}

func TestLoader_MathIntegerIDExtraction(t *testing.T) {
	fsys := fstest.MapFS{
		"data/math/bad.json": {Data: []byte(
			`{"id": 1, "question": "2+2?", "options": ["A) 3", "B) 4"], "answer": "B"}@@@{"id": 2, "question": "x?", "answer": "1"`)},
	}

	doc, report := NewLoader(fsys).Load("data/math/bad.json")
	if doc == nil {
		t.Fatal("Load() failed to recover math document")
	}
	if report.Stage != StageExtracted {
		t.Errorf("stage = %v, want extracted", report.Stage)
	}
	if len(doc.Questions) != 2 {
		t.Errorf("recovered %d questions, want 2", len(doc.Questions))
	}
}

func TestLoader_TotalFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"data/garbage.json": {Data: []byte("\x00\x01binary garbage, no structure")},
	}

	doc, report := NewLoader(fsys).Load("data/garbage.json")
	if doc != nil {
		t.Errorf("Load() = %+v, want nil for unrecoverable input", doc)
	}
	if report.Stage != StageFailed {
		t.Errorf("stage = %v, want failed", report.Stage)
	}
	if report.Err == "" {
		t.Error("failed report should carry an error description")
	}
}

func TestLoader_MissingFile(t *testing.T) {
	doc, report := NewLoader(fstest.MapFS{}).Load("data/absent.json")
	if doc != nil || report.Stage != StageFailed {
		t.Errorf("Load(absent) doc=%v stage=%v, want nil/failed", doc, report.Stage)
	}
}
