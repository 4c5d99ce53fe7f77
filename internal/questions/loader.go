package questions

import (
	"encoding/json"
	"io/fs"
	"log/slog"
)

// Loader reads dataset files and parses them with a cascade of recovery
// strategies. It never returns an error for data-shape problems: a file
// that defeats every strategy yields a nil document and a failed report,
// and ingestion of other files proceeds unaffected.
type Loader struct {
	fsys fs.FS

	// strategies run in order after a direct parse fails, each one more
	// aggressive than the last. New strategies can be inserted without
	// touching existing ones.
	strategies []recoveryStrategy
}

type recoveryStrategy struct {
	name    string
	stage   LoadStage
	recover func(text string) *Document
}

// NewLoader creates a loader that reads datasets from fsys.
func NewLoader(fsys fs.FS) *Loader {
	l := &Loader{fsys: fsys}
	l.strategies = []recoveryStrategy{
		{name: "repair", stage: StageRepaired, recover: recoverByRepair},
		{name: "split", stage: StageSplit, recover: recoverBySplit},
		{name: "extract", stage: StageExtracted, recover: recoverByExtract},
		{name: "extract-math", stage: StageExtracted, recover: recoverByMathExtract},
	}
	return l
}

// Load fetches and parses one dataset file. The returned document is nil
// if and only if the report's stage is StageFailed.
func (l *Loader) Load(name string) (*Document, LoadReport) {
	report := LoadReport{Dataset: name}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		slog.Warn("dataset fetch failed", "dataset", name, "error", err)
		report.Stage = StageFailed
		report.Err = err.Error()
		return nil, report
	}

	text := string(data)

	if doc := parseDocument(text); doc != nil {
		doc.Stage = StageDirect
		report.Stage = StageDirect
		report.Questions = len(doc.Questions)
		return doc, report
	}

	for _, s := range l.strategies {
		doc := s.recover(text)
		if doc == nil {
			continue
		}
		doc.Stage = s.stage
		report.Stage = s.stage
		report.Questions = len(doc.Questions)
		slog.Warn("dataset recovered", "dataset", name, "strategy", s.name, "questions", len(doc.Questions))
		return doc, report
	}

	slog.Error("dataset unrecoverable", "dataset", name)
	report.Stage = StageFailed
	report.Err = "no recovery strategy produced questions"
	return nil, report
}

// parseDocument attempts a plain JSON parse of a complete document in
// either accepted shape. Returns nil on any parse failure.
func parseDocument(text string) *Document {
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		return nil
	}

	doc := &Document{Root: root}
	if raw, ok := root["test_metadata"]; ok {
		_ = json.Unmarshal(raw, &doc.Metadata)
	}
	if raw, ok := root["questions"]; ok {
		if err := json.Unmarshal(raw, &doc.Questions); err != nil {
			return nil
		}
	}
	return doc
}

func recoverByRepair(text string) *Document {
	return parseDocument(RepairJSON(text))
}

// recoverBySplit separates concatenated top-level values, parses each
// candidate independently (retrying repair per candidate), and merges all
// questions arrays found, carrying forward the first test_metadata seen.
func recoverBySplit(text string) *Document {
	candidates := SplitTopLevelValues(text)
	if len(candidates) < 2 {
		return nil
	}

	merged := &Document{}
	for _, candidate := range candidates {
		doc := parseDocument(candidate)
		if doc == nil {
			doc = parseDocument(RepairJSON(candidate))
		}
		if doc == nil {
			continue
		}
		merged.Questions = append(merged.Questions, doc.Questions...)
		if merged.Metadata == nil && doc.Metadata != nil {
			merged.Metadata = doc.Metadata
		}
	}

	if len(merged.Questions) == 0 {
		return nil
	}
	return merged
}

func recoverByExtract(text string) *Document {
	qs := ExtractQuestions(text)
	if len(qs) == 0 {
		return nil
	}
	return &Document{Questions: qs}
}

func recoverByMathExtract(text string) *Document {
	qs := ExtractMathQuestions(text)
	if len(qs) == 0 {
		return nil
	}
	return &Document{Questions: qs}
}
