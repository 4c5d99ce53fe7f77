// Package questions ingests heterogeneous question datasets and assembles
// them into a single canonical in-memory bank.
//
// Source files are hand-authored JSON and are not guaranteed to be a single
// well-formed document; the loader applies a cascade of recovery strategies
// (string repair, top-level value splitting, regex extraction) so that one
// bad file degrades to fewer questions rather than a failed ingestion.
package questions

import "fmt"

// Difficulty is the three-tier difficulty classification assigned at
// ingestion time and never recomputed.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Section is the top-level subject of a question.
type Section string

const (
	SectionReadingWriting Section = "reading-writing"
	SectionMath           Section = "math"
)

// Question is the canonical record shape all ingested data is converted to.
type Question struct {
	// ID is a process-local sequential integer assigned at assembly time.
	// It is dense, starts at 1, and is stable only within one cache
	// lifetime. Never persisted.
	ID int `json:"id"`

	// SourceID is the dataset-local identifier (e.g. "BND_003") and the
	// sole deduplication key across datasets.
	SourceID string `json:"sourceId"`

	Section    Section `json:"section"`
	SubSection string  `json:"subSection"`
	Topic      string  `json:"topic"`
	SubTopic   string  `json:"subTopic,omitempty"`

	// Passage is the contextual text preceding the question; may be empty.
	Passage string `json:"passage"`

	// QuestionPrompt is the interrogative/instructional text shown to the
	// user. QuestionText is the legacy concatenation of passage + prompt,
	// kept for older consumers; it is derivable and not a source of truth.
	QuestionPrompt string `json:"questionPrompt"`
	QuestionText   string `json:"questionText"`

	// Options maps a single-letter label (A-D) to option text. Empty for
	// grid-in questions.
	Options map[string]string `json:"options"`

	// CorrectAnswer is a letter key expected to be present in Options for
	// multiple-choice questions, or the literal answer for grid-ins.
	CorrectAnswer string `json:"correctAnswer"`

	Explanation string     `json:"explanation"`
	Difficulty  Difficulty `json:"difficulty"`

	// GridIn marks free-response questions, which have no options.
	GridIn bool `json:"gridIn,omitempty"`
}

// IsMultipleChoice reports whether the question carries options.
func (q *Question) IsMultipleChoice() bool {
	return !q.GridIn && len(q.Options) > 0
}

// LoadStage identifies how far down the recovery cascade a document went
// before it parsed (or failed).
type LoadStage string

const (
	StageDirect    LoadStage = "direct"
	StageRepaired  LoadStage = "repaired"
	StageSplit     LoadStage = "split"
	StageExtracted LoadStage = "extracted"
	StageFailed    LoadStage = "failed"
)

// LoadReport records per-dataset ingestion diagnostics so operators can
// detect silent data loss.
type LoadReport struct {
	Dataset    string    `json:"dataset"`
	Stage      LoadStage `json:"stage"`
	Questions  int       `json:"questions"`
	Duplicates int       `json:"duplicates"`
	Err        string    `json:"error,omitempty"`
}

func (r LoadReport) String() string {
	return fmt.Sprintf("%s: stage=%s questions=%d duplicates=%d", r.Dataset, r.Stage, r.Questions, r.Duplicates)
}

// rawQuestion is the uniform intermediate shape every per-dataset
// normalizer emits before assembly.
type rawQuestion struct {
	sourceID      string
	section       Section
	subSection    string
	topic         string
	subTopic      string
	passage       string
	prompt        string
	options       map[string]string
	correctAnswer string
	explanation   string
	difficulty    Difficulty
	gridIn        bool
}
