package questions

import "time"

// Per-question interaction state kept by the practice UI. The ingestion
// core never reads these; they are defined here so the canonical question
// model and its consumer-side state live in one place.

// CheckStatus records whether an answered question has been checked.
type CheckStatus string

const (
	CheckUnanswered CheckStatus = "unanswered"
	CheckCorrect    CheckStatus = "correct"
	CheckIncorrect  CheckStatus = "incorrect"
)

// QuestionState is the interaction state for one question.
type QuestionState struct {
	Selected    string      `json:"selected,omitempty"`
	Eliminated  []string    `json:"eliminated,omitempty"`
	Highlights  []Highlight `json:"highlights,omitempty"`
	CheckStatus CheckStatus `json:"checkStatus,omitempty"`
	GridInValue string      `json:"gridInValue,omitempty"`
}

// Highlight is one highlighted span within a passage.
type Highlight struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Color string `json:"color,omitempty"`
}

// StateSnapshot is the single persisted blob of practice-session state,
// stored and retrieved as-is by the state store.
type StateSnapshot struct {
	QuestionStates map[int]QuestionState `json:"questionStates"`
	CurrentIndex   int                   `json:"currentIndex"`
	Filter         Filter                `json:"filter"`
	Timestamp      time.Time             `json:"timestamp"`
}

// Check grades a state against its question and returns the updated
// status. Grid-in answers compare literally; multiple choice compares the
// selected letter.
func (s QuestionState) Check(q *Question) CheckStatus {
	if q.GridIn {
		if s.GridInValue == "" {
			return CheckUnanswered
		}
		if s.GridInValue == q.CorrectAnswer {
			return CheckCorrect
		}
		return CheckIncorrect
	}
	if s.Selected == "" {
		return CheckUnanswered
	}
	if s.Selected == q.CorrectAnswer {
		return CheckCorrect
	}
	return CheckIncorrect
}
