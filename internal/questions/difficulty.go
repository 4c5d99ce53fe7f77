package questions

import (
	_ "embed"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"
)

// Curated difficulty tables map a question's 1-based position within its
// original per-topic source array to a tier. The lists are hand-authored
// and may overlap; a fixed precedence (hard, then easy, then medium) keeps
// the lookup total and deterministic instead of failing on overlap.

//go:embed difficulty.yaml
var difficultyYAML []byte

type difficultyTable struct {
	Easy   []int `yaml:"easy"`
	Medium []int `yaml:"medium"`
	Hard   []int `yaml:"hard"`
}

var (
	difficultyOnce   sync.Once
	difficultyTables map[string]difficultyTable
)

func loadDifficultyTables() map[string]difficultyTable {
	difficultyOnce.Do(func() {
		if err := yaml.Unmarshal(difficultyYAML, &difficultyTables); err != nil {
			// Embedded data; an unmarshal failure is a build defect, and
			// every topic degrades to the default tier.
			slog.Error("curated difficulty tables unreadable", "error", err)
			difficultyTables = map[string]difficultyTable{}
		}
	})
	return difficultyTables
}

// QuestionDifficulty assigns a tier from the curated table keyed by
// subtopic (preferred) or topic, given the zero-based ordinal of the
// question within its original per-topic source array. Topics with no
// curated data degrade to a deterministic default rather than an error.
func QuestionDifficulty(topic, subTopic string, ordinal int) Difficulty {
	tables := loadDifficultyTables()

	table, ok := tables[subTopic]
	if !ok || subTopic == "" {
		table, ok = tables[topic]
	}
	if !ok {
		return DifficultyMedium
	}

	return table.tierFor(ordinal + 1)
}

// tierFor resolves a 1-based position against the index lists. Hard wins
// over easy wins over medium when curation error puts a position in more
// than one list.
func (t difficultyTable) tierFor(position int) Difficulty {
	switch {
	case containsPosition(t.Hard, position):
		return DifficultyHard
	case containsPosition(t.Easy, position):
		return DifficultyEasy
	case containsPosition(t.Medium, position):
		return DifficultyMedium
	}

	if len(t.Medium) == 0 && len(t.Easy) > 0 {
		return DifficultyEasy
	}
	return DifficultyMedium
}

func containsPosition(positions []int, p int) bool {
	for _, v := range positions {
		if v == p {
			return true
		}
	}
	return false
}

// parseDifficulty maps a dataset's own difficulty string onto the
// three-tier enum, for flat-canonical files that carry one.
func parseDifficulty(s string) (Difficulty, bool) {
	switch s {
	case "easy", "Easy", "E":
		return DifficultyEasy, true
	case "medium", "Medium", "M":
		return DifficultyMedium, true
	case "hard", "Hard", "H":
		return DifficultyHard, true
	}
	return "", false
}
