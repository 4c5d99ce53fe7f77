package questions

import "testing"

func TestDifficultyTable_Precedence(t *testing.T) {
	// Curation error can put one position in several lists; hard beats
	// easy beats medium.
	table := difficultyTable{
		Easy:   []int{1, 5},
		Medium: []int{5, 6},
		Hard:   []int{5},
	}

	if got := table.tierFor(5); got != DifficultyHard {
		t.Errorf("tierFor(5) = %v, want hard", got)
	}
	if got := table.tierFor(1); got != DifficultyEasy {
		t.Errorf("tierFor(1) = %v, want easy", got)
	}
	if got := table.tierFor(6); got != DifficultyMedium {
		t.Errorf("tierFor(6) = %v, want medium", got)
	}
}

func TestDifficultyTable_Defaults(t *testing.T) {
	uncurated := difficultyTable{Easy: []int{1}, Medium: []int{2}}
	if got := uncurated.tierFor(99); got != DifficultyMedium {
		t.Errorf("tierFor(99) = %v, want medium default", got)
	}

	// Empty medium list with non-empty easy list defaults to easy.
	skewed := difficultyTable{Easy: []int{1, 2}}
	if got := skewed.tierFor(99); got != DifficultyEasy {
		t.Errorf("tierFor(99) with empty medium = %v, want easy", got)
	}
}

func TestQuestionDifficulty_UnknownTopic(t *testing.T) {
	if got := QuestionDifficulty("No Such Topic", "", 0); got != DifficultyMedium {
		t.Errorf("QuestionDifficulty(unknown) = %v, want medium", got)
	}
}

func TestQuestionDifficulty_SubTopicPreferred(t *testing.T) {
	// "Linear Equations in One Variable" is curated; its parent topic
	// "Linear Equations" is not. Position 1 is curated easy.
	got := QuestionDifficulty("Linear Equations", "Linear Equations in One Variable", 0)
	if got != DifficultyEasy {
		t.Errorf("QuestionDifficulty = %v, want easy", got)
	}
}

func TestQuestionDifficulty_CuratedTopic(t *testing.T) {
	// Boundaries position 10 (zero-based ordinal 9) is curated hard.
	if got := QuestionDifficulty("Boundaries", "", 9); got != DifficultyHard {
		t.Errorf("QuestionDifficulty(Boundaries, 9) = %v, want hard", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	if d, ok := parseDifficulty("hard"); !ok || d != DifficultyHard {
		t.Errorf("parseDifficulty(hard) = %v, %v", d, ok)
	}
	if _, ok := parseDifficulty("brutal"); ok {
		t.Error("parseDifficulty(brutal) should not parse")
	}
}
