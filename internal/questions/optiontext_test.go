package questions

import "testing"

func TestParseOptions(t *testing.T) {
	in := "Intro text.\nA) foo\nB) bar\nC) baz\nD) qux"
	got := ParseOptions(in)

	if got.QuestionText != "Intro text." {
		t.Errorf("QuestionText = %q, want %q", got.QuestionText, "Intro text.")
	}
	want := map[string]string{"A": "foo", "B": "bar", "C": "baz", "D": "qux"}
	if len(got.Options) != 4 {
		t.Fatalf("Options = %v, want 4 entries", got.Options)
	}
	for letter, text := range want {
		if got.Options[letter] != text {
			t.Errorf("Options[%s] = %q, want %q", letter, got.Options[letter], text)
		}
	}
}

func TestParseOptions_MultilineOptionText(t *testing.T) {
	in := "Prompt?\nA) first line\ncontinues here\nB) second\nC) third\nD) fourth"
	got := ParseOptions(in)

	if got.Options["A"] != "first line continues here" {
		t.Errorf("Options[A] = %q, embedded newline not collapsed", got.Options["A"])
	}
	if len(got.Options) != 4 {
		t.Errorf("Options = %v, want 4 entries", got.Options)
	}
}

func TestParseOptions_EmptyOptionBody(t *testing.T) {
	// A marker with no text on its line must yield an empty body, not
	// capture the following option's line as its own.
	in := "Prompt?\nA)\nB) bee\nC) cee\nD) dee"
	got := ParseOptions(in)

	if got.Options["A"] != "" {
		t.Errorf("Options[A] = %q, want empty body", got.Options["A"])
	}
	want := map[string]string{"B": "bee", "C": "cee", "D": "dee"}
	for letter, text := range want {
		if got.Options[letter] != text {
			t.Errorf("Options[%s] = %q, want %q", letter, got.Options[letter], text)
		}
	}
	if len(got.Options) != 4 {
		t.Errorf("Options = %v, want 4 entries", got.Options)
	}
}

func TestParseOptions_IndentedMarkers(t *testing.T) {
	in := "Choose one.\n  A) alpha\n  B) beta\n  C) gamma\n  D) delta"
	got := ParseOptions(in)

	if got.QuestionText != "Choose one." {
		t.Errorf("QuestionText = %q", got.QuestionText)
	}
	if got.Options["D"] != "delta" {
		t.Errorf("Options[D] = %q, want delta", got.Options["D"])
	}
}

func TestParseOptions_NoOptionRegion(t *testing.T) {
	got := ParseOptions("Just a prompt with no options at all.")
	if len(got.Options) != 0 {
		t.Errorf("Options = %v, want empty", got.Options)
	}
	if got.QuestionText != "Just a prompt with no options at all." {
		t.Errorf("QuestionText = %q", got.QuestionText)
	}
}

func TestSplitPrompt(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantPassage string
		wantPrompt  string
	}{
		{
			"which choice pattern",
			"The committee met on Tuesday. Which choice completes the text?",
			"The committee met on Tuesday.",
			"Which choice completes the text?",
		},
		{
			"based on pattern",
			"Glaciers retreat slowly. Based on the text, what can be concluded?",
			"Glaciers retreat slowly.",
			"Based on the text, what can be concluded?",
		},
		{
			"double newline fallback",
			"A long passage without a question-shaped ending.\n\nComplete the sentence below.",
			"A long passage without a question-shaped ending.",
			"Complete the sentence below.",
		},
		{
			"no match whole text is prompt",
			"Select the best revision.",
			"",
			"Select the best revision.",
		},
		{
			"empty input",
			"",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passage, prompt := SplitPrompt(tt.in)
			if passage != tt.wantPassage {
				t.Errorf("passage = %q, want %q", passage, tt.wantPassage)
			}
			if prompt != tt.wantPrompt {
				t.Errorf("prompt = %q, want %q", prompt, tt.wantPrompt)
			}
		})
	}
}
