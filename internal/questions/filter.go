package questions

// Filter selects questions by exact match on classification fields.
// Empty fields mean "don't filter on this".
type Filter struct {
	Section    Section `json:"section,omitempty"`
	SubSection string  `json:"subSection,omitempty"`
	Topic      string  `json:"topic,omitempty"`
	SubTopic   string  `json:"subTopic,omitempty"`
}

// Matches reports whether q satisfies every set field of the filter.
func (f Filter) Matches(q *Question) bool {
	if f.Section != "" && q.Section != f.Section {
		return false
	}
	if f.SubSection != "" && q.SubSection != f.SubSection {
		return false
	}
	if f.Topic != "" && q.Topic != f.Topic {
		return false
	}
	if f.SubTopic != "" && q.SubTopic != f.SubTopic {
		return false
	}
	return true
}

// Apply returns the questions matching the filter. The result is always
// non-nil so an empty match renders as an empty list, not null.
func (f Filter) Apply(questions []Question) []Question {
	matched := make([]Question, 0, len(questions))
	for i := range questions {
		if f.Matches(&questions[i]) {
			matched = append(matched, questions[i])
		}
	}
	return matched
}

// TopicCounts maps each subtopic (or topic, for topics with no further
// subdivision) to its question count.
func TopicCounts(questions []Question) map[string]int {
	counts := make(map[string]int)
	for i := range questions {
		key := questions[i].SubTopic
		if key == "" {
			key = questions[i].Topic
		}
		counts[key]++
	}
	return counts
}
