package questions

import (
	"io/fs"
	"log/slog"
	"sync"
)

// Bank owns the canonical question collection: built once on first demand,
// memoized for the process lifetime, and explicitly invalidatable. The
// collection is immutable to consumers once built.
type Bank struct {
	loader  *Loader
	catalog []Dataset

	mu      sync.Mutex
	current *build
}

// build is one assembly pass. Concurrent callers arriving during an
// in-flight pass share this handle rather than triggering duplicate
// ingestion; done is closed when the pass completes.
type build struct {
	done      chan struct{}
	questions []Question
	reports   []LoadReport
}

// NewBank creates a bank over the given dataset filesystem using the
// default catalog.
func NewBank(fsys fs.FS) *Bank {
	return NewBankWithCatalog(fsys, DefaultCatalog)
}

// NewBankWithCatalog creates a bank with an explicit dataset list. The
// list order is the dedup precedence order.
func NewBankWithCatalog(fsys fs.FS, catalog []Dataset) *Bank {
	return &Bank{loader: NewLoader(fsys), catalog: catalog}
}

// Questions returns the memoized canonical collection, triggering a full
// build on first call. It always returns a non-nil slice: total ingestion
// failure yields an empty collection, never an error.
func (b *Bank) Questions() []Question {
	return b.get().questions
}

// Reports returns per-dataset ingestion diagnostics for the current
// collection, in catalog order.
func (b *Bank) Reports() []LoadReport {
	return b.get().reports
}

// Invalidate clears the memo so the next access re-ingests everything.
// An in-flight build is left to finish; its callers share its result.
func (b *Bank) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return
	}
	select {
	case <-b.current.done:
		b.current = nil
	default:
	}
}

func (b *Bank) get() *build {
	b.mu.Lock()
	cur := b.current
	if cur != nil {
		b.mu.Unlock()
		<-cur.done
		return cur
	}

	cur = &build{done: make(chan struct{})}
	b.current = cur
	b.mu.Unlock()

	b.run(cur)
	close(cur.done)
	return cur
}

// run performs one full ingestion pass. Dataset fetches fan out
// concurrently; arrival order is irrelevant because assembly walks the
// results strictly in catalog order afterwards.
func (b *Bank) run(cur *build) {
	docs := make([]*Document, len(b.catalog))
	reports := make([]LoadReport, len(b.catalog))

	var wg sync.WaitGroup
	for i, ds := range b.catalog {
		wg.Add(1)
		go func(i int, ds Dataset) {
			defer wg.Done()
			docs[i], reports[i] = b.loader.Load(ds.Name)
		}(i, ds)
	}
	wg.Wait()

	questions := make([]Question, 0, 256)
	seen := make(map[string]bool)
	nextID := 1

	for i, ds := range b.catalog {
		if docs[i] == nil {
			continue
		}

		if ds.Shape == ShapeFlatCanonical {
			for _, warning := range ValidateFlatDocument(docs[i]) {
				slog.Warn("dataset schema violation", "dataset", ds.Name, "detail", warning)
			}
		}

		normalized := ds.Normalize(docs[i])
		accepted := 0
		for _, raw := range normalized {
			if raw.sourceID == "" {
				continue
			}
			if seen[raw.sourceID] {
				// First-seen-wins: the datasets overlap by design and
				// the catalog order is the resolution policy.
				reports[i].Duplicates++
				continue
			}
			seen[raw.sourceID] = true

			q := Question{
				ID:             nextID,
				SourceID:       raw.sourceID,
				Section:        raw.section,
				SubSection:     raw.subSection,
				Topic:          raw.topic,
				SubTopic:       raw.subTopic,
				Passage:        raw.passage,
				QuestionPrompt: raw.prompt,
				QuestionText:   joinText(raw.passage, raw.prompt),
				Options:        raw.options,
				CorrectAnswer:  raw.correctAnswer,
				Explanation:    raw.explanation,
				Difficulty:     raw.difficulty,
				GridIn:         raw.gridIn,
			}
			warnSemanticInconsistency(ds.Name, &q)
			questions = append(questions, q)
			nextID++
			accepted++
		}
		reports[i].Questions = accepted
	}

	slog.Info("question bank assembled", "questions", len(questions), "datasets", len(b.catalog))
	cur.questions = questions
	cur.reports = reports
}

// warnSemanticInconsistency surfaces records whose answer letter is not an
// option key. The record is kept: the permissive source behavior is
// preserved, but the condition is observable.
func warnSemanticInconsistency(dataset string, q *Question) {
	if q.GridIn || len(q.Options) == 0 {
		return
	}
	if _, ok := q.Options[q.CorrectAnswer]; !ok {
		slog.Warn("correct answer not among options",
			"dataset", dataset, "sourceId", q.SourceID, "answer", q.CorrectAnswer)
	}
}

// joinText rebuilds the legacy combined passage + prompt field.
func joinText(passage, prompt string) string {
	if passage == "" {
		return prompt
	}
	if prompt == "" {
		return passage
	}
	return passage + "\n\n" + prompt
}
