package quiz

import (
	"testing"
	"time"

	"github.com/Diego-Arreola/mandarin-player-go/internal/vocab"
)

const testRevealDelay = 20 * time.Millisecond

// revealWait sleeps long enough for a pending auto-advance to fire.
const revealWait = 10 * testRevealDelay

func testVocab(n int) []vocab.Item {
	items := make([]vocab.Item, n)
	for i := range items {
		id := string(rune('a' + i))
		items[i] = vocab.Item{ID: id, Character: "字" + id, Pronunciation: "p" + id, Translation: "t" + id}
	}
	return items
}

func newTestEngine(t *testing.T, n, rounds int) *Engine {
	t.Helper()
	e, err := New(testVocab(n), rounds, testRevealDelay)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

// currentTarget reads the target of the question at the current index.
func currentTarget(e *Engine) vocab.Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.questions[e.idx].Target
}

// wrongOptionID returns the id of a non-target option for the current
// question, or "" if the options list has no distractor.
func wrongOptionID(e *Engine) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	q := e.questions[e.idx]
	for _, opt := range q.Options {
		if opt.ID != q.Target.ID {
			return opt.ID
		}
	}
	return ""
}

func TestNewRejectsEmptyVocabulary(t *testing.T) {
	if _, err := New(nil, 3, testRevealDelay); err == nil {
		t.Fatal("expected setup failure for empty vocabulary")
	}
}

func TestQuestionGeneration(t *testing.T) {
	e := newTestEngine(t, 5, 3)

	if len(e.questions) != 3 {
		t.Fatalf("question count = %d, want 3", len(e.questions))
	}

	targets := make(map[string]struct{})
	for qi, q := range e.questions {
		if _, dup := targets[q.Target.ID]; dup {
			t.Fatalf("question %d repeats target %q", qi, q.Target.ID)
		}
		targets[q.Target.ID] = struct{}{}

		if len(q.Options) != 4 {
			t.Fatalf("question %d has %d options, want 4", qi, len(q.Options))
		}
		seen := make(map[string]struct{})
		targetCount := 0
		for _, opt := range q.Options {
			if _, dup := seen[opt.ID]; dup {
				t.Fatalf("question %d has duplicate option %q", qi, opt.ID)
			}
			seen[opt.ID] = struct{}{}
			if opt.ID == q.Target.ID {
				targetCount++
			}
		}
		if targetCount != 1 {
			t.Fatalf("question %d contains target %d times, want 1", qi, targetCount)
		}
	}
}

func TestRoundCountDefaultsAndCaps(t *testing.T) {
	cases := []struct {
		name      string
		vocab     int
		rounds    int
		wantTotal int
	}{
		{"default rounds", 8, 0, 5},
		{"requested rounds", 8, 3, 3},
		{"capped at vocab length", 3, 10, 3},
		{"default capped at vocab length", 4, 0, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, tc.vocab, tc.rounds)
			if got := e.Snapshot().Total; got != tc.wantTotal {
				t.Fatalf("total = %d, want %d", got, tc.wantTotal)
			}
		})
	}
}

func TestSmallVocabularyDegradesOptionCount(t *testing.T) {
	e := newTestEngine(t, 2, 2)
	for qi, q := range e.questions {
		if len(q.Options) != 2 {
			t.Fatalf("question %d has %d options, want 2 for a 2-item vocabulary", qi, len(q.Options))
		}
	}
}

func TestAnswerCorrect(t *testing.T) {
	e := newTestEngine(t, 5, 2)
	target := currentTarget(e)

	e.Answer(target.ID)

	snap := e.Snapshot()
	if snap.Score != 1 {
		t.Fatalf("score = %d, want 1", snap.Score)
	}
	if !snap.Revealing {
		t.Fatal("expected revealing state after answer")
	}

	results := e.Results()
	if len(results) != 1 {
		t.Fatalf("results len = %d, want 1", len(results))
	}
	r := results[0]
	if !r.Correct || r.Target.ID != target.ID || r.Selected == nil || r.Selected.ID != target.ID {
		t.Fatalf("unexpected result: %+v", r)
	}
}

func TestAnswerWrong(t *testing.T) {
	e := newTestEngine(t, 5, 2)
	wrong := wrongOptionID(e)

	e.Answer(wrong)

	snap := e.Snapshot()
	if snap.Score != 0 {
		t.Fatalf("score = %d, want 0 after wrong answer", snap.Score)
	}
	r := e.Results()[0]
	if r.Correct || r.Selected == nil || r.Selected.ID != wrong {
		t.Fatalf("unexpected result: %+v", r)
	}
}

func TestRevealMarks(t *testing.T) {
	e := newTestEngine(t, 5, 1)
	target := currentTarget(e)
	wrong := wrongOptionID(e)

	e.Answer(wrong)

	snap := e.Snapshot()
	for _, opt := range snap.Options {
		want := MarkDimmed
		switch opt.ID {
		case target.ID:
			want = MarkCorrect
		case wrong:
			want = MarkIncorrect
		}
		if opt.Mark != want {
			t.Fatalf("option %q mark = %q, want %q", opt.ID, opt.Mark, want)
		}
	}
}

func TestAnswerDuringRevealIsNoop(t *testing.T) {
	e := newTestEngine(t, 5, 2)
	target := currentTarget(e)

	e.Answer(target.ID)
	e.Answer(target.ID)
	e.Answer(wrongOptionID(e))

	if got := len(e.Results()); got != 1 {
		t.Fatalf("results len = %d, want 1", got)
	}
	if got := e.Snapshot().Score; got != 1 {
		t.Fatalf("score = %d, want 1", got)
	}
}

func TestUnknownOptionIsNoop(t *testing.T) {
	e := newTestEngine(t, 5, 2)
	e.Answer("not-an-option")
	if len(e.Results()) != 0 || e.Snapshot().Revealing {
		t.Fatal("unknown option mutated state")
	}
}

func TestAutoAdvance(t *testing.T) {
	e := newTestEngine(t, 5, 2)
	e.Answer(currentTarget(e).ID)

	if got := e.Snapshot().Index; got != 0 {
		t.Fatalf("index advanced before reveal delay: %d", got)
	}
	time.Sleep(revealWait)

	snap := e.Snapshot()
	if snap.Index != 1 {
		t.Fatalf("index = %d, want 1 after reveal delay", snap.Index)
	}
	if snap.Revealing || snap.Finished {
		t.Fatalf("unexpected flags after advance: %+v", snap)
	}
	if snap.Prompt == "" || len(snap.Options) == 0 {
		t.Fatal("next question missing from snapshot")
	}
}

func TestFinishAfterLastQuestion(t *testing.T) {
	e := newTestEngine(t, 5, 2)

	e.Answer(currentTarget(e).ID)
	time.Sleep(revealWait)
	e.Answer(currentTarget(e).ID)
	time.Sleep(revealWait)

	snap := e.Snapshot()
	if !snap.Finished {
		t.Fatal("quiz not finished after last answer")
	}
	if snap.Score != 2 {
		t.Fatalf("score = %d, want 2", snap.Score)
	}
	if got := len(e.Results()); got != 2 {
		t.Fatalf("results len = %d, want 2", got)
	}
	for i, r := range e.Results() {
		if !r.Correct {
			t.Fatalf("result %d not correct: %+v", i, r)
		}
	}

	// Further answers must not mutate results.
	e.Answer("a")
	e.Answer("b")
	if got := len(e.Results()); got != 2 {
		t.Fatalf("results grew after finish: %d", got)
	}
}

func TestCloseSuppressesPendingAdvance(t *testing.T) {
	e := newTestEngine(t, 5, 2)
	e.Answer(currentTarget(e).ID)

	e.Close()
	time.Sleep(revealWait)

	snap := e.Snapshot()
	if snap.Index != 0 || snap.Finished {
		t.Fatalf("stale advance fired after close: %+v", snap)
	}
}

func TestSubscribeFiresOnAnswerAndAdvance(t *testing.T) {
	e := newTestEngine(t, 5, 2)
	ticks := make(chan struct{}, 16)
	e.Subscribe(func() { ticks <- struct{}{} })

	e.Answer(currentTarget(e).ID)
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("no notification for answer")
	}

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("no notification for delayed advance")
	}
}
