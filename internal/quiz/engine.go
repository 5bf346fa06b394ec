// internal/quiz/engine.go
//
// Core engine for a single multiple-choice quiz session.
// Responsibilities:
//   - Build the fixed question sequence from sampled vocabulary: unique
//     shuffled targets, three random distractors each, shuffled options.
//   - Apply answers: correctness, score, append-only result records.
//   - Auto-advance to the next question (or finish) after the reveal delay.
//
// Notes:
//   - Round count is min(requested or 5, vocabulary length).
//   - Fewer than four vocabulary items is degraded but never a crash: the
//     options list is simply shorter. An empty vocabulary is a setup failure
//     reported from New.
//   - Answering during the reveal window, or after the quiz has finished, is
//     a silent no-op.
//   - The reveal timer is cancellable; a generation counter suppresses stale
//     callbacks after Close.
package quiz

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/Diego-Arreola/mandarin-player-go/internal/vocab"
)

const (
	// DefaultRounds is the question count when the host requests none.
	DefaultRounds = 5
	// DefaultRevealDelay is how long the answer reveal stays on screen
	// before the quiz advances.
	DefaultRevealDelay = 2000 * time.Millisecond

	distractorsPerQuestion = 3
)

// Engine drives one quiz playthrough. Safe for concurrent use; the reveal
// timer callback takes the same lock as the mutators.
type Engine struct {
	mu        sync.Mutex
	questions []Question
	idx       int
	score     int
	results   []Result
	selected  *vocab.Item // option chosen for the current question
	revealing bool
	finished  bool
	delay     time.Duration
	gen       uint64
	timer     *time.Timer
	notify    func()
}

// New builds the question sequence and returns a ready engine.
// rounds <= 0 selects DefaultRounds; either way the count is capped at the
// vocabulary length so targets stay unique. An empty vocabulary is a setup
// failure the hosting layer must handle before play.
func New(items []vocab.Item, rounds int, revealDelay time.Duration) (*Engine, error) {
	if len(items) == 0 {
		return nil, errors.New("quiz: empty vocabulary")
	}
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if rounds > len(items) {
		rounds = len(items)
	}
	if revealDelay <= 0 {
		revealDelay = DefaultRevealDelay
	}
	return &Engine{
		questions: buildQuestions(items, rounds),
		delay:     revealDelay,
	}, nil
}

// buildQuestions picks `rounds` unique targets from a shuffled copy of the
// vocabulary, then pairs each with up to three random distractors.
func buildQuestions(items []vocab.Item, rounds int) []Question {
	targets := make([]vocab.Item, len(items))
	copy(targets, items)
	rand.Shuffle(len(targets), func(i, j int) {
		targets[i], targets[j] = targets[j], targets[i]
	})

	questions := make([]Question, 0, rounds)
	for _, target := range targets[:rounds] {
		// Distractors: random non-target items. With fewer than four items
		// in the vocabulary the options list is shorter than four.
		rest := make([]vocab.Item, 0, len(items)-1)
		for _, it := range items {
			if it.ID != target.ID {
				rest = append(rest, it)
			}
		}
		rand.Shuffle(len(rest), func(i, j int) {
			rest[i], rest[j] = rest[j], rest[i]
		})
		if len(rest) > distractorsPerQuestion {
			rest = rest[:distractorsPerQuestion]
		}

		options := append([]vocab.Item{target}, rest...)
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		questions = append(questions, Question{Target: target, Options: options})
	}
	return questions
}

// Subscribe registers a callback invoked after every observable transition,
// including timer-driven ones. Pass nil to unsubscribe.
func (e *Engine) Subscribe(fn func()) {
	e.mu.Lock()
	e.notify = fn
	e.mu.Unlock()
}

// Answer submits the option with the given id for the current question.
// No-op when the current question is already answered, the quiz is finished,
// or the id does not name one of the current options. Otherwise the result
// is recorded, the score updated, and after the reveal delay the quiz
// advances to the next question or finishes.
func (e *Engine) Answer(optionID string) {
	if e.answer(optionID) {
		e.emit()
	}
}

func (e *Engine) answer(optionID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished || e.revealing {
		return false
	}
	q := e.questions[e.idx]
	var chosen *vocab.Item
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			chosen = &q.Options[i]
			break
		}
	}
	if chosen == nil {
		return false
	}

	correct := chosen.ID == q.Target.ID
	if correct {
		e.score++
	}
	e.results = append(e.results, Result{Target: q.Target, Selected: chosen, Correct: correct})
	e.selected = chosen
	e.revealing = true

	gen := e.gen
	e.timer = time.AfterFunc(e.delay, func() { e.advance(gen) })
	return true
}

// advance is the delayed post-reveal transition. The generation check
// suppresses callbacks that outlive Close.
func (e *Engine) advance(gen uint64) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	if e.idx+1 >= len(e.questions) {
		e.finished = true
	} else {
		e.idx++
	}
	e.selected = nil
	e.revealing = false
	e.mu.Unlock()
	e.emit()
}

// Close tears the engine down, cancelling any pending advance so no stale
// transition fires into a dead session.
func (e *Engine) Close() {
	e.mu.Lock()
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.mu.Unlock()
}

// Snapshot returns a point-in-time view of the quiz. During the reveal
// window each option carries its mark (correct / incorrect / dimmed),
// computable from the target and the selected option alone.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Index:     e.idx,
		Total:     len(e.questions),
		Score:     e.score,
		Revealing: e.revealing,
		Finished:  e.finished,
	}
	if e.finished {
		return snap
	}
	q := e.questions[e.idx]
	snap.Prompt = q.Target.Translation
	snap.Options = make([]OptionView, len(q.Options))
	for i, opt := range q.Options {
		view := OptionView{Item: opt}
		if e.revealing {
			view.Mark = markFor(opt, q.Target, e.selected)
		}
		snap.Options[i] = view
	}
	return snap
}

// Results returns the per-question breakdown in question order.
func (e *Engine) Results() []Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Result(nil), e.results...)
}

// markFor classifies one option during the reveal window.
func markFor(opt, target vocab.Item, selected *vocab.Item) Mark {
	if opt.ID == target.ID {
		return MarkCorrect
	}
	if selected != nil && opt.ID == selected.ID {
		return MarkIncorrect
	}
	return MarkDimmed
}

// emit invokes the subscriber. Never called with e.mu held.
func (e *Engine) emit() {
	e.mu.Lock()
	fn := e.notify
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}
