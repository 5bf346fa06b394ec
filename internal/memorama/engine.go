// internal/memorama/engine.go
//
// Core engine for a single memory-match session.
// Responsibilities:
//   - Build and shuffle the paired-card deck from sampled vocabulary.
//   - Apply card selections: selection-set bounds, match detection,
//     per-player ownership, strict turn alternation on mismatch.
//   - Detect game over exactly when the last pair is matched.
//   - Support play-again resets (same deck content, new order).
//
// Notes:
//   - Mutators are synchronous; the only delayed transition is the mismatch
//     flip-back, which runs on a cancellable timer. A generation counter
//     suppresses stale timer callbacks after a reset or Close.
//   - Invalid selections (occupied selection set, duplicate index, already
//     matched pair, out-of-range index, mid-check, post-game) are silent
//     no-ops: they are reachable through rapid duplicate UI events.
//   - Scores are derived from match ownership on read, never counted
//     separately.
package memorama

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/Diego-Arreola/mandarin-player-go/internal/vocab"
)

// DefaultFlipDelay is how long a mismatched pair stays visible before
// flipping back and passing the turn.
const DefaultFlipDelay = 1000 * time.Millisecond

// Engine drives one memory-match playthrough for two alternating local
// players. Safe for concurrent use; timer callbacks take the same lock as
// the mutators.
type Engine struct {
	mu     sync.Mutex
	cards  []Card
	sel    []int   // selection set: at most two unresolved face-up indices
	found  []Match // append-only until reset
	turn   Player
	check  bool // mismatch flip-back pending
	over   bool
	shown  bool // results view opened
	delay  time.Duration
	gen    uint64 // bumped on reset/close to invalidate pending timers
	timer  *time.Timer
	notify func()
}

// New builds a shuffled deck from the sampled vocabulary and returns a
// ready-to-play engine. An empty vocabulary is a setup failure: the hosting
// layer is expected to fall back to a default set before calling New.
func New(items []vocab.Item, flipDelay time.Duration) (*Engine, error) {
	if len(items) == 0 {
		return nil, errors.New("memorama: empty vocabulary")
	}
	if flipDelay <= 0 {
		flipDelay = DefaultFlipDelay
	}
	e := &Engine{
		cards: NewDeck(items),
		turn:  Player1,
		delay: flipDelay,
	}
	shuffleCards(e.cards)
	return e, nil
}

// Subscribe registers a callback invoked after every observable transition,
// including timer-driven ones. Pass nil to unsubscribe.
func (e *Engine) Subscribe(fn func()) {
	e.mu.Lock()
	e.notify = fn
	e.mu.Unlock()
}

// SelectCard flips the card at index face-up.
// No-op when: a flip-back check is pending, the selection set is full, the
// index is already selected or resolved, the index is out of range, or the
// game is over.
//
// When the selection reaches two cards:
//   - equal pair keys: the match is recorded for the current player, the
//     selection clears immediately, and the player keeps the turn; if this
//     was the last pair the game is over.
//   - different pair keys: after the flip delay the selection clears and the
//     turn passes to the other player.
func (e *Engine) SelectCard(index int) {
	if e.selectCard(index) {
		e.emit()
	}
}

func (e *Engine) selectCard(index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.over || e.check || len(e.sel) == 2 {
		return false
	}
	if index < 0 || index >= len(e.cards) {
		return false
	}
	for _, s := range e.sel {
		if s == index {
			return false
		}
	}
	if e.isMatched(e.cards[index].PairKey) {
		return false
	}

	e.sel = append(e.sel, index)
	if len(e.sel) < 2 {
		return true
	}

	first, second := e.cards[e.sel[0]], e.cards[e.sel[1]]
	if first.PairKey == second.PairKey {
		e.found = append(e.found, Match{PairKey: first.PairKey, Owner: e.turn})
		e.sel = e.sel[:0]
		// Game over fires exactly when the last pair is matched.
		if len(e.found) == len(e.cards)/2 {
			e.over = true
		}
		return true
	}

	// Mismatch: leave both cards visible, then flip back and pass the turn.
	e.check = true
	gen := e.gen
	e.timer = time.AfterFunc(e.delay, func() { e.flipBack(gen) })
	return true
}

// flipBack is the delayed mismatch resolution. The generation check
// suppresses callbacks that outlive a reset or Close.
func (e *Engine) flipBack(gen uint64) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.sel = e.sel[:0]
	e.turn = e.turn.Other()
	e.check = false
	e.mu.Unlock()
	e.emit()
}

// PlayAgain resets the session for a rematch: matches and selection cleared,
// player 1 to move, same cards reshuffled in place. Any pending flip-back is
// cancelled.
func (e *Engine) PlayAgain() {
	e.mu.Lock()
	e.gen++
	e.stopTimer()
	e.sel = e.sel[:0]
	e.found = e.found[:0]
	e.turn = Player1
	e.check = false
	e.over = false
	e.shown = false
	shuffleCards(e.cards)
	e.mu.Unlock()
	e.emit()
}

// ShowResults opens the per-player results breakdown. Only meaningful once
// the game is over; otherwise a no-op.
func (e *Engine) ShowResults() {
	e.mu.Lock()
	if !e.over || e.shown {
		e.mu.Unlock()
		return
	}
	e.shown = true
	e.mu.Unlock()
	e.emit()
}

// Close tears the engine down, cancelling any pending flip-back so no stale
// transition fires into a dead session.
func (e *Engine) Close() {
	e.mu.Lock()
	e.gen++
	e.stopTimer()
	e.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the full game state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Cards:         make([]CardView, len(e.cards)),
		Selection:     append([]int(nil), e.sel...),
		Matches:       append([]Match(nil), e.found...),
		Scores:        e.scores(),
		CurrentPlayer: e.turn,
		Checking:      e.check,
		GameOver:      e.over,
		ResultsShown:  e.shown,
	}
	for i, c := range e.cards {
		snap.Cards[i] = CardView{
			Card:    c,
			Matched: e.isMatched(c.PairKey),
		}
	}
	for _, s := range e.sel {
		snap.Cards[s].Flipped = true
	}
	if e.over {
		switch {
		case snap.Scores.Player1 > snap.Scores.Player2:
			snap.Winner = Player1
		case snap.Scores.Player2 > snap.Scores.Player1:
			snap.Winner = Player2
		default:
			snap.Tie = true
		}
	}
	return snap
}

// Results resolves every match back to its vocabulary content, in match
// order. Available at any time; complete once the game is over.
func (e *Engine) Results() []PairResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	byKey := make(map[string]*PairResult, len(e.found))
	out := make([]PairResult, 0, len(e.found))
	for _, m := range e.found {
		out = append(out, PairResult{PairKey: m.PairKey, Owner: m.Owner})
		byKey[m.PairKey] = &out[len(out)-1]
	}
	for _, c := range e.cards {
		if r, ok := byKey[c.PairKey]; ok {
			switch c.Face {
			case FaceTerm:
				r.Character = c.Content
			case FaceMeaning:
				r.Translation = c.Content
			}
		}
	}
	return out
}

// scores derives both players' scores from match ownership.
// Caller must hold e.mu.
func (e *Engine) scores() Scores {
	var s Scores
	for _, m := range e.found {
		if m.Owner == Player1 {
			s.Player1++
		} else {
			s.Player2++
		}
	}
	return s
}

// isMatched reports whether a pair key is already resolved.
// Caller must hold e.mu.
func (e *Engine) isMatched(pairKey string) bool {
	for _, m := range e.found {
		if m.PairKey == pairKey {
			return true
		}
	}
	return false
}

// stopTimer cancels a pending flip-back timer, if any.
// Caller must hold e.mu.
func (e *Engine) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.check = false
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

// shuffleCards applies a uniform Fisher-Yates shuffle in place.
func shuffleCards(cards []Card) {
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
