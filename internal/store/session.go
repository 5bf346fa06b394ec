// internal/store/session.go
//
// Session wraps one running game engine (memorama or quiz) together with its
// exit-confirmation controller and a watcher fan-out. The engine instance is
// owned exclusively by its session; Close cancels any pending engine timer
// so nothing stale fires after teardown.

package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Diego-Arreola/mandarin-player-go/internal/exitflow"
	"github.com/Diego-Arreola/mandarin-player-go/internal/memorama"
	"github.com/Diego-Arreola/mandarin-player-go/internal/quiz"
)

// Kind names which game a session is running.
type Kind string

const (
	KindMemorama Kind = "memorama"
	KindQuiz     Kind = "quiz"
)

// Session is one live game playthrough. Exactly one of Memorama/Quiz is set,
// according to Kind.
type Session struct {
	ID        string
	Kind      Kind
	Memorama  *memorama.Engine
	Quiz      *quiz.Engine
	Exit      *exitflow.Controller
	CreatedAt time.Time

	mu       sync.Mutex
	watchers map[chan struct{}]struct{}
}

// NewMemoramaSession wraps a memorama engine in a session and wires the
// engine's subscribe callback into the session's watcher fan-out.
func NewMemoramaSession(e *memorama.Engine, exitTarget string) *Session {
	s := newSession(KindMemorama, exitTarget)
	s.Memorama = e
	e.Subscribe(s.broadcast)
	return s
}

// NewQuizSession wraps a quiz engine in a session, wiring its subscribe
// callback the same way.
func NewQuizSession(e *quiz.Engine, exitTarget string) *Session {
	s := newSession(KindQuiz, exitTarget)
	s.Quiz = e
	e.Subscribe(s.broadcast)
	return s
}

func newSession(kind Kind, exitTarget string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Kind:      kind,
		Exit:      exitflow.New(exitTarget),
		CreatedAt: time.Now().UTC(),
		watchers:  make(map[chan struct{}]struct{}),
	}
}

// Watch registers a change listener. The returned channel receives a tick
// after every observable engine transition (coalesced while the listener is
// slow). The cancel func must be called when done.
func (s *Session) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()
	cancel := func() {
		s.mu.Lock()
		delete(s.watchers, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}

// broadcast wakes every watcher without blocking on slow ones.
func (s *Session) broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close tears down the session's engine, cancelling pending timers.
func (s *Session) Close() {
	switch s.Kind {
	case KindMemorama:
		s.Memorama.Close()
	case KindQuiz:
		s.Quiz.Close()
	}
}
