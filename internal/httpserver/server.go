// internal/httpserver/server.go
//
// HTTP server wiring for the Mandarin Player game-session backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/vocab".
//   - Memorama endpoints mounted under /memorama.
//   - Quiz endpoints mounted under /quiz.
//   - Shared session endpoints: exit confirmation flow, live state watch,
//     session teardown.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the web client works).
//   - Sessions are in-memory only; there is no persistence of results.
//   - Game delays (mismatch flip-back, answer reveal) are configurable via
//     environment for fast local iteration.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Diego-Arreola/mandarin-player-go/internal/store"
	"github.com/Diego-Arreola/mandarin-player-go/internal/vocab"
)

// Server bundles router, in-memory session store, and the optional topic
// library.
type Server struct {
	r       *chi.Mux
	store   store.Store
	library *vocab.Library // nil when no VOCAB_DB_FILE is configured

	flipDelay   time.Duration
	revealDelay time.Duration
	exitTarget  string
}

// New constructs a Server, installs middleware, and registers routes.
// library may be nil; games then run on inline or default vocabulary only.
func New(st store.Store, library *vocab.Library) *Server {
	s := &Server{
		r:           chi.NewRouter(),
		store:       st,
		library:     library,
		flipDelay:   envDuration("MEMORAMA_FLIP_MS", 0),
		revealDelay: envDuration("QUIZ_REVEAL_MS", 0),
		exitTarget:  getEnv("EXIT_REDIRECT", ""),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"mandarin-player-go","endpoints":["/health","POST /memorama/new","POST /quiz/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Debug: default vocabulary count and library topics
	s.r.Get("/debug/vocab", func(w http.ResponseWriter, r *http.Request) {
		out := map[string]any{"default": vocab.Stats()}
		if s.library != nil {
			if topics, err := s.library.Topics(); err == nil {
				out["topics"] = topics
			}
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	s.mountMemorama()
	s.mountQuiz()
	s.mountSessions()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --------------------------- shared sessions -------------------------------

// mountSessions registers the cross-game session routes: exit confirmation,
// live watch, teardown.
func (s *Server) mountSessions() {
	s.r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/watch", s.handleWatch)
		r.Post("/exit/request", s.handleExit(func(r *http.Request, sess *store.Session) any {
			sess.Exit.RequestExit()
			return map[string]bool{"confirming": sess.Exit.Confirming()}
		}))
		r.Post("/exit/cancel", s.handleExit(func(r *http.Request, sess *store.Session) any {
			sess.Exit.Cancel()
			return map[string]bool{"confirming": sess.Exit.Confirming()}
		}))
		r.Post("/exit/confirm", s.handleExit(func(r *http.Request, sess *store.Session) any {
			target, ok := sess.Exit.Confirm()
			if !ok {
				return map[string]bool{"confirming": false}
			}
			// Confirmed exits discard the session; results are never kept.
			if err := s.store.Delete(r.Context(), sess.ID); err != nil {
				log.Warn().Err(err).Str("sessionId", sess.ID).Msg("discard session")
			}
			return map[string]any{"confirming": false, "redirect": target}
		}))
		r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
			if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
				http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
		})
	})
}

// handleExit wraps the three exit-flow mutations with session lookup.
func (s *Server) handleExit(apply func(*http.Request, *store.Session) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(apply(r, sess))
	}
}

// ------------------------- vocabulary resolution ---------------------------

// newGameReq is the shared request body for starting either game.
// Vocabulary may be supplied inline by the lobby; otherwise a library topic
// name; otherwise the embedded default set is used.
type newGameReq struct {
	Vocabulary []vocab.Item `json:"vocabulary"`
	Topic      string       `json:"topic"`
	Rounds     int          `json:"rounds"`
}

// resolveVocabulary applies the fallback ladder: inline list, library topic,
// embedded default. The empty-vocabulary fallback policy lives here; the
// engines themselves refuse empty input.
func (s *Server) resolveVocabulary(req newGameReq) ([]vocab.Item, error) {
	switch {
	case len(req.Vocabulary) > 0:
		if err := vocab.Validate(req.Vocabulary); err != nil {
			return nil, err
		}
		return req.Vocabulary, nil
	case req.Topic != "":
		if s.library == nil {
			return nil, errors.New("no topic library configured")
		}
		return s.library.Topic(req.Topic)
	default:
		log.Debug().Msg("no vocabulary provided, using default topic")
		return vocab.Default(), nil
	}
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envDuration reads a millisecond count from the environment.
// Returns def for unset or unparseable values.
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
