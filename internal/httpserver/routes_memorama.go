// internal/httpserver/routes_memorama.go
//
// HTTP routes for the memory-match game.
// Exposes endpoints under /memorama:
//   - POST /memorama/new           → start a session from vocabulary + rounds
//   - GET  /memorama/{id}          → current snapshot
//   - POST /memorama/{id}/select   → flip the card at an index
//   - POST /memorama/{id}/again    → rematch (same deck, reshuffled)
//   - POST /memorama/{id}/results  → open the results view
//   - GET  /memorama/{id}/results  → per-player matched-pair breakdown
//
// The two players share one client: turn-taking is a single local
// alternating-turn simulation, not a networked protocol.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Diego-Arreola/mandarin-player-go/internal/memorama"
	"github.com/Diego-Arreola/mandarin-player-go/internal/store"
	"github.com/Diego-Arreola/mandarin-player-go/internal/vocab"
)

// mountMemorama registers all /memorama routes.
func (s *Server) mountMemorama() {
	s.r.Route("/memorama", func(r chi.Router) {
		r.Post("/new", s.handleMemoramaNew)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withMemorama(func(sess *store.Session, w http.ResponseWriter, r *http.Request) {
				writeMemoramaSnapshot(w, sess)
			}))
			r.Post("/select", s.withMemorama(s.handleMemoramaSelect))
			r.Post("/again", s.withMemorama(func(sess *store.Session, w http.ResponseWriter, r *http.Request) {
				sess.Memorama.PlayAgain()
				writeMemoramaSnapshot(w, sess)
			}))
			r.Post("/results", s.withMemorama(func(sess *store.Session, w http.ResponseWriter, r *http.Request) {
				sess.Memorama.ShowResults()
				writeMemoramaSnapshot(w, sess)
			}))
			r.Get("/results", s.withMemorama(s.handleMemoramaResults))
		})
	})
}

// newMemoramaRes is returned by POST /memorama/new.
type newMemoramaRes struct {
	SessionID string `json:"sessionId"`
	Cards     int    `json:"cards"`
	Pairs     int    `json:"pairs"`
}

// handleMemoramaNew resolves the vocabulary, samples it down to the
// requested rounds, and starts a new in-memory session.
func (s *Server) handleMemoramaNew(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	items, err := s.resolveVocabulary(req)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	items = vocab.Sample(items, req.Rounds)

	eng, err := memorama.New(items, s.flipDelay)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	sess := store.NewMemoramaSession(eng, s.exitTarget)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save memorama session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	log.Info().Str("sessionId", sess.ID).Int("pairs", len(items)).Msg("memorama session started")
	_ = json.NewEncoder(w).Encode(newMemoramaRes{
		SessionID: sess.ID,
		Cards:     2 * len(items),
		Pairs:     len(items),
	})
}

// selectReq is the body for POST /memorama/{id}/select.
type selectReq struct {
	Index int `json:"index"`
}

// handleMemoramaSelect flips one card. Out-of-range or otherwise invalid
// selections are no-ops inside the engine; the response is always the
// resulting snapshot.
func (s *Server) handleMemoramaSelect(sess *store.Session, w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess.Memorama.SelectCard(req.Index)
	writeMemoramaSnapshot(w, sess)
}

// memoramaResultsRes is returned by GET /memorama/{id}/results.
type memoramaResultsRes struct {
	Scores  memorama.Scores       `json:"scores"`
	Winner  memorama.Player       `json:"winner,omitempty"`
	Tie     bool                  `json:"tie,omitempty"`
	Pairs   []memorama.PairResult `json:"pairs"`
	Ongoing bool                  `json:"ongoing"` // true when the game is not over yet
}

// handleMemoramaResults returns the matched-pair breakdown per player.
func (s *Server) handleMemoramaResults(sess *store.Session, w http.ResponseWriter, r *http.Request) {
	snap := sess.Memorama.Snapshot()
	_ = json.NewEncoder(w).Encode(memoramaResultsRes{
		Scores:  snap.Scores,
		Winner:  snap.Winner,
		Tie:     snap.Tie,
		Pairs:   sess.Memorama.Results(),
		Ongoing: !snap.GameOver,
	})
}

// withMemorama looks the session up and checks it is a memorama game.
func (s *Server) withMemorama(h func(*store.Session, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil || sess.Kind != store.KindMemorama {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		h(sess, w, r)
	}
}

// writeMemoramaSnapshot serializes the current game state.
func writeMemoramaSnapshot(w http.ResponseWriter, sess *store.Session) {
	_ = json.NewEncoder(w).Encode(sess.Memorama.Snapshot())
}
