// internal/httpserver/routes_quiz.go
//
// HTTP routes for the multiple-choice quiz game.
// Exposes endpoints under /quiz:
//   - POST /quiz/new           → start a session from vocabulary + rounds
//   - GET  /quiz/{id}          → current snapshot (question, options, marks)
//   - POST /quiz/{id}/answer   → submit an option for the current question
//   - GET  /quiz/{id}/results  → final per-question breakdown
//
// The engine auto-advances after its reveal delay; clients poll the
// snapshot or subscribe via /sessions/{id}/watch.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Diego-Arreola/mandarin-player-go/internal/quiz"
	"github.com/Diego-Arreola/mandarin-player-go/internal/store"
)

// mountQuiz registers all /quiz routes.
func (s *Server) mountQuiz() {
	s.r.Route("/quiz", func(r chi.Router) {
		r.Post("/new", s.handleQuizNew)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withQuiz(func(sess *store.Session, w http.ResponseWriter, r *http.Request) {
				writeQuizSnapshot(w, sess)
			}))
			r.Post("/answer", s.withQuiz(s.handleQuizAnswer))
			r.Get("/results", s.withQuiz(s.handleQuizResults))
		})
	})
}

// newQuizRes is returned by POST /quiz/new.
type newQuizRes struct {
	SessionID string `json:"sessionId"`
	Questions int    `json:"questions"`
}

// handleQuizNew resolves the vocabulary and starts a new quiz session.
// The engine caps the round count at the vocabulary length; distractors are
// drawn from the full resolved vocabulary.
func (s *Server) handleQuizNew(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	items, err := s.resolveVocabulary(req)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	eng, err := quiz.New(items, req.Rounds, s.revealDelay)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	sess := store.NewQuizSession(eng, s.exitTarget)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save quiz session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	snap := eng.Snapshot()
	log.Info().Str("sessionId", sess.ID).Int("questions", snap.Total).Msg("quiz session started")
	_ = json.NewEncoder(w).Encode(newQuizRes{SessionID: sess.ID, Questions: snap.Total})
}

// answerReq is the body for POST /quiz/{id}/answer.
type answerReq struct {
	OptionID string `json:"optionId"`
}

// handleQuizAnswer submits an option. Answering during the reveal window or
// after the quiz finished is a no-op inside the engine; the response is
// always the resulting snapshot.
func (s *Server) handleQuizAnswer(sess *store.Session, w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess.Quiz.Answer(req.OptionID)
	writeQuizSnapshot(w, sess)
}

// quizResultsRes is returned by GET /quiz/{id}/results.
type quizResultsRes struct {
	Score    int           `json:"score"`
	Total    int           `json:"total"`
	Finished bool          `json:"finished"`
	Results  []quiz.Result `json:"results"`
}

// handleQuizResults returns the per-question breakdown in question order.
func (s *Server) handleQuizResults(sess *store.Session, w http.ResponseWriter, r *http.Request) {
	snap := sess.Quiz.Snapshot()
	_ = json.NewEncoder(w).Encode(quizResultsRes{
		Score:    snap.Score,
		Total:    snap.Total,
		Finished: snap.Finished,
		Results:  sess.Quiz.Results(),
	})
}

// withQuiz looks the session up and checks it is a quiz game.
func (s *Server) withQuiz(h func(*store.Session, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil || sess.Kind != store.KindQuiz {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		h(sess, w, r)
	}
}

// writeQuizSnapshot serializes the current quiz state.
func writeQuizSnapshot(w http.ResponseWriter, sess *store.Session) {
	_ = json.NewEncoder(w).Encode(sess.Quiz.Snapshot())
}
