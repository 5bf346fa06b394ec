// internal/httpserver/watch.go
//
// Live snapshot stream over websocket.
// GET /sessions/{id}/watch upgrades the connection and pushes the session's
// current snapshot after every observable engine transition, including the
// timer-driven ones (mismatch flip-back, answer auto-advance). Transitions
// are coalesced while a client is slow; each push is the full snapshot, so
// a dropped tick loses nothing.

package httpserver

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Diego-Arreola/mandarin-player-go/internal/store"
)

const (
	watchWriteTimeout = 5 * time.Second
	watchPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		allowed := os.Getenv("CLIENT_ORIGIN")
		if allowed == "" {
			allowed = "http://localhost:5173"
		}
		return origin == allowed
	},
}

// handleWatch streams snapshots for one session until the client hangs up
// or the session is torn down.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("watch upgrade")
		return
	}
	defer conn.Close()

	ticks, cancel := sess.Watch()
	defer cancel()

	// Reader goroutine: we never expect client messages, but reading is
	// required to notice the close frame.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeSnapshot(conn, sess); err != nil {
		return
	}

	ping := time.NewTicker(watchPingInterval)
	defer ping.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticks:
			if err := writeSnapshot(conn, sess); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// writeSnapshot pushes the session's current snapshot as one JSON message.
func writeSnapshot(conn *websocket.Conn, sess *store.Session) error {
	var snap any
	switch sess.Kind {
	case store.KindMemorama:
		snap = sess.Memorama.Snapshot()
	case store.KindQuiz:
		snap = sess.Quiz.Snapshot()
	}
	_ = conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
	return conn.WriteJSON(snap)
}
