// internal/memorama/types.go
//
// Core type definitions for the memory-match ("Memorama") engine.
// Defines:
//   - Face: which side of a vocabulary item a card shows (term/meaning).
//   - Player: one of the two alternating local players.
//   - Card: a single deck card, two per vocabulary item.
//   - Match: a resolved pair and the player who found it.
//   - Snapshot: the pull-based read model exposed to the hosting layer.

package memorama

import "github.com/Diego-Arreola/mandarin-player-go/internal/vocab"

// Face identifies which side of a vocabulary item a card shows.
// Possible values:
//   - "term":    the character being learned (e.g. 你好).
//   - "meaning": its translation (e.g. Hola).
type Face string

const (
	FaceTerm    Face = "term"
	FaceMeaning Face = "meaning"
)

// Player is one of the two local players. Turn alternation is strict on a
// mismatch; the matching player keeps the turn.
type Player int

const (
	Player1 Player = 1
	Player2 Player = 2
)

// Other returns the opposing player.
func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Card is a single deck card. Exactly two cards share a PairKey: the term
// face and the meaning face of one vocabulary item. Cards are created once
// at engine construction and never mutated afterwards.
type Card struct {
	ID      string `json:"id"`      // unique per card instance
	Face    Face   `json:"face"`    // term or meaning
	Content string `json:"content"` // what the card shows when revealed
	PairKey string `json:"pairKey"` // source vocab item id shared by the pair
}

// Match records one resolved pair and its owner. The collection is
// append-only until a reset; scores are derived from it, never tracked
// separately.
type Match struct {
	PairKey string `json:"pairKey"`
	Owner   Player `json:"owner"`
}

// Scores holds both players' derived scores.
type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// CardView is a card as seen in a snapshot, with its resolution flags.
type CardView struct {
	Card
	Flipped bool `json:"flipped"` // currently in the selection set
	Matched bool `json:"matched"` // pair already resolved
}

// Snapshot is a point-in-time view of the whole game, safe to serialize.
type Snapshot struct {
	Cards         []CardView `json:"cards"`
	Selection     []int      `json:"selection"`
	Matches       []Match    `json:"matches"`
	Scores        Scores     `json:"scores"`
	CurrentPlayer Player     `json:"currentPlayer"`
	Checking      bool       `json:"checking"`
	GameOver      bool       `json:"gameOver"`
	ResultsShown  bool       `json:"resultsShown"`
	Winner        Player     `json:"winner,omitempty"` // zero until game over or on a tie
	Tie           bool       `json:"tie,omitempty"`
}

// PairResult resolves a match back to its vocabulary content for the
// end-of-game results table.
type PairResult struct {
	PairKey     string `json:"pairKey"`
	Character   string `json:"character"`
	Translation string `json:"translation"`
	Owner       Player `json:"owner"`
}

// NewDeck builds the 2n-card deck for a vocabulary list, unshuffled.
// Card ids are derived from the item id plus the face suffix.
func NewDeck(items []vocab.Item) []Card {
	cards := make([]Card, 0, 2*len(items))
	for _, it := range items {
		cards = append(cards,
			Card{ID: it.ID + "-term", Face: FaceTerm, Content: it.Character, PairKey: it.ID},
			Card{ID: it.ID + "-meaning", Face: FaceMeaning, Content: it.Translation, PairKey: it.ID},
		)
	}
	return cards
}
