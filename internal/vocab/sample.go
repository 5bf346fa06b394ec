// internal/vocab/sample.go
//
// Round-capped random sampling of a vocabulary list, shared by both game
// engines.
//
// Rules:
//   - rounds > 0 and rounds < len(items): uniform Fisher-Yates shuffle of a
//     copy, first `rounds` elements returned.
//   - otherwise: the input is returned as-is (order preserved).
//
// The caller owns the empty-vocabulary fallback policy; Sample never
// fabricates content.

package vocab

import "math/rand"

// Sample returns a random subset of items capped at rounds.
// The input slice is never mutated.
func Sample(items []Item, rounds int) []Item {
	if rounds <= 0 || rounds >= len(items) {
		return items
	}
	out := make([]Item, len(items))
	copy(out, items)
	// rand.Shuffle is a uniform Fisher-Yates; never a comparator shuffle.
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out[:rounds]
}
