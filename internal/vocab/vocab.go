// internal/vocab/vocab.go
//
// Provides vocabulary management for the game engines.
//
// Responsibilities:
//   - Load a default topic's vocabulary from an environment-provided source or
//     fall back to the embedded "Greetings" set.
//   - Expose the working vocabulary (Default) and counts (Stats).
//   - Validate incoming vocabulary items (non-empty id, character, translation).
//
// Vocabulary item shape:
//   - "character":     the word being learned (e.g. 你好).
//   - "pronunciation": its reading (e.g. Nǐ hǎo).
//   - "translation":   its meaning in the player's language (e.g. Hola).
//
// Initialization behavior (Init):
//   1. If VOCAB_FILE is set, load items from that JSON file
//      (an array of {id, character, pronunciation, translation} objects).
//   2. Else if VOCAB_DB_FILE is set, open it as a SQLite topic library and load
//      the topic named by VOCAB_TOPIC (or the first topic if unset).
//   3. Otherwise fall back to the embedded default set from
//      `default_greetings.json`.
//
// Environment variables:
//   VOCAB_FILE=/path/to/topic.json
//   VOCAB_DB_FILE=/path/to/topics.db
//   VOCAB_TOPIC=Greetings
//
// Constraints:
//   • Items must carry a unique, non-empty id.
//   • Initialization is run once (sync.Once).

package vocab

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Item is one vocabulary entry, owned by the external topic collaborator.
// Engines treat items as immutable source data.
type Item struct {
	ID            string `json:"id"`
	Character     string `json:"character"`
	Pronunciation string `json:"pronunciation"`
	Translation   string `json:"translation"`
}

// --- embedded tiny default (ensures server runs even if no source configured) ---

//go:embed default_greetings.json
var embeddedGreetings []byte

var (
	initOnce   sync.Once
	defaults   []Item // working default vocabulary
	initialErr error
)

// Init loads the default vocabulary exactly once.
// Returns an error if the resulting list ends up empty or invalid.
func Init() error {
	initOnce.Do(func() {
		var items []Item
		var err error

		filePath := os.Getenv("VOCAB_FILE")
		dbPath := os.Getenv("VOCAB_DB_FILE")

		switch {
		// Case 1: JSON topic file provided
		case filePath != "":
			items, err = readTopicFile(filePath)
			if err != nil {
				initialErr = err
				return
			}

		// Case 2: SQLite topic library provided
		case dbPath != "":
			lib, err := OpenLibrary(dbPath)
			if err != nil {
				initialErr = err
				return
			}
			defer lib.Close()
			topic := os.Getenv("VOCAB_TOPIC")
			if topic == "" {
				names, err := lib.Topics()
				if err != nil || len(names) == 0 {
					initialErr = errors.New("vocab: topic library has no topics")
					return
				}
				topic = names[0]
			}
			items, err = lib.Topic(topic)
			if err != nil {
				initialErr = err
				return
			}

		// Case 3: fallback to embedded default
		default:
			items, err = parseItems(embeddedGreetings)
			if err != nil {
				initialErr = err
				return
			}
		}

		if err := Validate(items); err != nil {
			initialErr = err
			return
		}
		defaults = items
	})
	return initialErr
}

// Default returns the loaded default vocabulary.
// Callers use it as the fallback set when a game starts without a topic.
func Default() []Item {
	out := make([]Item, len(defaults))
	copy(out, defaults)
	return out
}

// Stats returns the count of loaded default vocabulary items.
func Stats() int {
	return len(defaults)
}

// Validate checks a vocabulary list for use by the engines:
// every item needs a non-empty id, character, and translation,
// and ids must be unique within the list.
func Validate(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" || it.Character == "" || it.Translation == "" {
			return fmt.Errorf("vocab: item %d is missing id, character, or translation", i)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("vocab: duplicate item id %q", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// readTopicFile loads a vocabulary list from a JSON file on disk.
func readTopicFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseItems(data)
}

// parseItems decodes a JSON array of vocabulary items.
func parseItems(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return items, nil
}
