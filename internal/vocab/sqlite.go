// internal/vocab/sqlite.go
//
// Read-only SQLite access to an exported topic library.
// Responsibilities:
//   - Opening the library file with safe defaults (read-only, busy timeout).
//   - Listing available topics and loading one topic's vocabulary rows.
//
// Expected schema (produced by the external topic backend; never written here):
//   topics(id TEXT PRIMARY KEY, name TEXT UNIQUE)
//   vocabulary(id TEXT PRIMARY KEY, topic_id TEXT REFERENCES topics(id),
//              character TEXT, pronunciation TEXT, translation TEXT)

package vocab

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Library is a handle on a read-only SQLite topic library.
type Library struct {
	db *sql.DB
}

// OpenLibrary opens an existing topic library file.
// The connection is opened in read-only mode; this package never writes.
func OpenLibrary(path string) (*Library, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open topic library %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open topic library %s: %w", path, err)
	}
	return &Library{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Library) Close() error { return l.db.Close() }

// Topics returns the names of all topics in the library, in name order.
func (l *Library) Topics() ([]string, error) {
	rows, err := l.db.Query(`SELECT name FROM topics ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Topic loads the vocabulary for the named topic.
// Returns an error if the topic does not exist or has no items.
func (l *Library) Topic(name string) ([]Item, error) {
	rows, err := l.db.Query(
		`SELECT v.id, v.character, v.pronunciation, v.translation
		 FROM vocabulary v
		 JOIN topics t ON t.id = v.topic_id
		 WHERE t.name = ?
		 ORDER BY v.id`, name)
	if err != nil {
		return nil, fmt.Errorf("load topic %q: %w", name, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Character, &it.Pronunciation, &it.Translation); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("topic %q not found or empty", name)
	}
	return items, nil
}
