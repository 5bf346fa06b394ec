package vocab

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// newFixtureLibrary builds a small topic library file and opens it read-only.
func newFixtureLibrary(t *testing.T) *Library {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topics.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		`CREATE TABLE topics (id TEXT PRIMARY KEY, name TEXT UNIQUE)`,
		`CREATE TABLE vocabulary (
			id TEXT PRIMARY KEY,
			topic_id TEXT REFERENCES topics(id),
			character TEXT, pronunciation TEXT, translation TEXT)`,
		`INSERT INTO topics VALUES ('t1','Greetings'), ('t2','Numbers')`,
		`INSERT INTO vocabulary VALUES
			('1','t1','你好','Nǐ hǎo','Hola'),
			('2','t1','谢谢','Xièxiè','Gracias'),
			('3','t2','一','yī','uno')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("fixture: %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	lib, err := OpenLibrary(path)
	if err != nil {
		t.Fatalf("OpenLibrary: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func TestLibraryTopics(t *testing.T) {
	lib := newFixtureLibrary(t)
	names, err := lib.Topics()
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if len(names) != 2 || names[0] != "Greetings" || names[1] != "Numbers" {
		t.Fatalf("Topics() = %v", names)
	}
}

func TestLibraryTopic(t *testing.T) {
	lib := newFixtureLibrary(t)
	items, err := lib.Topic("Greetings")
	if err != nil {
		t.Fatalf("Topic: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Character != "你好" || items[0].Pronunciation != "Nǐ hǎo" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestLibraryTopicMissing(t *testing.T) {
	lib := newFixtureLibrary(t)
	if _, err := lib.Topic("Colors"); err == nil {
		t.Fatal("expected error for unknown topic")
	}
}

func TestOpenLibraryMissingFile(t *testing.T) {
	if _, err := OpenLibrary(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Fatal("expected error for missing library file")
	}
}
