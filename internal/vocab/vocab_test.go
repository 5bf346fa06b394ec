package vocab

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitFallsBackToEmbeddedDefault(t *testing.T) {
	// No VOCAB_FILE / VOCAB_DB_FILE in the test environment, so Init loads
	// the embedded greetings set.
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Stats() != 3 {
		t.Fatalf("Stats() = %d, want 3", Stats())
	}
	items := Default()
	if items[0].Character != "你好" || items[0].Translation != "Hola" {
		t.Fatalf("unexpected first default item: %+v", items[0])
	}

	// Default returns a copy; mutating it must not touch the loaded set.
	items[0].Translation = "changed"
	if Default()[0].Translation != "Hola" {
		t.Fatal("Default() leaked internal state")
	}
}

func TestReadTopicFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topic.json")
	data := `[
		{"id":"10","character":"水","pronunciation":"shuǐ","translation":"agua"},
		{"id":"11","character":"火","pronunciation":"huǒ","translation":"fuego"}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := readTopicFile(path)
	if err != nil {
		t.Fatalf("readTopicFile: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[1].Character != "火" || items[1].Translation != "fuego" {
		t.Fatalf("unexpected item: %+v", items[1])
	}
}

func TestReadTopicFileErrors(t *testing.T) {
	if _, err := readTopicFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readTopicFile(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		items   []Item
		wantErr bool
	}{
		{"valid", testItems(3), false},
		{"empty list", nil, false},
		{
			"missing id",
			[]Item{{Character: "好", Translation: "bueno"}},
			true,
		},
		{
			"missing translation",
			[]Item{{ID: "1", Character: "好"}},
			true,
		},
		{
			"duplicate id",
			[]Item{
				{ID: "1", Character: "好", Translation: "bueno"},
				{ID: "1", Character: "坏", Translation: "malo"},
			},
			true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.items)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
