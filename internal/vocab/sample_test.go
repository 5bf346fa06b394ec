package vocab

import "testing"

func testItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		id := string(rune('a' + i))
		items[i] = Item{ID: id, Character: "字" + id, Pronunciation: "p" + id, Translation: "t" + id}
	}
	return items
}

func TestSampleReturnsInputWhenRoundsOutOfRange(t *testing.T) {
	items := testItems(4)
	cases := []struct {
		name   string
		rounds int
	}{
		{"zero", 0},
		{"negative", -1},
		{"equal to length", 4},
		{"greater than length", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sample(items, tc.rounds)
			if len(got) != len(items) {
				t.Fatalf("len = %d, want %d", len(got), len(items))
			}
			for i := range got {
				if got[i].ID != items[i].ID {
					t.Fatalf("order changed at %d: got %q want %q", i, got[i].ID, items[i].ID)
				}
			}
		})
	}
}

func TestSampleCapsAtRounds(t *testing.T) {
	items := testItems(10)
	got := Sample(items, 4)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}

	byID := make(map[string]struct{}, len(items))
	for _, it := range items {
		byID[it.ID] = struct{}{}
	}
	seen := make(map[string]struct{})
	for _, it := range got {
		if _, ok := byID[it.ID]; !ok {
			t.Fatalf("sampled unknown item %q", it.ID)
		}
		if _, dup := seen[it.ID]; dup {
			t.Fatalf("duplicate item %q in sample", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
}

func TestSampleDoesNotMutateInput(t *testing.T) {
	items := testItems(8)
	before := make([]Item, len(items))
	copy(before, items)

	Sample(items, 3)

	for i := range items {
		if items[i].ID != before[i].ID {
			t.Fatalf("input mutated at %d", i)
		}
	}
}
