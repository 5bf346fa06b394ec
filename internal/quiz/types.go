// internal/quiz/types.go
//
// Core type definitions for the multiple-choice quiz engine.
// Defines:
//   - Question: one target plus shuffled options.
//   - Result: the per-question answer record.
//   - Mark: per-option reveal classification (correct/incorrect/dimmed).
//   - Snapshot: the pull-based read model exposed to the hosting layer.

package quiz

import "github.com/Diego-Arreola/mandarin-player-go/internal/vocab"

// Question is one quiz round: a target item and its answer options.
// Options contain the target exactly once and no duplicate ids. Built once
// at construction; immutable afterwards.
type Question struct {
	Target  vocab.Item   `json:"target"`
	Options []vocab.Item `json:"options"`
}

// Result records one answered question, in question order. Selected is nil
// only if a playthrough is abandoned mid-question; every Answer call stores
// the chosen option. Immutable once appended.
type Result struct {
	Target   vocab.Item  `json:"target"`
	Selected *vocab.Item `json:"selected"`
	Correct  bool        `json:"correct"`
}

// Mark classifies an option while the answer is being revealed.
// Possible values:
//   - "correct":   this option is the target.
//   - "incorrect": this option was selected and is not the target.
//   - "dimmed":    every other option.
type Mark string

const (
	MarkCorrect   Mark = "correct"
	MarkIncorrect Mark = "incorrect"
	MarkDimmed    Mark = "dimmed"
)

// OptionView is an option as seen in a snapshot; Mark is empty outside the
// reveal window.
type OptionView struct {
	vocab.Item
	Mark Mark `json:"mark,omitempty"`
}

// Snapshot is a point-in-time view of the quiz, safe to serialize.
// Prompt is the current target's translation (the word being asked about);
// options show the characters to choose from.
type Snapshot struct {
	Index     int          `json:"index"`
	Total     int          `json:"total"`
	Prompt    string       `json:"prompt,omitempty"`
	Options   []OptionView `json:"options,omitempty"`
	Score     int          `json:"score"`
	Revealing bool         `json:"revealing"`
	Finished  bool         `json:"finished"`
}
