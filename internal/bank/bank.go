package bank

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBank is returned when a bank document contains no questions.
	ErrEmptyBank = errors.New("question bank is empty")

	// ErrInvalidBank is returned when a bank document does not match the schema.
	ErrInvalidBank = errors.New("invalid question bank")
)

// Option is a single answer choice. Key is the category letter shown next to
// the option ("A", "B", "C").
type Option struct {
	Key  string
	Text string
}

// Question is an immutable multiple-choice question.
type Question struct {
	ID      int
	Text    string
	Options []Option // display order
}

// Option returns the option with the given key.
func (q Question) Option(key string) (Option, bool) {
	for _, o := range q.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// Keys returns the option keys in display order.
func (q Question) Keys() []string {
	keys := make([]string, len(q.Options))
	for i, o := range q.Options {
		keys[i] = o.Key
	}
	return keys
}

// Level is a named group of consecutive questions.
type Level struct {
	Number    int
	Title     string
	Questions []Question
}

// Bank is the flattened, read-only question sequence.
type Bank struct {
	title     string
	levels    []Level
	questions []Question
	ends      []int // exclusive end index of each level in questions
}

// New flattens levels into a Bank in source order.
func New(title string, levels []Level) (*Bank, error) {
	b := &Bank{title: title, levels: levels}
	ids := make(map[int]bool)
	for li, lvl := range levels {
		for _, q := range lvl.Questions {
			if ids[q.ID] {
				return nil, fmt.Errorf("%w: level %d: duplicate question id %d",
					ErrInvalidBank, li+1, q.ID)
			}
			ids[q.ID] = true
			seen := make(map[string]bool, len(q.Options))
			for _, o := range q.Options {
				if seen[o.Key] {
					return nil, fmt.Errorf("%w: level %d question %d: duplicate option %q",
						ErrInvalidBank, li+1, q.ID, o.Key)
				}
				seen[o.Key] = true
			}
			b.questions = append(b.questions, q)
		}
		b.ends = append(b.ends, len(b.questions))
	}
	if len(b.questions) == 0 {
		return nil, ErrEmptyBank
	}
	return b, nil
}

// Title returns the bank title, if the document had one.
func (b *Bank) Title() string {
	return b.title
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// At returns the question at position i. It reports false for any position
// outside [0, Len()).
func (b *Bank) At(i int) (Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[i], true
}

// Levels returns the levels in source order.
func (b *Bank) Levels() []Level {
	return b.levels
}

// LevelSizes returns the number of questions in each level.
func (b *Bank) LevelSizes() []int {
	sizes := make([]int, len(b.levels))
	for i, lvl := range b.levels {
		sizes[i] = len(lvl.Questions)
	}
	return sizes
}

// LevelAt returns the 0-based index of the level containing position i.
// Positions past the end report the last level.
func (b *Bank) LevelAt(i int) int {
	for li, end := range b.ends {
		if i < end {
			return li
		}
	}
	return len(b.ends) - 1
}

// IsLevelEnd reports whether position i is the last question of a level.
func (b *Bank) IsLevelEnd(i int) bool {
	for _, end := range b.ends {
		if i == end-1 {
			return true
		}
	}
	return false
}

// AlignedTo reports whether every level has exactly n questions.
func (b *Bank) AlignedTo(n int) bool {
	for _, size := range b.LevelSizes() {
		if size != n {
			return false
		}
	}
	return true
}
