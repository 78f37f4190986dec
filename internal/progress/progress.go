// Package progress holds the persisted quiz position and score and the
// key-value contract used to store them.
package progress

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Storage keys for the two persisted counters.
const (
	PositionKey = "reset-quiz-index"
	ScoreKey    = "reset-quiz-xp"
)

// State is the persisted part of a quiz run.
type State struct {
	Position int // zero-based index of the next question
	Score    int // accumulated XP
}

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error

	// Clear removes every key and any other session data held by the store.
	Clear(ctx context.Context) error
}

// Load reads the persisted state. Missing or malformed counters fall back to
// zero, and the position is clamped to [0, total]. A store failure still
// returns the best state that could be read alongside the error.
func Load(ctx context.Context, kv KV, total int) (State, error) {
	var st State

	rawPos, ok, err := kv.Get(ctx, PositionKey)
	if err != nil {
		return State{}, fmt.Errorf("read %s: %w", PositionKey, err)
	}
	if ok {
		st.Position = parseCounter(rawPos)
	}

	rawScore, ok, err := kv.Get(ctx, ScoreKey)
	if err != nil {
		return Clamp(st, total), fmt.Errorf("read %s: %w", ScoreKey, err)
	}
	if ok {
		st.Score = parseCounter(rawScore)
	}

	return Clamp(st, total), nil
}

// Save writes both counters.
func Save(ctx context.Context, kv KV, st State) error {
	if err := kv.Set(ctx, PositionKey, strconv.Itoa(st.Position)); err != nil {
		return fmt.Errorf("write %s: %w", PositionKey, err)
	}
	if err := kv.Set(ctx, ScoreKey, strconv.Itoa(st.Score)); err != nil {
		return fmt.Errorf("write %s: %w", ScoreKey, err)
	}
	return nil
}

// Clamp bounds the position to [0, total] and the score to >= 0.
func Clamp(st State, total int) State {
	if total < 0 {
		total = 0
	}
	st.Position = min(max(st.Position, 0), total)
	st.Score = max(st.Score, 0)
	return st
}

// parseCounter parses a stored counter, returning 0 for anything that is not
// a non-negative integer.
func parseCounter(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
