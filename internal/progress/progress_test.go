package progress

import (
	"context"
	"errors"
	"testing"
)

type failingKV struct {
	failOn string
}

func (f failingKV) Get(_ context.Context, key string) (string, bool, error) {
	if key == f.failOn {
		return "", false, errors.New("disk on fire")
	}
	return "3", true, nil
}
func (f failingKV) Set(context.Context, string, string) error { return errors.New("read-only") }
func (f failingKV) Clear(context.Context) error               { return nil }

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	st, err := Load(context.Background(), NewMemoryStore(), 100)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st != (State{}) {
		t.Errorf("state = %+v, want zero", st)
	}
}

func TestLoadParsesAndClamps(t *testing.T) {
	tests := []struct {
		name     string
		position string
		score    string
		want     State
	}{
		{"valid", "42", "310", State{Position: 42, Score: 310}},
		{"whitespace", " 7 ", "5\n", State{Position: 7, Score: 5}},
		{"at end", "100", "900", State{Position: 100, Score: 900}},
		{"past end clamps", "250", "10", State{Position: 100, Score: 10}},
		{"non-numeric", "abc", "xp", State{}},
		{"partially numeric", "12abc", "3.5", State{}},
		{"negative", "-4", "-10", State{}},
		{"empty strings", "", "", State{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryStore()
			ctx := context.Background()
			_ = kv.Set(ctx, PositionKey, tt.position)
			_ = kv.Set(ctx, ScoreKey, tt.score)

			got, err := Load(ctx, kv, 100)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got != tt.want {
				t.Errorf("Load = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	kv := NewMemoryStore()
	ctx := context.Background()

	if err := Save(ctx, kv, State{Position: 19, Score: 145}); err != nil {
		t.Fatalf("save: %v", err)
	}
	pos, _, _ := kv.Get(ctx, PositionKey)
	score, _, _ := kv.Get(ctx, ScoreKey)
	if pos != "19" || score != "145" {
		t.Errorf("stored position=%q score=%q", pos, score)
	}

	got, err := Load(ctx, kv, 100)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != (State{Position: 19, Score: 145}) {
		t.Errorf("Load = %+v", got)
	}
}

func TestLoadStoreFailure(t *testing.T) {
	_, err := Load(context.Background(), failingKV{failOn: PositionKey}, 10)
	if err == nil {
		t.Fatal("expected error")
	}

	st, err := Load(context.Background(), failingKV{failOn: ScoreKey}, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if st.Position != 3 || st.Score != 0 {
		t.Errorf("partial state = %+v, want position 3 score 0", st)
	}
}

func TestSaveStoreFailure(t *testing.T) {
	if err := Save(context.Background(), failingKV{}, State{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestClear(t *testing.T) {
	kv := NewMemoryStore()
	ctx := context.Background()
	_ = Save(ctx, kv, State{Position: 1, Score: 10})
	_ = kv.Set(ctx, "other", "x")

	if err := kv.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if kv.Len() != 0 {
		t.Errorf("Len = %d after clear, want 0", kv.Len())
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(State{Position: 5, Score: 1}, -1); got.Position != 0 {
		t.Errorf("negative total: position = %d, want 0", got.Position)
	}
	if got := Clamp(State{Position: -3, Score: -1}, 10); got != (State{}) {
		t.Errorf("Clamp = %+v, want zero", got)
	}
}
