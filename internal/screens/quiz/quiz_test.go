package quiz

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindreset/internal/bank"
	"github.com/abhisek/mindreset/internal/engine"
	"github.com/abhisek/mindreset/internal/engine/enginetest"
	"github.com/abhisek/mindreset/internal/progress"
	"github.com/abhisek/mindreset/internal/router"
	"github.com/abhisek/mindreset/internal/screen"
	"github.com/abhisek/mindreset/internal/share"
)

type fakeSharer struct {
	scores []int
}

func (f *fakeSharer) Share(_ context.Context, score int) share.Result {
	f.scores = append(f.scores, score)
	return share.Result{Method: share.MethodClipboard, Notice: "Link copied to clipboard!"}
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "history" }
func (s *stubScreen) Title() string                           { return "History" }

type fixture struct {
	screen *QuizScreen
	eng    *engine.Engine
	sched  *enginetest.ManualScheduler
	kv     *progress.MemoryStore
	sharer *fakeSharer
}

func newFixture(t *testing.T, questions int) *fixture {
	t.Helper()
	lvl := bank.Level{Number: 1, Title: "Awakening"}
	for i := 1; i <= questions; i++ {
		lvl.Questions = append(lvl.Questions, bank.Question{
			ID:   i,
			Text: fmt.Sprintf("Situation %d: what do you do?", i),
			Options: []bank.Option{
				{Key: "A", Text: "Fight"},
				{Key: "B", Text: "Worry"},
				{Key: "C", Text: "Reflect"},
			},
		})
	}
	b, err := bank.New("test", []bank.Level{lvl})
	if err != nil {
		t.Fatalf("bank: %v", err)
	}

	f := &fixture{
		sched:  &enginetest.ManualScheduler{},
		kv:     progress.NewMemoryStore(),
		sharer: &fakeSharer{},
	}
	f.eng, err = engine.New(engine.Options{Bank: b, Store: f.kv, Scheduler: f.sched})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	f.eng.Load(context.Background())
	f.screen = New(f.eng, f.sharer, func() screen.Screen { return &stubScreen{} })
	return f
}

func press(s *QuizScreen, r rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	return cmd
}

func pressCode(s *QuizScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestQuestionView(t *testing.T) {
	f := newFixture(t, 3)
	view := f.screen.View(100, 30)

	for _, want := range []string{"MISSION 1 / 3", "Situation 1", "Fight", "Worry", "Reflect"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := f.screen.Title(); got != "Level 1 · Awakening" {
		t.Errorf("Title = %q", got)
	}
}

func TestLetterKeySelects(t *testing.T) {
	f := newFixture(t, 3)

	press(f.screen, 'c')

	v := f.eng.Snapshot()
	if v.Score != 10 || v.SelectedKey != "C" {
		t.Fatalf("after c: score=%d selected=%q", v.Score, v.SelectedKey)
	}
	view := f.screen.View(100, 30)
	if !strings.Contains(view, "NEOCORTEX ACTIVATED!") {
		t.Error("feedback overlay missing")
	}
	if !strings.Contains(view, "+10 XP") {
		t.Error("points missing from overlay")
	}

	// Further answers are ignored while feedback shows.
	press(f.screen, 'b')
	if got := f.eng.Snapshot().Score; got != 10 {
		t.Errorf("score changed to %d during feedback", got)
	}
}

func TestArrowAndEnterSelects(t *testing.T) {
	f := newFixture(t, 3)

	pressCode(f.screen, tea.KeyDown)
	pressCode(f.screen, tea.KeyEnter)

	if v := f.eng.Snapshot(); v.SelectedKey != "B" || v.Score != 5 {
		t.Fatalf("selected=%q score=%d", v.SelectedKey, v.Score)
	}
	if !strings.Contains(f.screen.View(100, 30), "LIMBIC SYSTEM") {
		t.Error("expected limbic feedback")
	}
}

func TestFeedbackTitles(t *testing.T) {
	tests := map[string]string{
		"A": "REPTILIAN BRAIN",
		"B": "LIMBIC SYSTEM",
		"C": "NEOCORTEX ACTIVATED!",
		"X": "REPTILIAN BRAIN",
	}
	for key, want := range tests {
		if got := FeedbackTitle(key); got != want {
			t.Errorf("FeedbackTitle(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestTimerAdvanceRefreshesOptions(t *testing.T) {
	f := newFixture(t, 3)
	pressCode(f.screen, tea.KeyDown)
	press(f.screen, 'a')

	f.sched.Advance()
	f.screen.Update(AdvancedMsg{View: f.eng.Snapshot()})

	if f.screen.options.Cursor != 0 || f.screen.options.Chosen != "" {
		t.Errorf("options not reset: cursor=%d chosen=%q", f.screen.options.Cursor, f.screen.options.Chosen)
	}
	if !strings.Contains(f.screen.View(100, 30), "MISSION 2 / 3") {
		t.Error("expected second mission")
	}
}

// scriptedEngine serves a fixed view and records selections.
type scriptedEngine struct {
	view     engine.View
	selected []string
}

func (e *scriptedEngine) Snapshot() engine.View { return e.view }
func (e *scriptedEngine) Skip() bool            { return false }
func (e *scriptedEngine) Restart(context.Context) engine.View {
	return e.view
}
func (e *scriptedEngine) SelectAnswer(_ context.Context, key string) bool {
	e.selected = append(e.selected, key)
	return true
}

func TestOptionsFollowPositionNotQuestionID(t *testing.T) {
	first := bank.Question{ID: 7, Text: "First?", Options: []bank.Option{
		{Key: "A", Text: "alpha"}, {Key: "B", Text: "bravo"}, {Key: "C", Text: "charlie"},
	}}
	second := bank.Question{ID: 7, Text: "Second?", Options: []bank.Option{
		{Key: "X", Text: "xray"}, {Key: "Y", Text: "yankee"},
	}}

	eng := &scriptedEngine{view: engine.View{Loaded: true, Total: 2, Question: first, HasQuestion: true}}
	s := New(eng, nil, nil)

	eng.view = engine.View{Loaded: true, Position: 1, Total: 2, Question: second, HasQuestion: true}
	s.Update(AdvancedMsg{View: eng.view})

	view := s.View(100, 30)
	if !strings.Contains(view, "xray") || strings.Contains(view, "alpha") {
		t.Errorf("view shows stale options:\n%s", view)
	}

	press(s, 'a')
	press(s, 'x')
	if len(eng.selected) != 1 || eng.selected[0] != "X" {
		t.Errorf("selected = %v, want [X]", eng.selected)
	}
}

func TestEnterSkipsFeedback(t *testing.T) {
	f := newFixture(t, 3)
	press(f.screen, 'b')
	pressCode(f.screen, tea.KeyEnter)

	v := f.eng.Snapshot()
	if v.Position != 1 || v.FeedbackVisible {
		t.Fatalf("position=%d feedback=%v", v.Position, v.FeedbackVisible)
	}
	if len(f.sched.Pending()) != 0 {
		t.Error("skipped advance should be cancelled")
	}
}

func TestFinishedView(t *testing.T) {
	f := newFixture(t, 2)
	press(f.screen, 'c')
	pressCode(f.screen, tea.KeyEnter)
	press(f.screen, 'b')
	pressCode(f.screen, tea.KeyEnter)

	view := f.screen.View(100, 30)
	for _, want := range []string{ClearedTitle, "15 XP", MasteryMessage, "Share", "Restart Run"} {
		if !strings.Contains(view, want) {
			t.Errorf("finished view missing %q", want)
		}
	}
	if f.screen.Title() != "Run Complete" {
		t.Errorf("Title = %q", f.screen.Title())
	}
}

func TestShareFromFinished(t *testing.T) {
	f := newFixture(t, 1)
	press(f.screen, 'c')
	pressCode(f.screen, tea.KeyEnter)

	cmd := press(f.screen, 's')
	if cmd == nil {
		t.Fatal("share should return a command")
	}
	f.screen.Update(cmd())

	if len(f.sharer.scores) != 1 || f.sharer.scores[0] != 10 {
		t.Errorf("shared scores = %v", f.sharer.scores)
	}
	if !strings.Contains(f.screen.View(100, 30), "Link copied to clipboard!") {
		t.Error("share notice should be shown")
	}
}

func TestRestartFromFinished(t *testing.T) {
	f := newFixture(t, 1)
	press(f.screen, 'c')
	pressCode(f.screen, tea.KeyEnter)

	press(f.screen, 'r')

	v := f.eng.Snapshot()
	if v.Position != 0 || v.Score != 0 || v.Finished {
		t.Fatalf("after restart: %+v", v)
	}
	pos, _, _ := f.kv.Get(context.Background(), progress.PositionKey)
	if pos != "0" {
		t.Errorf("stored position = %q", pos)
	}
	if !strings.Contains(f.screen.View(100, 30), "MISSION 1 / 1") {
		t.Error("expected first mission after restart")
	}
}

func TestRestartDuringPlayNeedsConfirmation(t *testing.T) {
	f := newFixture(t, 3)
	press(f.screen, 'c')
	pressCode(f.screen, tea.KeyEnter)

	f.screen.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	if !f.screen.confirmRestart {
		t.Fatal("ctrl+r should ask for confirmation")
	}
	press(f.screen, 'n')
	if f.eng.Snapshot().Position != 1 {
		t.Error("cancelled restart should keep progress")
	}

	f.screen.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	press(f.screen, 'y')
	if v := f.eng.Snapshot(); v.Position != 0 || v.Score != 0 {
		t.Errorf("after confirmed restart: %+v", v)
	}
}

func TestHistoryFromFinished(t *testing.T) {
	f := newFixture(t, 1)
	press(f.screen, 'a')
	pressCode(f.screen, tea.KeyEnter)

	cmd := press(f.screen, 'h')
	if cmd == nil {
		t.Fatal("history should return a command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg")
	}
}

func TestResumeClearsNotice(t *testing.T) {
	f := newFixture(t, 1)
	press(f.screen, 'c')
	pressCode(f.screen, tea.KeyEnter)
	f.screen.Update(press(f.screen, 's')())

	f.screen.Resume()
	if strings.Contains(f.screen.View(100, 30), "Link copied to clipboard!") {
		t.Error("notice should be cleared after returning to the quiz")
	}
}

func TestHistoryDisabledWithoutFactory(t *testing.T) {
	f := newFixture(t, 1)
	s := New(f.eng, f.sharer, nil)
	press(s, 'a')
	pressCode(s, tea.KeyEnter)

	if cmd := press(s, 'h'); cmd != nil {
		t.Error("disabled history should do nothing")
	}
}

func TestKeyHints(t *testing.T) {
	f := newFixture(t, 1)
	if hints := f.screen.KeyHints(); len(hints) != 5 {
		t.Errorf("question hints = %d, want 5", len(hints))
	}
	press(f.screen, 'a')
	if hints := f.screen.KeyHints(); hints[0].Description != "Next" {
		t.Errorf("feedback hints = %+v", hints)
	}
}
