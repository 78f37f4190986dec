package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindreset/internal/bank"
	"github.com/abhisek/mindreset/internal/engine"
	"github.com/abhisek/mindreset/internal/engine/enginetest"
	"github.com/abhisek/mindreset/internal/progress"
	"github.com/abhisek/mindreset/internal/router"
	"github.com/abhisek/mindreset/internal/screens/quiz"
	"github.com/abhisek/mindreset/internal/share"
)

type nopSharer struct{}

func (nopSharer) Share(context.Context, int) share.Result { return share.Result{} }

func newTestApp(t *testing.T) (AppModel, *engine.Engine, *enginetest.ManualScheduler, <-chan engine.View) {
	t.Helper()
	b, err := bank.Default()
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	kv := progress.NewMemoryStore()
	if err := kv.Set(context.Background(), progress.ScoreKey, "120"); err != nil {
		t.Fatal(err)
	}
	notify, advances := Notifier()
	sched := &enginetest.ManualScheduler{}
	eng, err := engine.New(engine.Options{Bank: b, Store: kv, Scheduler: sched, OnAdvance: notify})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	m := NewAppModel(Options{Engine: eng, Sharer: nopSharer{}, Advances: advances})
	return m, eng, sched, advances
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func TestViewWaitsForSize(t *testing.T) {
	m, _, _, _ := newTestApp(t)
	if m.render() != "" {
		t.Error("expected empty view before the first WindowSizeMsg")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestSplashToQuiz(t *testing.T) {
	m, eng, _, _ := newTestApp(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if !strings.Contains(m.render(), "Loading mission...") {
		t.Error("expected loading splash")
	}

	// Simulate the splash load finishing and the user skipping the banner.
	eng.Load(context.Background())
	m, _ = update(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := m.router.Active().(*quiz.QuizScreen); ok {
		t.Fatal("splash should not transition before it has loaded")
	}

	m, _ = update(t, m, router.ReplaceScreenMsg{Screen: quiz.New(eng, nopSharer{}, nil)})
	view := m.render()
	if !strings.Contains(view, "MISSION 1 / 100") {
		t.Error("expected first mission")
	}
	if !strings.Contains(view, "120 XP") {
		t.Error("header should show the restored XP")
	}
}

func TestAdvanceMessagesAreForwarded(t *testing.T) {
	m, eng, sched, advances := newTestApp(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	eng.Load(context.Background())
	m, _ = update(t, m, router.ReplaceScreenMsg{Screen: quiz.New(eng, nopSharer{}, nil)})

	m, _ = update(t, m, tea.KeyPressMsg{Code: 'c', Text: "c"})
	sched.Advance()

	msg := waitForAdvance(advances)()
	adv, ok := msg.(quiz.AdvancedMsg)
	if !ok {
		t.Fatalf("expected AdvancedMsg, got %T", msg)
	}
	if adv.View.Position != 1 {
		t.Errorf("advanced to %d, want 1", adv.View.Position)
	}

	m, cmd := update(t, m, adv)
	if cmd == nil {
		t.Error("app should keep listening for advances")
	}
	if !strings.Contains(m.render(), "MISSION 2 / 100") {
		t.Error("expected second mission after advance")
	}
}

func TestNotifierNeverBlocks(t *testing.T) {
	notify, ch := Notifier()
	notify(engine.View{Position: 1})
	notify(engine.View{Position: 2})
	if v := <-ch; v.Position != 1 {
		t.Errorf("got position %d, want 1", v.Position)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _, _, _ := newTestApp(t)
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestWaitForAdvanceNilChannel(t *testing.T) {
	if waitForAdvance(nil) != nil {
		t.Error("nil channel should produce no command")
	}
}
