package quiz

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindreset/internal/engine"
	"github.com/abhisek/mindreset/internal/router"
	"github.com/abhisek/mindreset/internal/screen"
	"github.com/abhisek/mindreset/internal/share"
	"github.com/abhisek/mindreset/internal/ui/components"
	"github.com/abhisek/mindreset/internal/ui/layout"
)

// Engine is the part of engine.Engine the quiz screen drives.
type Engine interface {
	Snapshot() engine.View
	SelectAnswer(ctx context.Context, key string) bool
	Skip() bool
	Restart(ctx context.Context) engine.View
}

// Sharer publishes the final score.
type Sharer interface {
	Share(ctx context.Context, score int) share.Result
}

// AdvancedMsg tells the screen the engine moved to the next question on its
// own timer.
type AdvancedMsg struct {
	View engine.View
}

type sharedMsg struct {
	Result share.Result
}

// QuizScreen shows the active question, the answer feedback and, once every
// question is answered, the completion screen.
type QuizScreen struct {
	eng         Engine
	sharer      Sharer
	openHistory func() screen.Screen

	options        components.OptionList
	position       int // position the option list was built for
	finished       bool
	menu           components.Menu
	notice         string
	confirmRestart bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Resumer = (*QuizScreen)(nil)

// New creates a QuizScreen. openHistory may be nil when no answer history
// is kept.
func New(eng Engine, sharer Sharer, openHistory func() screen.Screen) *QuizScreen {
	s := &QuizScreen{
		eng:         eng,
		sharer:      sharer,
		openHistory: openHistory,
		position:    -1,
	}
	s.menu = s.newMenu()
	s.sync(eng.Snapshot())
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

// Resume drops the share notice when returning from the history screen.
func (s *QuizScreen) Resume() tea.Cmd {
	s.notice = ""
	s.sync(s.eng.Snapshot())
	return nil
}

func (s *QuizScreen) Title() string {
	v := s.eng.Snapshot()
	if v.Finished {
		return "Run Complete"
	}
	return fmt.Sprintf("Level %d · %s", v.LevelIndex+1, v.LevelTitle)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	v := s.eng.Snapshot()
	switch {
	case s.confirmRestart:
		return []layout.KeyHint{
			{Key: "y", Description: "Restart"},
			{Key: "n", Description: "Keep playing"},
		}
	case v.Finished:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case v.FeedbackVisible:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "A/B/C", Description: "Answer"},
			{Key: "Ctrl+R", Description: "Restart"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case AdvancedMsg:
		s.sync(msg.View)
		return s, nil

	case sharedMsg:
		s.notice = msg.Result.Notice
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.confirmRestart {
		switch {
		case key.Matches(msg, keys.Confirm):
			s.confirmRestart = false
			s.restart()
		case key.Matches(msg, keys.Cancel):
			s.confirmRestart = false
		}
		return s, nil
	}

	v := s.eng.Snapshot()
	s.sync(v)

	if v.Finished {
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	if key.Matches(msg, keys.Restart) {
		s.confirmRestart = true
		return s, nil
	}

	if v.FeedbackVisible {
		if key.Matches(msg, keys.Skip) {
			s.eng.Skip()
			s.sync(s.eng.Snapshot())
		}
		return s, nil
	}

	var picked string
	s.options, picked = s.options.Update(msg)
	if picked != "" {
		s.eng.SelectAnswer(context.Background(), picked)
		s.sync(s.eng.Snapshot())
	}
	return s, nil
}

// sync rebuilds the option list when the position changes.
func (s *QuizScreen) sync(v engine.View) {
	if v.Finished != s.finished {
		s.finished = v.Finished
		s.menu = s.newMenu()
	}
	if !v.HasQuestion {
		s.position = -1
		return
	}
	if v.Position != s.position {
		s.position = v.Position
		s.options = components.NewOptionList(v.Question.Options)
	}
	s.options.Chosen = v.SelectedKey
}

func (s *QuizScreen) restart() {
	s.notice = ""
	s.position = -1
	s.sync(s.eng.Restart(context.Background()))
}

func (s *QuizScreen) newMenu() components.Menu {
	return components.NewMenu([]components.MenuItem{
		{Label: "Share", Shortcut: keys.Share, Action: s.shareCmd},
		{Label: "Restart Run", Shortcut: keys.Reset, Action: func() tea.Cmd {
			s.restart()
			return nil
		}},
		{Label: "History", Shortcut: keys.History, Action: s.historyCmd, Disabled: s.openHistory == nil},
	})
}

func (s *QuizScreen) shareCmd() tea.Cmd {
	score := s.eng.Snapshot().Score
	sharer := s.sharer
	if sharer == nil {
		return nil
	}
	return func() tea.Msg {
		return sharedMsg{Result: sharer.Share(context.Background(), score)}
	}
}

func (s *QuizScreen) historyCmd() tea.Cmd {
	if s.openHistory == nil {
		return nil
	}
	next := s.openHistory()
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}
