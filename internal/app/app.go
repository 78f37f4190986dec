package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindreset/internal/engine"
	"github.com/abhisek/mindreset/internal/router"
	"github.com/abhisek/mindreset/internal/screen"
	"github.com/abhisek/mindreset/internal/screens/history"
	"github.com/abhisek/mindreset/internal/screens/quiz"
	"github.com/abhisek/mindreset/internal/screens/splash"
	"github.com/abhisek/mindreset/internal/store"
	"github.com/abhisek/mindreset/internal/ui/layout"
)

// Options holds the collaborators the TUI is built from.
type Options struct {
	Engine   *engine.Engine
	Sharer   quiz.Sharer
	Answers  store.AnswerRepo // nil disables the history screen
	Advances <-chan engine.View
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	eng      *engine.Engine
	advances <-chan engine.View
	width    int
	height   int
}

// NewAppModel creates an AppModel that starts on the loading splash.
func NewAppModel(opts Options) AppModel {
	var openHistory func() screen.Screen
	if opts.Answers != nil {
		answers := opts.Answers
		openHistory = func() screen.Screen { return history.New(answers) }
	}

	eng := opts.Engine
	first := splash.New(
		func(ctx context.Context) engine.View { return eng.Load(ctx) },
		func(engine.View) screen.Screen { return quiz.New(eng, opts.Sharer, openHistory) },
	)
	return AppModel{
		router:   router.New(first),
		eng:      eng,
		advances: opts.Advances,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), waitForAdvance(m.advances))
}

// Notifier returns an engine OnAdvance callback and the channel it feeds.
// Sends never block.
func Notifier() (func(engine.View), <-chan engine.View) {
	ch := make(chan engine.View, 1)
	notify := func(v engine.View) {
		select {
		case ch <- v:
		default:
		}
	}
	return notify, ch
}

// waitForAdvance turns the engine's timer callbacks into messages.
func waitForAdvance(ch <-chan engine.View) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return quiz.AdvancedMsg{View: v}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case quiz.AdvancedMsg:
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, waitForAdvance(m.advances))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if content := m.render(); content != "" {
		v.SetContent(content)
	}
	return v
}

// render draws the full frame, or "" until the terminal size is known.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	v := m.eng.Snapshot()
	header := layout.RenderHeader(layout.Header{
		Title:    title,
		XP:       v.Score,
		Position: v.Position,
		Total:    v.Total,
	}, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)
	contentHeight := layout.ContentHeight(header, footer, m.height)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
