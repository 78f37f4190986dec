package splash

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindreset/internal/engine"
	"github.com/abhisek/mindreset/internal/router"
	"github.com/abhisek/mindreset/internal/screen"
	"github.com/abhisek/mindreset/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	minDuration  = 1200 * time.Millisecond
)

type tickMsg time.Time

type loadedMsg struct {
	View engine.View
}

// SplashScreen shows the banner while the saved run is loaded, then hands
// over to the screen produced by next.
type SplashScreen struct {
	load func(context.Context) engine.View
	next func(engine.View) screen.Screen

	spinner      spinner.Model
	elapsed      time.Duration
	loaded       bool
	view         engine.View
	transitioned bool
}

var _ screen.Screen = (*SplashScreen)(nil)

// New creates a SplashScreen. load runs once in the background.
func New(load func(context.Context) engine.View, next func(engine.View) screen.Screen) *SplashScreen {
	return &SplashScreen{
		load: load,
		next: next,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (s *SplashScreen) Title() string {
	return ""
}

func (s *SplashScreen) Init() tea.Cmd {
	load := s.load
	return tea.Batch(
		s.spinner.Tick,
		tick(),
		func() tea.Msg {
			return loadedMsg{View: load(context.Background())}
		},
	)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *SplashScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.view = msg.View
		if s.elapsed >= minDuration {
			return s, s.transition()
		}
		return s, nil

	case tickMsg:
		s.elapsed += tickInterval
		if s.loaded && s.elapsed >= minDuration {
			return s, s.transition()
		}
		return s, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		// Keys only skip the banner once the run is loaded.
		if s.loaded {
			return s, s.transition()
		}
	}
	return s, nil
}

func (s *SplashScreen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	next := s.next(s.view)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SplashScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	if s.loaded {
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Take charge of your neocortex."),
			"",
			theme.Hint.Render("press any key to continue"))
	} else {
		sections = append(sections,
			s.spinner.View()+" "+lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading mission..."))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
