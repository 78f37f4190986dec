package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindreset/internal/progress"
	"github.com/abhisek/mindreset/internal/router"
	"github.com/abhisek/mindreset/internal/screen"
	"github.com/abhisek/mindreset/internal/store"
	"github.com/abhisek/mindreset/internal/ui/layout"
	"github.com/abhisek/mindreset/internal/ui/theme"
)

// RecentLimit is how many answers the screen lists.
const RecentLimit = 50

var categoryNames = map[string]string{
	"A": "Reptilian",
	"B": "Limbic",
	"C": "Neocortex",
}

// CategoryName returns the brain system name for an option key.
func CategoryName(key string) string {
	if name, ok := categoryNames[key]; ok {
		return name
	}
	return "Other (" + key + ")"
}

type historyLoadedMsg struct {
	Totals []store.CategoryCount
	Recent []progress.AnswerRecord
	Err    error
}

var (
	backKey   = key.NewBinding(key.WithKeys("esc", "q"))
	upKey     = key.NewBinding(key.WithKeys("up", "k"))
	downKey   = key.NewBinding(key.WithKeys("down", "j"))
	reloadKey = key.NewBinding(key.WithKeys("ctrl+l"))
)

// HistoryScreen shows answer totals per brain system and the latest answers.
type HistoryScreen struct {
	answers store.AnswerRepo
	totals  []store.CategoryCount
	recent  []progress.AnswerRecord
	offset  int
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(answers store.AnswerRepo) *HistoryScreen {
	return &HistoryScreen{answers: answers}
}

func (s *HistoryScreen) Init() tea.Cmd {
	answers := s.answers
	return func() tea.Msg {
		ctx := context.Background()

		totals, err := answers.Totals(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		recent, err := answers.Recent(ctx, RecentLimit)
		if err != nil {
			return historyLoadedMsg{Totals: totals, Err: err}
		}
		return historyLoadedMsg{Totals: totals, Recent: recent}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.totals = msg.Totals
		s.recent = msg.Recent
		s.offset = 0
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, backKey):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, upKey):
			if s.offset > 0 {
				s.offset--
			}
		case key.Matches(msg, downKey):
			if s.offset < len(s.recent)-1 {
				s.offset++
			}
		case key.Matches(msg, reloadKey):
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.recent) == 0 && len(s.totals) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Start a mission!")
	}

	var b strings.Builder
	b.WriteString("\n")

	answered := 0
	for _, c := range s.totals {
		answered += c.Count
	}

	for _, c := range s.totals {
		share := 0
		if answered > 0 {
			share = 100 * c.Count / answered
		}
		line := fmt.Sprintf("%-10s %3d answers  %3d%%  %4d XP", CategoryName(c.Key), c.Count, share, c.Points)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.CategoryColor(c.Key)).Bold(true).Render(line)))
		b.WriteString("\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Mono.Render("Recent answers")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	// Rows that fit below the totals block.
	rows := height - len(s.totals) - 6
	if rows < 1 {
		rows = 1
	}
	end := min(s.offset+rows, len(s.recent))
	for _, rec := range s.recent[s.offset:end] {
		line := fmt.Sprintf("%s  Mission %3d  %s  %-10s +%d XP",
			rec.AnsweredAt.Format("Jan 02 15:04"), rec.QuestionID, rec.Key, CategoryName(rec.Key), rec.Points)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
