package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindreset/internal/engine"
	"github.com/abhisek/mindreset/internal/ui/components"
	"github.com/abhisek/mindreset/internal/ui/layout"
	"github.com/abhisek/mindreset/internal/ui/theme"
)

// Completion texts.
const (
	ClearedTitle   = "GAME CLEARED!"
	MasteryMessage = "You mastered your Neocortex and are now a Master of the Mind."
)

// FeedbackTitle names the brain system an option key belongs to.
func FeedbackTitle(key string) string {
	switch key {
	case "C":
		return "NEOCORTEX ACTIVATED!"
	case "B":
		return "LIMBIC SYSTEM"
	default:
		return "REPTILIAN BRAIN"
	}
}

func categoryIcon(key string) string {
	switch key {
	case "C":
		return "◆"
	case "B":
		return "♥"
	default:
		return "▲"
	}
}

func (s *QuizScreen) View(width, height int) string {
	v := s.eng.Snapshot()

	var body string
	switch {
	case v.Finished:
		body = s.renderFinished(v, width)
	case v.FeedbackVisible:
		body = s.renderFeedback(v, width)
	default:
		body = s.renderQuestion(v, width, height)
	}

	if s.confirmRestart {
		body += "\n\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Bold(true).
			Render("Restart the run and erase all progress? (y/n)")
	}

	return body
}

func (s *QuizScreen) renderProgress(v engine.View, width int) string {
	barWidth := min(width-8, 72)
	bar := components.NewMissionBar(v.Position, v.LevelSizes, barWidth).View()
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}

// renderQuestion renders the mission counter, question text and options.
func (s *QuizScreen) renderQuestion(v engine.View, width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderProgress(v, width))
	b.WriteString("\n\n")

	contentWidth := min(width-8, 72)

	mission := theme.Mono.Render(fmt.Sprintf("MISSION %d / %d", v.Question.ID, v.Total))
	if !layout.IsCompactWidth(width) {
		mission += theme.Mono.Render("   ·   " + strings.ToUpper(v.LevelTitle))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(contentWidth).Render(mission)))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		Bold(true).
		Render(v.Question.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n\n")

	opts := s.options
	if s.position != v.Position {
		opts = components.NewOptionList(v.Question.Options)
	}
	opts.Chosen = v.SelectedKey
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, opts.View(contentWidth)))

	if !layout.IsCompactHeight(height) {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Inherit(theme.Hint).
			Render("Pick with ↑↓ + Enter, or press the option letter"))
	}

	return b.String()
}

// renderFeedback renders the category overlay shown during the advance delay.
func (s *QuizScreen) renderFeedback(v engine.View, width int) string {
	key := v.SelectedKey
	color := theme.CategoryColor(key)

	lines := []string{
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(categoryIcon(key)),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(FeedbackTitle(key)),
		"",
		theme.XP.Render(fmt.Sprintf("+%d XP", engine.Points(key))),
		"",
		theme.Hint.Render("Processing mental evolution..."),
	}
	if v.Milestone {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).
				Render(fmt.Sprintf("LEVEL UP! %d / %d missions complete", v.Position+1, v.Total)))
	}

	box := theme.Overlay.
		BorderForeground(color).
		Width(min(width-8, 60)).
		Render(strings.Join(lines, "\n"))

	return s.renderProgress(v, width) + "\n\n\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// renderFinished renders the terminal state with its actions.
func (s *QuizScreen) renderFinished(v engine.View, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(s.renderProgress(v, width))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(ClearedTitle))
	b.WriteString("\n\n")
	b.WriteString(center.Inherit(theme.XP).Render(fmt.Sprintf("%d XP", v.Score)))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(MasteryMessage))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Secondary).Render(s.notice))
	}
	return b.String()
}
