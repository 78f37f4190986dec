// Package layout draws the frame around every screen: the header with the
// running XP, the key hint footer and the too-small fallback.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindreset/internal/ui/theme"
)

const (
	MinWidth  = 64
	MinHeight = 20

	CompactWidthThreshold  = 90
	CompactHeightThreshold = 28
)

// KeyHint is one "key: action" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Header is what the top bar shows.
type Header struct {
	Title    string
	XP       int
	Position int // answered missions
	Total    int // 0 hides the mission counter
}

func IsCompactWidth(width int) bool   { return width < CompactWidthThreshold }
func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

// IsTooSmall reports whether the quiz cannot be drawn at all.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the player to grow the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small!\n\nRESET needs %d x %d\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Warning).Align(lipgloss.Center).Render(text))
}

// RenderHeader draws the brand on the left, the screen title in the middle
// and the XP counter on the right.
func RenderHeader(h Header, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("↻ RESET")
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(h.Title)

	stats := theme.XP.Render(fmt.Sprintf("★ %d XP", h.XP))
	if h.Total > 0 && !IsCompactWidth(width) {
		stats = theme.Mono.Render(fmt.Sprintf("%d/%d  ", h.Position, h.Total)) + stats
	}

	inner := max(width-4, 0)
	side := max((inner-lipgloss.Width(title))/2, 0)
	left := lipgloss.NewStyle().Width(side).Render(brand)
	right := lipgloss.NewStyle().
		Width(max(inner-side-lipgloss.Width(title), 0)).
		Align(lipgloss.Right).
		Render(stats)

	return bar(width).Render(left + title + right)
}

// RenderFooter draws the key hints as badges.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = theme.KeyBadge.Render(h.Key) + " " + theme.Mono.Render(h.Description)
	}
	return bar(width).Render(strings.Join(parts, "  "))
}

// RenderFrame stacks header, body and footer, padding the body so the
// footer sits on the last rows.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// ContentHeight is what is left for the body between header and footer.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}
