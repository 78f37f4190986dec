package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestSizes(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))

	assert.True(t, IsCompactWidth(80))
	assert.False(t, IsCompactWidth(120))
	assert.True(t, IsCompactHeight(24))
}

func TestMinSizeMessage(t *testing.T) {
	msg := RenderMinSizeMessage(40, 10)
	assert.Contains(t, msg, "Terminal too small!")
	assert.Contains(t, msg, "Current: 40 x 10")
}

func TestHeader(t *testing.T) {
	h := RenderHeader(Header{Title: "Level 2 · Control", XP: 135, Position: 23, Total: 100}, 120)
	assert.Contains(t, h, "RESET")
	assert.Contains(t, h, "Level 2 · Control")
	assert.Contains(t, h, "★ 135 XP")
	assert.Contains(t, h, "23/100")

	compact := RenderHeader(Header{Title: "x", XP: 5, Position: 1, Total: 100}, 70)
	assert.NotContains(t, compact, "1/100")
	assert.Contains(t, compact, "★ 5 XP")
}

func TestFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}, {Key: "Ctrl+C", Description: "Quit"}}, 80)
	assert.Contains(t, f, "Enter")
	assert.Contains(t, f, "Select")
	assert.Contains(t, f, "Quit")
}

func TestFrameFillsHeight(t *testing.T) {
	header := RenderHeader(Header{Title: "t"}, 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)

	assert.Equal(t, 24, lipgloss.Height(frame))
	assert.Equal(t, 24-lipgloss.Height(header)-lipgloss.Height(footer), ContentHeight(header, footer, 24))
	assert.Zero(t, ContentHeight(header, footer, 2))
}
