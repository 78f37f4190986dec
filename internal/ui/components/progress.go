package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindreset/internal/ui/theme"
)

// MissionBar is the run progress bar, split into one segment per level.
type MissionBar struct {
	Done   int   // answered missions
	Levels []int // missions per level; empty draws a single segment
	Width  int
}

// NewMissionBar creates a bar for done answered missions.
func NewMissionBar(done int, levels []int, width int) MissionBar {
	return MissionBar{Done: done, Levels: levels, Width: width}
}

// Total is the number of missions across all levels.
func (b MissionBar) Total() int {
	n := 0
	for _, size := range b.Levels {
		n += size
	}
	return n
}

// Percent is the completed share, floored, in [0, 100].
func (b MissionBar) Percent() int {
	total := b.Total()
	if total <= 0 {
		return 0
	}
	return min(max(100*b.Done/total, 0), 100)
}

func (b MissionBar) View() string {
	label := fmt.Sprintf("  %3d%%", b.Percent())

	levels := b.Levels
	if len(levels) == 0 {
		levels = []int{1}
	}
	gaps := len(levels) - 1
	cells := max(b.Width-lipgloss.Width(label)-gaps, len(levels))

	total := max(b.Total(), 1)
	remaining := 0
	if b.Total() > 0 {
		remaining = min(max(b.Done, 0), total)
	}

	segments := make([]string, len(levels))
	used := 0
	for i, size := range levels {
		width := cells * size / total
		if i == len(levels)-1 {
			width = cells - used
		}
		used += width

		filled := 0
		if size > 0 {
			filled = width * min(remaining, size) / size
		}
		remaining = max(remaining-size, 0)

		segments[i] = theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
			theme.ProgressEmpty.Render(strings.Repeat(" ", width-filled))
	}

	return strings.Join(segments, " ") + theme.Mono.Render(label)
}
