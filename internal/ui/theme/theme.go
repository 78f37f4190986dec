package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: dark zinc panels with neon accents
var (
	Primary   = lipgloss.Color("#EF4444") // Reset Red
	Secondary = lipgloss.Color("#22D3EE") // Cyan
	Accent    = lipgloss.Color("#4ADE80") // XP Green
	Success   = lipgloss.Color("#4ADE80") // Green
	Warning   = lipgloss.Color("#FACC15") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#FAFAFA") // White
	TextDim   = lipgloss.Color("#A1A1AA") // Zinc 400
	BgDark    = lipgloss.Color("#09090B") // Zinc 950
	BgCard    = lipgloss.Color("#18181B") // Zinc 900
	Border    = lipgloss.Color("#3F3F46") // Zinc 700
)

// Brain category colors, by option key
var (
	Reptilian = lipgloss.Color("#F97316") // A
	Limbic    = lipgloss.Color("#EC4899") // B
	Neocortex = lipgloss.Color("#8B5CF6") // C
)

// CategoryColor returns the color for an option key.
func CategoryColor(key string) color.Color {
	switch key {
	case "C":
		return Neocortex
	case "B":
		return Limbic
	default:
		return Reptilian
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Mono = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Overlay = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		Padding(1, 4).
		Align(lipgloss.Center)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)

	XP = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	KeyBadge = lipgloss.NewStyle().
			Background(BgDark).
			Foreground(TextDim).
			Bold(true).
			Padding(0, 1)
)
