// Package screen defines what the router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindreset/internal/ui/layout"
)

// Screen is one full-frame view of the game: the loading splash, the quiz
// or the answer history.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between the header and the footer.
	View(width, height int) string

	// Title is shown in the middle of the header.
	Title() string
}

// KeyHintProvider screens replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer screens are told when they become the top of the stack again
// after the screen above them was popped.
type Resumer interface {
	Resume() tea.Cmd
}
