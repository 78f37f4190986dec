package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindreset/internal/bank"
	"github.com/abhisek/mindreset/internal/ui/theme"
)

// OptionKeyMap holds the bindings used to move through and pick options.
type OptionKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
}

// DefaultOptionKeys are arrow/vim movement plus Enter.
var DefaultOptionKeys = OptionKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "choose")),
}

// OptionList shows a question's options as selectable rows. A row can also
// be picked directly by typing its key letter.
type OptionList struct {
	Options []bank.Option
	Cursor  int
	Chosen  string // key of the recorded selection, "" while open
	Keys    OptionKeyMap
}

// NewOptionList creates an option list with the cursor on the first row.
func NewOptionList(options []bank.Option) OptionList {
	return OptionList{
		Options: options,
		Keys:    DefaultOptionKeys,
	}
}

// Update moves the cursor. It returns the key the user picked, or "".
func (o OptionList) Update(msg tea.Msg) (OptionList, string) {
	if o.Chosen != "" {
		return o, ""
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return o, ""
	}

	switch {
	case key.Matches(kmsg, o.Keys.Up):
		if o.Cursor > 0 {
			o.Cursor--
		}
	case key.Matches(kmsg, o.Keys.Down):
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case key.Matches(kmsg, o.Keys.Choose):
		if o.Cursor < len(o.Options) {
			return o, o.Options[o.Cursor].Key
		}
	default:
		typed := strings.ToUpper(kmsg.String())
		for i, opt := range o.Options {
			if strings.ToUpper(opt.Key) == typed {
				o.Cursor = i
				return o, opt.Key
			}
		}
	}
	return o, ""
}

// View renders one row per option, wrapped to width.
func (o OptionList) View(width int) string {
	textWidth := width - 8
	if textWidth < 10 {
		textWidth = 10
	}

	rows := make([]string, 0, len(o.Options))
	for i, opt := range o.Options {
		prefix := "  "
		style := theme.Unselected
		badge := theme.KeyBadge

		switch {
		case o.Chosen != "" && opt.Key == o.Chosen:
			prefix = "▸ "
			style = lipgloss.NewStyle().Foreground(theme.CategoryColor(opt.Key)).Bold(true)
			badge = badge.Foreground(theme.CategoryColor(opt.Key))
		case o.Chosen != "":
			style = theme.Disabled
		case i == o.Cursor:
			prefix = "▸ "
			style = theme.Selected
			badge = badge.Foreground(theme.Secondary)
		}

		text := lipgloss.NewStyle().Width(textWidth).Render(opt.Text)
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			style.Render(prefix),
			badge.Render(opt.Key),
			" ",
			style.Render(text),
		)
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n\n")
}
