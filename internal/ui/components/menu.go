package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindreset/internal/ui/theme"
)

// MenuItem represents a single item in an action menu.
type MenuItem struct {
	Label    string
	Shortcut key.Binding
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical action menu.
type Menu struct {
	Items    []MenuItem
	Selected int
	Keys     OptionKeyMap
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
		Keys:     DefaultOptionKeys,
	}
}

// Update handles keyboard navigation, Enter and item shortcuts.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.Keys.Up):
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case key.Matches(kmsg, m.Keys.Down):
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case key.Matches(kmsg, m.Keys.Choose):
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			return m, m.activate(m.Selected)
		}
	default:
		for i, item := range m.Items {
			if key.Matches(kmsg, item.Shortcut) {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}

	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	item := m.Items[i]
	if item.Action == nil || item.Disabled {
		return nil
	}
	return item.Action()
}

// View renders one item per line, each prefixed by its shortcut badge.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		badge := "   "
		if help := item.Shortcut.Help(); help.Key != "" {
			badge = theme.KeyBadge.Render(help.Key)
		}

		style := theme.Unselected
		marker := "  "
		switch {
		case item.Disabled:
			style = theme.Disabled
		case i == m.Selected:
			style = theme.Selected.Foreground(theme.Primary)
			marker = "▸ "
		}
		b.WriteString(style.Render(marker) + badge + " " + style.Render(item.Label) + "\n")
	}
	return b.String()
}
