package quiz

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Skip    key.Binding
	Restart key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Share   key.Binding
	Reset   key.Binding
	History key.Binding
}

var keys = keyMap{
	Skip:    key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Next")),
	Restart: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("Ctrl+R", "Restart")),
	Confirm: key.NewBinding(key.WithKeys("y", "Y")),
	Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc")),
	Share:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
	Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
}
