package components

import (
	"fmt"
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindreset/internal/bank"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testOptions() []bank.Option {
	return []bank.Option{
		{Key: "A", Text: "Slam the door"},
		{Key: "B", Text: "Sulk for an hour"},
		{Key: "C", Text: "Breathe and name the feeling"},
	}
}

func TestOptionListNavigation(t *testing.T) {
	o := NewOptionList(testOptions())

	o, picked := o.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if picked != "" || o.Cursor != 1 {
		t.Fatalf("down: cursor=%d picked=%q", o.Cursor, picked)
	}
	o, _ = o.Update(press('j'))
	o, _ = o.Update(press('j'))
	if o.Cursor != 2 {
		t.Errorf("cursor should stop at last row, got %d", o.Cursor)
	}
	o, _ = o.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if o.Cursor != 1 {
		t.Errorf("up: cursor = %d, want 1", o.Cursor)
	}

	_, picked = o.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "B" {
		t.Errorf("enter picked %q, want B", picked)
	}
}

func TestOptionListLetterKeys(t *testing.T) {
	o := NewOptionList(testOptions())

	o, picked := o.Update(press('c'))
	if picked != "C" || o.Cursor != 2 {
		t.Errorf("c: picked=%q cursor=%d", picked, o.Cursor)
	}

	_, picked = o.Update(press('x'))
	if picked != "" {
		t.Errorf("unknown letter picked %q", picked)
	}
}

func TestOptionListLockedAfterChoice(t *testing.T) {
	o := NewOptionList(testOptions())
	o.Chosen = "A"

	_, picked := o.Update(press('b'))
	if picked != "" {
		t.Errorf("locked list picked %q", picked)
	}

	view := o.View(80)
	for _, opt := range testOptions() {
		if !strings.Contains(view, opt.Text) {
			t.Errorf("view missing %q", opt.Text)
		}
	}
}

func TestMenu(t *testing.T) {
	var ran []string
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			ran = append(ran, name)
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Disabled", Disabled: true},
		{Label: "Share", Shortcut: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")), Action: action("share")},
		{Label: "Restart", Shortcut: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")), Action: action("restart")},
	})
	if m.Selected != 1 {
		t.Fatalf("first enabled item should be selected, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up should skip disabled item, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = m.Update(press('r'))
	if strings.Join(ran, ",") != "share,restart" {
		t.Errorf("ran = %v", ran)
	}
	if m.Selected != 2 {
		t.Errorf("shortcut should move selection, got %d", m.Selected)
	}

	view := m.View()
	if !strings.Contains(view, "▸") || !strings.Contains(view, "Restart") {
		t.Errorf("view should mark the selected item: %q", view)
	}
	if strings.Count(view, "\n") != 3 {
		t.Errorf("expected one line per item: %q", view)
	}
}

func TestMissionBar(t *testing.T) {
	levels := []int{20, 20, 20, 20, 20}

	tests := []struct {
		done    int
		percent int
	}{
		{done: 0, percent: 0},
		{done: 37, percent: 37},
		{done: 100, percent: 100},
		{done: 250, percent: 100},
		{done: -3, percent: 0},
	}
	for _, tt := range tests {
		bar := NewMissionBar(tt.done, levels, 60)
		if got := bar.Percent(); got != tt.percent {
			t.Errorf("Percent(%d) = %d, want %d", tt.done, got, tt.percent)
		}
		if !strings.Contains(bar.View(), fmt.Sprintf("%d%%", tt.percent)) {
			t.Errorf("View(%d) missing %d%%", tt.done, tt.percent)
		}
		if w := lipgloss.Width(bar.View()); w != 60 {
			t.Errorf("View(%d) width = %d, want 60", tt.done, w)
		}
	}
}

func TestMissionBarWithoutLevels(t *testing.T) {
	bar := NewMissionBar(3, nil, 30)
	if bar.Total() != 0 || bar.Percent() != 0 {
		t.Errorf("empty bar: total %d percent %d", bar.Total(), bar.Percent())
	}
	if !strings.Contains(bar.View(), "0%") {
		t.Error("expected 0% label")
	}
}
