// Package router keeps the stack of screens and turns navigation messages
// into stack changes.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindreset/internal/screen"
)

// PushScreenMsg opens a screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the top screen. The root screen is never popped.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen, e.g. splash for quiz.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a screen stack. The zero value is not usable; call New.
type Router struct {
	stack []screen.Screen
}

// New creates a router whose root is initial.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen and resumes the one below it.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) < 2 {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	if res, ok := r.top().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Replace swaps the top screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.top()
}

// Depth returns the number of stacked screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and hands everything else to the top
// screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	s := r.top()
	if s == nil {
		return nil
	}
	next, cmd := s.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View renders the top screen.
func (r *Router) View(width, height int) string {
	if s := r.top(); s != nil {
		return s.View(width, height)
	}
	return ""
}

func (r *Router) top() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}
