package router

import (
	tea "charm.land/bubbletea/v2"

	"quizdoc/internal/screen"
)

// PushScreenMsg asks the router to stack a new screen on top.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to drop the top screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg asks the router to swap the top screen in place, keeping
// the stack depth. The quiz screen uses this to move to the summary while
// home stays underneath.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router keeps the screen stack and routes messages to whichever screen is
// on top.
type Router struct {
	stack []screen.Screen
}

// New starts the stack with a single screen.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push stacks a screen and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the top screen. The bottom screen never pops.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
	return nil
}

// Replace swaps the top screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.setTop(s)
	return s.Init()
}

// Active returns the screen currently on top, or nil for an empty stack.
func (r *Router) Active() screen.Screen {
	if n := len(r.stack); n > 0 {
		return r.stack[n-1]
	}
	return nil
}

// Depth reports how many screens are stacked.
func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages itself and forwards everything else to
// the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	if r.Depth() == 0 {
		return nil
	}
	next, cmd := r.Active().Update(msg)
	r.setTop(next)
	return cmd
}

// View draws the active screen at the given content size.
func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}

func (r *Router) setTop(s screen.Screen) { r.stack[len(r.stack)-1] = s }
