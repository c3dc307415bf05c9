// Package screen declares the contract every routed screen satisfies.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"quizdoc/internal/ui/layout"
)

// Screen is one full-content view managed by the router. Screens receive the
// content area size at render time; the surrounding header and footer belong
// to the app frame.
type Screen interface {
	// Init runs once when the screen lands on the stack.
	Init() tea.Cmd

	// Update reacts to a message, returning the screen to keep on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the content area at the given size.
	View(width, height int) string

	// Title names the screen in the header bar.
	Title() string
}

// KeyHintProvider lets a screen put its own key hints in the footer instead
// of the defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
