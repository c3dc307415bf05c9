package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quizdoc/internal/ui/theme"
)

// TextInput wraps the bubbles text input, adding an optional digit filter
// and a validation mark shown after Submit.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	submitted   bool
	valid       bool
}

// NewTextInput builds a focused input. A charLimit of zero leaves the
// length unbounded.
func NewTextInput(placeholder string, numericOnly bool, charLimit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.Focus()
	if charLimit > 0 {
		m.CharLimit = charLimit
	}
	return TextInput{Model: m, NumericOnly: numericOnly}
}

func (t TextInput) Init() tea.Cmd { return t.Model.Focus() }

// Update filters non-digit characters when NumericOnly is set, then feeds
// the message to the wrapped model.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && t.NumericOnly && insertsNonDigit(kmsg) {
		return t, nil
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// insertsNonDigit reports whether a key press would type a character other
// than 0-9. Control keys like enter and backspace pass through.
func insertsNonDigit(k tea.KeyMsg) bool {
	s := k.String()
	if len(s) != 1 {
		return false
	}
	return s[0] < '0' || s[0] > '9'
}

// View renders the input, with a check or cross appended once submitted.
func (t TextInput) View() string {
	view := t.Model.View()
	if !t.submitted {
		return view
	}
	mark := lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	if t.valid {
		mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	}
	return view + " " + mark
}

// Value returns the raw text.
func (t TextInput) Value() string { return t.Model.Value() }

// NumericValue parses the text as an integer.
func (t TextInput) NumericValue() (int, error) { return strconv.Atoi(t.Model.Value()) }

// SetValue replaces the text.
func (t *TextInput) SetValue(v string) { t.Model.SetValue(v) }

// Submit records the validation verdict shown next to the input.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}
