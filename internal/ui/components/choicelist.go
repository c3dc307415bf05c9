package components

import (
	"fmt"
	"sort"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quizdoc/internal/ui/theme"
)

// Choice is one lettered option in a ChoiceList.
type Choice struct {
	Letter string
	Text   string
}

// ChoiceList is a multi-select list of lettered options. Letters and space
// toggle, arrows move the cursor. After Reveal it renders the correct set
// green and wrong picks red.
type ChoiceList struct {
	Choices []Choice
	Cursor  int

	picked   map[string]bool
	revealed bool
	correct  map[string]bool
}

// NewChoiceList creates a choice list with nothing picked.
func NewChoiceList(choices []Choice) ChoiceList {
	return ChoiceList{
		Choices: choices,
		picked:  make(map[string]bool),
	}
}

// Init returns nil (no initial command).
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and toggling.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.revealed {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, nil
	case "down", "j":
		if c.Cursor < len(c.Choices)-1 {
			c.Cursor++
		}
		return c, nil
	case " ", "space":
		if c.Cursor >= 0 && c.Cursor < len(c.Choices) {
			c.Toggle(c.Choices[c.Cursor].Letter)
		}
		return c, nil
	}

	// A single letter key toggles the matching option directly.
	if len(key) == 1 {
		r := key[0]
		switch {
		case r >= 'a' && r <= 'z':
			c.Toggle(string(r - 'a' + 'A'))
		case r >= 'A' && r <= 'Z':
			c.Toggle(string(r))
		}
	}

	return c, nil
}

// Toggle flips the picked state of the given letter. Unknown letters are
// ignored.
func (c *ChoiceList) Toggle(letter string) {
	for i, ch := range c.Choices {
		if ch.Letter == letter {
			if c.picked[letter] {
				delete(c.picked, letter)
			} else {
				c.picked[letter] = true
			}
			c.Cursor = i
			return
		}
	}
}

// Picked returns the picked letters in sorted order.
func (c ChoiceList) Picked() []string {
	out := make([]string, 0, len(c.picked))
	for letter := range c.picked {
		out = append(out, letter)
	}
	sort.Strings(out)
	return out
}

// HasPicked reports whether at least one option is picked.
func (c ChoiceList) HasPicked() bool {
	return len(c.picked) > 0
}

// Reveal freezes the list and colors it against the correct letter set.
func (c *ChoiceList) Reveal(correct []string) {
	c.revealed = true
	c.correct = make(map[string]bool, len(correct))
	for _, letter := range correct {
		c.correct[letter] = true
	}
}

// View renders the choice list.
func (c ChoiceList) View() string {
	var s string
	for i, ch := range c.Choices {
		mark := "[ ]"
		if c.picked[ch.Letter] {
			mark = "[x]"
		}
		prefix := "  "
		if i == c.Cursor && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %s. %s", prefix, mark, ch.Letter, ch.Text)

		if c.revealed {
			switch {
			case c.correct[ch.Letter]:
				s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
			case c.picked[ch.Letter]:
				s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			switch {
			case i == c.Cursor:
				s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
			case c.picked[ch.Letter]:
				s += lipgloss.NewStyle().Foreground(theme.Accent).Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
			}
		}
	}
	return s
}
