package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"quizdoc/internal/ui/theme"
)

// ProgressBar is a horizontal fill bar with an optional label on the left
// and an optional percentage readout on the right.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// View renders the bar at its configured width.
func (p ProgressBar) View() string {
	label := ""
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	reserved := lipgloss.Width(label)
	if p.ShowPercent {
		reserved += 6
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	track := max(p.Width-reserved, 4)
	filled := min(max(int(float64(track)*p.Percent), 0), track)

	fill := lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	rest := lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", track-filled))
	return label + fill + rest + suffix
}
