package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"quizdoc/internal/ui/theme"
)

// Minimum terminal size before screens give up and show a resize prompt,
// plus the thresholds below which they switch to denser layouts.
const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is one key binding shown in the footer bar.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether screens should drop to the narrow layout.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight reports whether screens should drop to the short layout.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal is below the supported minimum.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the whole terminal with a resize prompt.
func RenderMinSizeMessage(width, height int) string {
	notice := fmt.Sprintf(
		"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height,
	)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(notice)
}

// bar is the bordered strip shared by the header and the footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader draws the top bar: app name on the left, the active screen
// title centered, and the loaded pool size on the right.
func RenderHeader(title string, poolSize int, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  quizdoc")
	middle := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	noun := "questions"
	if poolSize == 1 {
		noun = "question"
	}
	pool := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(fmt.Sprintf("▤ %d %s", poolSize, noun))

	// The rounded border takes two columns on each side.
	inner := max(width-4, 0)

	gapLeft := max((inner-lipgloss.Width(middle))/2-lipgloss.Width(name), 1)
	gapRight := max(inner-lipgloss.Width(name)-gapLeft-lipgloss.Width(middle)-lipgloss.Width(pool), 1)

	row := name + strings.Repeat(" ", gapLeft) + middle + strings.Repeat(" ", gapRight) + pool
	return bar(width).Render(row)
}

// RenderFooter draws the bottom bar listing the active screen's key hints.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	segs := make([]string, len(hints))
	for i, hint := range hints {
		segs[i] = keyStyle.Render(hint.Key) + " " + descStyle.Render(hint.Description)
	}
	return bar(width).Render("  " + strings.Join(segs, "   "))
}

// RenderFrame stacks header, content and footer, stretching the content to
// fill whatever height the bars leave over.
func RenderFrame(header, content, footer string, width, height int) string {
	fill := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(fill).Render(content)
	return header + "\n" + body + "\n" + footer
}
