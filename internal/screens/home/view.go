package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"quizdoc/internal/bank"
	"quizdoc/internal/store"
	"quizdoc/internal/ui/components"
	"quizdoc/internal/ui/theme"
)

// Block-letter title (ANSI shadow font).
const bannerFull = ` ██████╗ ██╗   ██╗██╗███████╗██████╗  ██████╗  ██████╗
██╔═══██╗██║   ██║██║╚══███╔╝██╔══██╗██╔═══██╗██╔════╝
██║   ██║██║   ██║██║  ███╔╝ ██║  ██║██║   ██║██║
██║▄▄ ██║██║   ██║██║ ███╔╝  ██║  ██║██║   ██║██║
╚██████╔╝╚██████╔╝██║███████╗██████╔╝╚██████╔╝╚██████╗
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═════╝  ╚═════╝  ╚═════╝`

const bannerCompact = "Q · U · I · Z · D · O · C"

// renderBanner returns the styled title block or compact fallback.
func renderBanner(cw int, compact bool) string {
	art := bannerFull
	if compact {
		art = bannerCompact
	}
	return theme.Title.Width(cw).Render(art)
}

// renderDocCard renders the loaded document summary in a bordered card.
func renderDocCard(source string, accepted int, report *bank.Report, cw int) string {
	srcStyle := lipgloss.NewStyle().Foreground(theme.Text)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	srcLine := srcStyle.Render(source)

	counts := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("%d accepted", accepted))
	if report != nil && report.Rejected > 0 {
		counts += dimStyle.Render("  ·  ") +
			lipgloss.NewStyle().Foreground(theme.Error).
				Render(fmt.Sprintf("%d rejected", report.Rejected))
	}
	if report != nil && len(report.Warnings) > 0 {
		counts += dimStyle.Render("  ·  ") +
			lipgloss.NewStyle().Foreground(theme.Accent).
				Render(fmt.Sprintf("%d warnings", len(report.Warnings)))
	}

	inner := lipgloss.NewStyle().Width(cw - 4).Align(lipgloss.Center).
		Render(srcLine + "\n" + counts)
	return components.Card(inner, cw)
}

// renderStatsLine renders past attempt aggregates.
func renderStatsLine(stats store.StatsSummary, cw int) string {
	text := fmt.Sprintf("▶ %d attempts   ★ best %d   Ø avg %.0f",
		stats.Attempts, stats.BestScore, stats.AvgScore)
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderCountLine renders the question count, either static or as the live
// edit input.
func (h *HomeScreen) renderCountLine(cw int) string {
	var line string
	if h.mode == modeEditCount {
		line = theme.Body.Render("Questions per run: ") + h.input.View()
	} else {
		line = theme.Body.Render(fmt.Sprintf("Questions per run: %d", h.count)) +
			theme.Hint.Render("  (c to change)")
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(line)
}
