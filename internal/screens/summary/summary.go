package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quizdoc/internal/quiz"
	"quizdoc/internal/router"
	"quizdoc/internal/screen"
	"quizdoc/internal/ui/layout"
	"quizdoc/internal/ui/theme"
)

// SummaryScreen displays the graded run: score, per-question review and the
// retry entry point.
type SummaryScreen struct {
	results  *quiz.Results
	saveNote string
	restart  tea.Cmd // replaces this screen with a fresh run when set

	cursor int
	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(results *quiz.Results, saveNote string, restart tea.Cmd) *SummaryScreen {
	return &SummaryScreen{
		results:  results,
		saveNote: saveNote,
		restart:  restart,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Review"},
		{Key: "R", Description: "New run"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.results != nil && s.cursor < len(s.results.Questions)-1 {
			s.cursor++
		}
	case "r", "R":
		if s.restart != nil {
			return s, s.restart
		}
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.results
	if res == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	scoreStyle := theme.Correct
	if res.Score < 50 {
		scoreStyle = theme.Incorrect
	} else if res.Score < 80 {
		scoreStyle = scoreStyle.Foreground(theme.Accent)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		scoreStyle.Render(fmt.Sprintf("Score: %d", res.Score))))
	b.WriteString("\n")

	mins := res.DurationSecs / 60
	secs := res.DurationSecs % 60
	statsLine := fmt.Sprintf("Correct: %d/%d        Time: %d:%02d",
		res.CorrectCount, res.TotalQuestions, mins, secs)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	if s.saveNote != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(s.saveNote))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	b.WriteString(s.renderReview(width, height))

	return b.String()
}

// renderReview renders a scrollable window over the per-question rows. The
// selected row expands to show the chosen and correct option texts.
func (s *SummaryScreen) renderReview(width, height int) string {
	res := s.results

	visible := height - 12
	if visible < 3 {
		visible = 3
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}
	end := s.offset + visible
	if end > len(res.Questions) {
		end = len(res.Questions)
	}

	var b strings.Builder
	for i := s.offset; i < end; i++ {
		qr := res.Questions[i]

		icon := lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		if qr.Correct {
			icon = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		}

		chosen := strings.Join(qr.Chosen, ",")
		if chosen == "" {
			chosen = "—"
		}
		answer := strings.Join(qr.Answer, ",")

		prefix := "  "
		if i == s.cursor {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s %s    yours: %-4s  answer: %s",
			prefix, icon, qr.Title, chosen, answer)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.cursor {
			style = theme.Selected
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if i == s.cursor {
			detail := "answer: " + strings.Join(qr.AnswerTexts, " / ")
			if len(qr.ChosenTexts) > 0 && !qr.Correct {
				detail = "yours: " + strings.Join(qr.ChosenTexts, " / ") + "    " + detail
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+detail)))
			b.WriteString("\n")
		}
	}

	if len(res.Questions) > visible {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(fmt.Sprintf("%d-%d of %d", s.offset+1, end, len(res.Questions))))
		b.WriteString("\n")
	}

	return b.String()
}
