package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quizdoc/internal/router"
	"quizdoc/internal/screen"
	"quizdoc/internal/store"
	"quizdoc/internal/ui/layout"
	"quizdoc/internal/ui/theme"
)

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Stats    store.StatsSummary
	Hardest  []store.QuestionStat
	Err      error
}

// HistoryScreen lists past attempts with aggregate stats and the questions
// missed most often.
type HistoryScreen struct {
	st       *store.Store
	attempts []store.AttemptRecord
	stats    store.StatsSummary
	hardest  []store.QuestionStat
	selected int
	offset   int
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New builds the screen; data arrives asynchronously via Init.
func New(st *store.Store) *HistoryScreen {
	return &HistoryScreen{st: st}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load
}

// load pulls up to 50 attempts plus the rollups. The rollups are extras; the
// attempt list still shows when they fail.
func (s *HistoryScreen) load() tea.Msg {
	ctx := context.Background()
	repo := s.st.Attempts()

	attempts, err := repo.List(ctx, 50)
	if err != nil {
		return historyLoadedMsg{Err: err}
	}

	msg := historyLoadedMsg{Attempts: attempts}
	if stats, err := repo.Stats(ctx); err == nil {
		msg.Stats = stats
		msg.Hardest, _ = repo.HardestQuestions(ctx, 5)
	}
	return msg
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.attempts = msg.Attempts
		s.stats = msg.Stats
		s.hardest = msg.Hardest
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.moveSelection(-1)
		case "down", "j":
			s.moveSelection(1)
		}
	}
	return s, nil
}

func (s *HistoryScreen) moveSelection(delta int) {
	next := s.selected + delta
	if next >= 0 && next < len(s.attempts) {
		s.selected = next
	}
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	switch {
	case s.errMsg != "":
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dim.Render("Loading history..."))
	case len(s.attempts) == 0:
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dim.Italic(true).Render("No attempts yet. Take a quiz!"))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		dim.Render(fmt.Sprintf("%d attempts · avg score %.0f · best %d",
			s.stats.Attempts, s.stats.AvgScore, s.stats.BestScore))))
	b.WriteString("\n\n")

	s.writeAttemptList(&b, width, height)
	if len(s.hardest) > 0 {
		s.writeHardest(&b, width)
	}
	return b.String()
}

// writeAttemptList renders the scrollable attempt rows, keeping the
// selection inside the visible window.
func (s *HistoryScreen) writeAttemptList(b *strings.Builder, width, height int) {
	visible := max(height-10-len(s.hardest), 3)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}
	end := min(s.offset+visible, len(s.attempts))

	for i := s.offset; i < end; i++ {
		att := s.attempts[i]

		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-20s  score %3d  %d/%d  %d:%02d",
			prefix, att.TakenAt.Format("Jan 02, 2006"), trimSource(att.Source, 20),
			att.Score, att.Correct, att.Total,
			att.DurationSecs/60, att.DurationSecs%60)

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(s.attempts) || s.offset > 0 {
		pager := fmt.Sprintf("%d-%d of %d", s.offset+1, end, len(s.attempts))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(pager)))
		b.WriteString("\n")
	}
}

func (s *HistoryScreen) writeHardest(b *strings.Builder, width int) {
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render("Most missed")))
	b.WriteString("\n")

	for _, qs := range s.hardest {
		line := fmt.Sprintf("%3.0f%% missed  %s  (%d of %d)",
			qs.MissRate*100, qs.Title, qs.Missed, qs.Attempts)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(missColor(qs.MissRate)).Render(line)))
		b.WriteString("\n")
	}
}

func trimSource(src string, limit int) string {
	if len(src) <= limit {
		return src
	}
	return "…" + src[len(src)-limit+1:]
}

func missColor(rate float64) color.Color {
	switch {
	case rate >= 0.5:
		return theme.Error
	case rate >= 0.25:
		return theme.Accent
	default:
		return theme.Text
	}
}
