package home

import (
	"context"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"quizdoc/internal/bank"
	"quizdoc/internal/quiz"
	"quizdoc/internal/router"
	"quizdoc/internal/screen"
	"quizdoc/internal/screens/history"
	quizscreen "quizdoc/internal/screens/quiz"
	"quizdoc/internal/store"
	"quizdoc/internal/ui/components"
	"quizdoc/internal/ui/layout"
)

type mode int

const (
	modeMenu mode = iota
	modeEditCount
)

// HomeScreen is the main entry screen: document info, question count and the
// start/history menu.
type HomeScreen struct {
	pool     bank.Pool
	report   *bank.Report
	source   string
	st       *store.Store // nil when history is unavailable
	sessOpts []quiz.SessionOption

	count int
	mode  mode
	input components.TextInput
	menu  components.Menu
	stats store.StatsSummary
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. The count is clamped to the pool size; a nil
// store disables the history entry.
func New(pool bank.Pool, report *bank.Report, source string, count int, st *store.Store, sessOpts ...quiz.SessionOption) *HomeScreen {
	if count < 1 {
		count = 1
	}
	if count > len(pool) && len(pool) > 0 {
		count = len(pool)
	}

	h := &HomeScreen{
		pool:     pool,
		report:   report,
		source:   source,
		st:       st,
		sessOpts: sessOpts,
		count:    count,
	}

	if st != nil {
		if s, err := st.Attempts().Stats(context.Background()); err == nil {
			h.stats = s
		}
	}

	items := []components.MenuItem{
		{Label: "START QUIZ", Disabled: len(pool) == 0, Action: func() tea.Cmd {
			return func() tea.Msg {
				sess, err := quiz.NewSession(h.pool, h.count, h.sessOpts...)
				if err != nil {
					return nil
				}
				return router.PushScreenMsg{Screen: quizscreen.New(sess, h.st, h.source)}
			}
		}},
		{Label: "HISTORY", Disabled: st == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.st)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)

	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.mode == modeEditCount {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "C", Description: "Count"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if h.mode == modeEditCount {
		return h.updateEditCount(msg)
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "c", "C":
			h.mode = modeEditCount
			h.input = components.NewTextInput(strconv.Itoa(h.count), true, 3)
			return h, h.input.Init()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) updateEditCount(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			n, err := h.input.NumericValue()
			if err != nil || n < 1 {
				h.input.Submit(false)
				return h, nil
			}
			if n > len(h.pool) {
				n = len(h.pool)
			}
			h.count = n
			h.mode = modeMenu
			return h, nil
		case "esc":
			h.mode = modeMenu
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height by adding
	// back header (3) + footer (3) + frame gaps.
	termHeight := height + 8
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderBanner(cw, compact))
	sections = append(sections, renderDocCard(h.source, len(h.pool), h.report, cw))

	if h.stats.Attempts > 0 {
		sections = append(sections, renderStatsLine(h.stats, cw))
	}

	sections = append(sections, h.renderCountLine(cw))
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	return components.Center(content, width, height)
}
