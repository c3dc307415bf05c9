package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quizdoc/internal/bank"
	"quizdoc/internal/quiz"
	"quizdoc/internal/router"
	"quizdoc/internal/screen"
	"quizdoc/internal/screens/home"
	"quizdoc/internal/store"
	"quizdoc/internal/ui/layout"
)

// Options carries everything the TUI needs to run. Store may be nil,
// which disables attempt history.
type Options struct {
	Pool        bank.Pool
	Report      *bank.Report
	Source      string
	Count       int
	Store       *store.Store
	SessionOpts []quiz.SessionOption
}

// AppModel is the root Bubble Tea model: it owns the terminal size, the
// screen router and the header/footer frame around whatever screen is active.
type AppModel struct {
	router   *router.Router
	width    int
	height   int
	poolSize int
}

func newAppModel(opts Options) AppModel {
	first := home.New(opts.Pool, opts.Report, opts.Source, opts.Count,
		opts.Store, opts.SessionOpts...)
	return AppModel{
		router:   router.New(first),
		poolSize: len(opts.Pool),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc stays with the screens: the quiz asks for confirmation
		// before discarding a run.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.poolSize, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// footerHints asks the active screen for its key hints, falling back to
// defaults based on the stack position.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
