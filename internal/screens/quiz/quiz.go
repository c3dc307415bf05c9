package quiz

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"quizdoc/internal/bank"
	sess "quizdoc/internal/quiz"
	"quizdoc/internal/router"
	"quizdoc/internal/screen"
	"quizdoc/internal/screens/summary"
	"quizdoc/internal/store"
	"quizdoc/internal/ui/components"
	"quizdoc/internal/ui/layout"
)

// QuizScreen walks one session question by question.
type QuizScreen struct {
	session *sess.Session
	st      *store.Store // nil disables attempt saving
	source  string

	choices components.ChoiceList
	started time.Time
	elapsed time.Duration

	showingFeedback bool
	lastOutcome     *sess.Outcome
	confirmQuit     bool
	inputErr        string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen positioned on the session's current question.
func New(session *sess.Session, st *store.Store, source string) *QuizScreen {
	s := &QuizScreen{
		session: session,
		st:      st,
		source:  source,
		started: time.Now(),
	}
	if v := session.Current(); v != nil {
		s.choices = choicesFor(v)
	}
	return s
}

// choicesFor builds the option list for one question view.
func choicesFor(v *sess.View) components.ChoiceList {
	choices := lo.Map(v.Question.Options, func(o bank.Option, _ int) components.Choice {
		return components.Choice{Letter: o.Letter, Text: o.Text}
	})
	return components.NewChoiceList(choices)
}

func (s *QuizScreen) Init() tea.Cmd {
	return tickCmd()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-Z", Description: "Toggle"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick()

	case attemptSavedMsg:
		return s.handleSaved(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.session.Phase() == sess.PhaseCompleted {
		return s, nil
	}
	s.elapsed = time.Since(s.started)
	return s, tickCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	// Any key dismisses the feedback overlay.
	if s.showingFeedback {
		return s.advance()
	}

	s.inputErr = ""

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "enter":
		// Nothing picked: submit the highlighted option directly.
		if !s.choices.HasPicked() && len(s.choices.Choices) > 0 {
			s.choices.Toggle(s.choices.Choices[s.choices.Cursor].Letter)
		}
		return s.submit()
	}

	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	return s, cmd
}

// submit grades the picked letters against the current question.
func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	out, err := s.session.Submit(strings.Join(s.choices.Picked(), ""))
	if err != nil {
		s.inputErr = err.Error()
		return s, nil
	}

	s.lastOutcome = out
	if v := s.session.Current(); v != nil {
		s.choices.Reveal(v.Question.Correct)
	}
	s.showingFeedback = true
	return s, nil
}

// advance moves to the next question, or finishes the run after the last one.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.lastOutcome = nil

	v, err := s.session.Advance()
	if err != nil {
		s.inputErr = err.Error()
		return s, nil
	}
	if v == nil {
		return s, s.saveCmd()
	}

	s.choices = choicesFor(v)
	return s, nil
}

// saveCmd grades the completed run and persists the attempt.
func (s *QuizScreen) saveCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := s.session.Results()
		if err != nil {
			return attemptSavedMsg{Err: err}
		}
		if s.st == nil {
			return attemptSavedMsg{Results: res}
		}

		rec := &store.AttemptRecord{
			ID:           uuid.New().String(),
			Source:       s.source,
			TakenAt:      time.Now(),
			Total:        res.TotalQuestions,
			Correct:      res.CorrectCount,
			Score:        res.Score,
			DurationSecs: res.DurationSecs,
			Answers: lo.Map(res.Questions, func(q sess.QuestionResult, _ int) store.AnswerRecord {
				return store.AnswerRecord{
					Index:      q.Index,
					QuestionID: q.ID,
					Title:      q.Title,
					Chosen:     q.Chosen,
					Answer:     q.Answer,
					Correct:    q.Correct,
				}
			}),
		}
		return attemptSavedMsg{Results: res, Err: s.st.Attempts().Save(context.Background(), rec)}
	}
}

func (s *QuizScreen) handleSaved(msg attemptSavedMsg) (screen.Screen, tea.Cmd) {
	if msg.Results == nil {
		// Grading failed; nothing sensible to show.
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	saveNote := ""
	if s.st != nil {
		if msg.Err != nil {
			saveNote = "history not saved: " + msg.Err.Error()
		} else {
			saveNote = "saved to history"
		}
	}

	restart := func() tea.Msg {
		s.session.Restart(0)
		return router.ReplaceScreenMsg{Screen: New(s.session, s.st, s.source)}
	}

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(msg.Results, saveNote, restart),
		}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
