package home

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"quizdoc/internal/bank"
	"quizdoc/internal/router"
	quizscreen "quizdoc/internal/screens/quiz"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testPool(n int) bank.Pool {
	pool := make(bank.Pool, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("%03d", i)
		pool = append(pool, bank.Question{
			ID:      id,
			Title:   "Question " + id,
			Content: fmt.Sprintf("What is the answer to number %d?", i),
			Options: []bank.Option{
				{Letter: "A", Text: "alpha"},
				{Letter: "B", Text: "bravo"},
			},
			Correct: []string{"A"},
		})
	}
	return pool
}

func testHome(poolSize, count int) *HomeScreen {
	return New(testPool(poolSize), &bank.Report{Blocks: poolSize, Accepted: poolSize}, "test.md", count, nil)
}

func TestHomeScreen_Title(t *testing.T) {
	h := testHome(5, 3)
	if h.Title() != "Home" {
		t.Errorf("Title = %q, want %q", h.Title(), "Home")
	}
}

func TestHomeScreen_CountClamped(t *testing.T) {
	if h := testHome(5, 0); h.count != 1 {
		t.Errorf("count = %d, want clamp to 1", h.count)
	}
	if h := testHome(5, 99); h.count != 5 {
		t.Errorf("count = %d, want clamp to pool size 5", h.count)
	}
}

func TestHomeScreen_StartQuiz(t *testing.T) {
	h := testHome(5, 3)

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from START QUIZ")
	}
	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want PushScreenMsg", msg)
	}
	if _, ok := push.Screen.(*quizscreen.QuizScreen); !ok {
		t.Errorf("pushed screen = %T, want *quizscreen.QuizScreen", push.Screen)
	}
}

func TestHomeScreen_HistoryDisabledWithoutStore(t *testing.T) {
	h := testHome(5, 3)

	// Down skips the disabled history entry and lands on quit.
	h.Update(keyPress('j'))
	if h.menu.Selected != 2 {
		t.Errorf("selected = %d, want 2 (quit)", h.menu.Selected)
	}
}

func TestHomeScreen_EditCount(t *testing.T) {
	h := testHome(5, 3)

	h.Update(keyPress('c'))
	if h.mode != modeEditCount {
		t.Fatal("expected edit mode after c")
	}

	h.Update(keyPress('2'))
	h.Update(specialKey(tea.KeyEnter))
	if h.mode != modeMenu {
		t.Fatal("expected menu mode after enter")
	}
	if h.count != 2 {
		t.Errorf("count = %d, want 2", h.count)
	}
}

func TestHomeScreen_EditCountClampsToPool(t *testing.T) {
	h := testHome(5, 3)

	h.Update(keyPress('c'))
	h.Update(keyPress('9'))
	h.Update(keyPress('9'))
	h.Update(specialKey(tea.KeyEnter))

	if h.count != 5 {
		t.Errorf("count = %d, want clamp to pool size 5", h.count)
	}
}

func TestHomeScreen_EditCountRejectsEmpty(t *testing.T) {
	h := testHome(5, 3)

	h.Update(keyPress('c'))
	h.Update(specialKey(tea.KeyEnter))

	if h.mode != modeEditCount {
		t.Error("empty input should keep edit mode open")
	}
	if h.count != 3 {
		t.Errorf("count = %d, want unchanged 3", h.count)
	}
}

func TestHomeScreen_EditCountEsc(t *testing.T) {
	h := testHome(5, 3)

	h.Update(keyPress('c'))
	h.Update(specialKey(tea.KeyEscape))

	if h.mode != modeMenu {
		t.Error("esc should cancel count editing")
	}
}

func TestHomeScreen_View(t *testing.T) {
	h := testHome(5, 3)
	if h.View(80, 24) == "" {
		t.Error("expected non-empty view")
	}
}

func TestHomeScreen_KeyHints(t *testing.T) {
	h := testHome(5, 3)
	if len(h.KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}

	h.Update(keyPress('c'))
	hints := h.KeyHints()
	if len(hints) != 2 {
		t.Errorf("edit mode hints = %d, want 2", len(hints))
	}
}
