package quiz

import (
	"fmt"
	"sort"
)

// maxAnswerLen caps raw answer input before any normalization.
const maxAnswerLen = 10

// Outcome is the immediate feedback for one submitted answer.
type Outcome struct {
	// Correct reports exact set equality between the chosen letters and the
	// question's correct letters. No partial credit.
	Correct bool

	// Index is the position of the answered question in the run.
	Index int
}

// Submit grades an answer for the current question. The input is a string of
// uppercase option letters, e.g. "A" or "CB"; order and repetition carry no
// meaning. Submitting again before advancing overwrites the previous answer.
// The first accepted answer starts the session clock and moves the session
// into progress.
func (s *Session) Submit(input string) (*Outcome, error) {
	if s.phase == PhaseCompleted {
		return nil, &ErrInvalidState{Op: "submit", Phase: s.phase}
	}
	letters, reason := parseAnswer(input)
	if reason != "" {
		return nil, &ErrMalformedAnswer{Input: input, Reason: reason}
	}
	q := &s.selected[s.current]
	for _, letter := range letters {
		if !q.HasOption(letter) {
			return nil, &ErrUnknownOption{Letter: letter}
		}
	}
	if s.phase == PhaseNotStarted {
		s.phase = PhaseInProgress
		s.startedAt = s.now()
	}
	s.answers[s.current] = letters
	return &Outcome{Correct: setEqual(letters, q.Correct), Index: s.current}, nil
}

// parseAnswer normalizes raw input to a sorted set of single letters and
// returns a non-empty reason when the input is malformed.
func parseAnswer(input string) ([]string, string) {
	if input == "" {
		return nil, "empty"
	}
	runes := []rune(input)
	if len(runes) > maxAnswerLen {
		return nil, fmt.Sprintf("longer than %d characters", maxAnswerLen)
	}
	seen := make(map[rune]bool)
	letters := make([]string, 0, len(runes))
	for _, r := range runes {
		if r < 'A' || r > 'Z' {
			return nil, fmt.Sprintf("%q is not an option letter", r)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		letters = append(letters, string(r))
	}
	sort.Strings(letters)
	return letters, ""
}

// setEqual compares two sorted letter slices as sets.
func setEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
