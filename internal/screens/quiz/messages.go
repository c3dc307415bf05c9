package quiz

import (
	"time"

	sess "quizdoc/internal/quiz"
)

// timerTickMsg is sent every second to update the elapsed display.
type timerTickMsg time.Time

// attemptSavedMsg reports the attempt persistence outcome once the run is
// graded, right before the summary is shown.
type attemptSavedMsg struct {
	Results *sess.Results
	Err     error
}
