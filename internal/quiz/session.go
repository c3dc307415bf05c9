// Package quiz runs one practice session over a question pool: it draws a
// random non-repeating subset, walks it question by question, grades
// submitted answers and produces the final results.
//
// A Session is owned by a single goroutine; nothing here locks.
package quiz

import (
	"math/rand/v2"
	"time"

	"quizdoc/internal/bank"
)

// Phase is the lifecycle state of a Session.
type Phase int

const (
	// PhaseNotStarted means the subset is drawn but no answer was accepted yet.
	PhaseNotStarted Phase = iota

	// PhaseInProgress means at least one answer was accepted.
	PhaseInProgress

	// PhaseCompleted means the session advanced past its last question.
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// Session drives one quiz run over a fixed subset of a pool.
type Session struct {
	pool      bank.Pool
	requested int

	selected []bank.Question
	answers  [][]string // per selected question, nil until answered
	current  int
	phase    Phase

	startedAt   time.Time
	completedAt time.Time

	rng *rand.Rand
	now func() time.Time
}

// SessionOption configures a Session at construction time.
type SessionOption func(*Session)

// WithRand injects the random source used for drawing subsets, for
// reproducible runs (tests, the --seed flag).
func WithRand(r *rand.Rand) SessionOption {
	return func(s *Session) { s.rng = r }
}

// WithNow injects the clock behind the started/completed timestamps.
func WithNow(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession draws a random subset of the pool and returns a session
// positioned on its first question, not yet started. The requested size is
// clamped to [1, len(pool)]. An empty pool is the only construction error.
func NewSession(pool bank.Pool, requested int, opts ...SessionOption) (*Session, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	s := &Session{pool: pool, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	s.reset(requested)
	return s, nil
}

// reset draws a fresh subset and rewinds all per-run state.
func (s *Session) reset(requested int) {
	if requested < 1 {
		requested = 1
	}
	if requested > len(s.pool) {
		requested = len(s.pool)
	}
	s.requested = requested
	s.selected = drawSubset(s.pool, requested, s.rng)
	s.answers = make([][]string, requested)
	s.current = 0
	s.phase = PhaseNotStarted
	s.startedAt = time.Time{}
	s.completedAt = time.Time{}
}

// Restart abandons the current run and draws a fresh subset from the same
// pool. A requested size <= 0 keeps the previous size.
func (s *Session) Restart(requested int) {
	if requested <= 0 {
		requested = s.requested
	}
	s.reset(requested)
}

// drawSubset picks n distinct questions by uniform pick-and-remove over a
// scratch index slice. Distinct means distinct pool positions; the subset
// never repeats a question within one run.
func drawSubset(pool bank.Pool, n int, rng *rand.Rand) []bank.Question {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	out := make([]bank.Question, 0, n)
	for len(out) < n {
		j := rng.IntN(len(idx))
		out = append(out, pool[idx[j]])
		idx[j] = idx[len(idx)-1]
		idx = idx[:len(idx)-1]
	}
	return out
}

// View is one question as presented to the answering side, with its position
// in the run.
type View struct {
	Question *bank.Question
	Index    int // 0-based position in the run
	Total    int
	Last     bool
}

// Phase returns the session's lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Size returns the number of questions drawn for this run.
func (s *Session) Size() int { return len(s.selected) }

// Current returns the question the session is positioned on, or nil once the
// session has completed.
func (s *Session) Current() *View {
	if s.phase == PhaseCompleted {
		return nil
	}
	return s.view(s.current)
}

func (s *Session) view(i int) *View {
	return &View{
		Question: &s.selected[i],
		Index:    i,
		Total:    len(s.selected),
		Last:     i == len(s.selected)-1,
	}
}

// Advance moves to the next question, or completes the session when the
// current question was the last: then it stamps the completion time and
// returns (nil, nil). Advancing is only legal while in progress; a
// not-started session has accepted nothing to move past, and a completed one
// has nowhere to go.
func (s *Session) Advance() (*View, error) {
	if s.phase != PhaseInProgress {
		return nil, &ErrInvalidState{Op: "advance", Phase: s.phase}
	}
	if s.current+1 < len(s.selected) {
		s.current++
		return s.view(s.current), nil
	}
	s.phase = PhaseCompleted
	s.completedAt = s.now()
	return nil, nil
}
