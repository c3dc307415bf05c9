package quiz

import (
	"errors"
	"fmt"
)

// ErrEmptyPool is returned by NewSession when the pool has no questions to
// draw from.
var ErrEmptyPool = errors.New("quiz: cannot start a session on an empty pool")

// ErrInvalidState means an operation was called in a phase that does not
// allow it, e.g. asking for results while still in progress.
type ErrInvalidState struct {
	Op    string
	Phase Phase
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("quiz: %s not allowed while %s", e.Op, e.Phase)
}

// ErrMalformedAnswer means the input cannot be an answer at all: empty,
// longer than the input cap, or containing anything outside A-Z.
type ErrMalformedAnswer struct {
	Input  string
	Reason string
}

func (e *ErrMalformedAnswer) Error() string {
	return fmt.Sprintf("quiz: malformed answer %q: %s", e.Input, e.Reason)
}

// ErrUnknownOption means a well-formed letter names no option on the current
// question.
type ErrUnknownOption struct {
	Letter string
}

func (e *ErrUnknownOption) Error() string {
	return fmt.Sprintf("quiz: option %s does not exist on this question", e.Letter)
}
