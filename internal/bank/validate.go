package bank

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Acceptance limits. Lengths are counted in runes so multi-byte text is
// measured the way an author sees it.
const (
	minContentLen = 10
	maxContentLen = 2000
	minOptions    = 2
	maxOptions    = 8
	maxOptionLen  = 500
)

// Rule identifiers carried in Rejection.Rule.
const (
	RuleContentLength = "content-length"
	RuleOptionCount   = "option-count"
	RuleOptionText    = "option-text"
	RuleAnswerMissing = "answer-missing"
	RuleAnswerUnknown = "answer-unknown"
)

// checkCandidate applies the acceptance rules in order and returns the first
// violation, or nil when the candidate is a valid question.
func checkCandidate(c candidate) *Rejection {
	if n := utf8.RuneCountInString(c.content); n < minContentLen || n > maxContentLen {
		return c.reject(RuleContentLength, preview(c.content),
			fmt.Sprintf("content is %d characters, want %d-%d", n, minContentLen, maxContentLen))
	}
	if n := len(c.options); n < minOptions || n > maxOptions {
		return c.reject(RuleOptionCount, strconv.Itoa(n),
			fmt.Sprintf("%d options, want %d-%d", n, minOptions, maxOptions))
	}
	for _, opt := range c.options {
		if opt.Text == "" {
			return c.reject(RuleOptionText, opt.Letter,
				fmt.Sprintf("option %s has no text", opt.Letter))
		}
		if n := utf8.RuneCountInString(opt.Text); n > maxOptionLen {
			return c.reject(RuleOptionText, opt.Letter,
				fmt.Sprintf("option %s is %d characters, max %d", opt.Letter, n, maxOptionLen))
		}
	}
	if len(c.correct) == 0 {
		detail := "control marker carries no answer letters"
		if !c.marker {
			detail = "no control marker in block"
		}
		return c.reject(RuleAnswerMissing, "", detail)
	}
	for _, letter := range c.correct {
		if !hasLetter(c.options, letter) {
			return c.reject(RuleAnswerUnknown, letter,
				fmt.Sprintf("answer letter %s is not one of the options", letter))
		}
	}
	return nil
}

func (c candidate) reject(rule, value, detail string) *Rejection {
	return &Rejection{Number: c.number, Rule: rule, Value: value, Detail: detail}
}

func hasLetter(opts []Option, letter string) bool {
	for _, opt := range opts {
		if opt.Letter == letter {
			return true
		}
	}
	return false
}

// preview truncates long offending values so reports stay readable.
func preview(s string) string {
	const max = 80
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
