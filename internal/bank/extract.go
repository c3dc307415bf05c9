package bank

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// candidate is one extracted question block before validation.
type candidate struct {
	number  string
	ordinal int
	content string
	options []Option
	correct []string
	marker  bool // whether the block contained a control marker at all
}

// extract runs the field-extraction pass over one raw block. It never fails;
// whatever it could not find is left zero for validation to judge.
func extract(raw rawBlock) candidate {
	c := candidate{number: raw.number, ordinal: raw.ordinal}
	cut := bodyEnd(raw.lines)
	c.content = strings.TrimSpace(strings.Join(raw.lines[:cut], "\n"))

	seen := make(map[string]bool)
	for _, line := range raw.lines[cut:] {
		if letters, found := controlLetters(line); found {
			// Only the first marker in a block is authoritative.
			if !c.marker {
				c.marker = true
				c.correct = letters
			}
			continue
		}
		letter, text, ok := optionParts(line)
		if !ok || seen[letter] {
			continue
		}
		seen[letter] = true
		c.options = append(c.options, Option{Letter: letter, Text: text})
	}
	sort.Strings(c.correct)
	return c
}

// padNumber zero-pads a question number to at least three digits, preserving
// longer numbers as written.
func padNumber(num string) string {
	n, err := strconv.Atoi(num)
	if err != nil {
		return num
	}
	return fmt.Sprintf("%03d", n)
}

// buildQuestion turns an accepted candidate into its immutable Question.
func buildQuestion(c candidate) Question {
	id := padNumber(c.number)
	return Question{
		ID:      id,
		Title:   "Question " + id,
		Content: c.content,
		Options: c.options,
		Correct: c.correct,
	}
}
