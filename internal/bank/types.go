package bank

// Option is a single answer choice within a question.
type Option struct {
	// Letter is the option label, a single uppercase letter "A" through "Z".
	Letter string `json:"letter"`

	// Text is the option's display text, with any emphasis markers that
	// wrapped the label stripped off.
	Text string `json:"text"`
}

// Question is one validated multiple-choice question extracted from a quiz
// document. Questions are immutable once parsed; the session layer copies
// what it needs and never writes back.
type Question struct {
	// ID is the question number from the document heading, zero-padded to at
	// least three digits: "1" becomes "001", "1234" stays "1234".
	ID string `json:"id"`

	// Title is the display heading derived from the ID, e.g. "Question 001".
	Title string `json:"title"`

	// Content is the question body: the lines between the heading and the
	// first option or control marker, joined with newlines and trimmed.
	Content string `json:"content"`

	// Options holds the answer choices in order of first appearance in the
	// document. Between 2 and 8 entries.
	Options []Option `json:"options"`

	// Correct holds the correct option letters, sorted and de-duplicated.
	// Never empty, and always a subset of the letters in Options.
	Correct []string `json:"correct"`
}

// OptionText returns the text of the option with the given letter.
func (q *Question) OptionText(letter string) (string, bool) {
	for _, opt := range q.Options {
		if opt.Letter == letter {
			return opt.Text, true
		}
	}
	return "", false
}

// HasOption reports whether the question offers the given letter.
func (q *Question) HasOption(letter string) bool {
	_, ok := q.OptionText(letter)
	return ok
}

// Letters returns the option letters in display order.
func (q *Question) Letters() []string {
	letters := make([]string, len(q.Options))
	for i, opt := range q.Options {
		letters[i] = opt.Letter
	}
	return letters
}

// IsMulti reports whether the question requires more than one letter.
func (q *Question) IsMulti() bool {
	return len(q.Correct) > 1
}

// Pool is the ordered set of questions accepted from one document.
// Order follows the document; numbers are kept as written, never reassigned.
type Pool []Question
