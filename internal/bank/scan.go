package bank

import "strings"

// The document grammar is line-oriented. Each classifier below recognizes one
// line form; the scanner walks the document exactly once and never looks
// ahead further than the current line.

// rawBlock is one question block as it appears in the document: the number
// from its heading, its 1-based position among detected blocks, and the lines
// between the heading and the block terminator.
type rawBlock struct {
	number  string
	ordinal int
	lines   []string
}

// headingNumber extracts the question number from a heading line such as
// "## Question 001" or "### question 12 - Geography". It returns ok=false
// for non-headings and for headings about anything else.
func headingNumber(line string) (string, bool) {
	if line == "" || line[0] != '#' {
		return "", false
	}
	rest := strings.TrimSpace(strings.TrimLeft(line, "#"))
	const word = "question"
	if len(rest) <= len(word) || !strings.EqualFold(rest[:len(word)], word) {
		return "", false
	}
	rest = rest[len(word):]
	i := 0
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	if i == 0 {
		return "", false
	}
	j := i
	for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
		j++
	}
	if j == i {
		return "", false
	}
	return rest[i:j], true
}

// isRule reports whether the line is a section rule: three or more of the
// same divider character and nothing else.
func isRule(line string) bool {
	t := strings.TrimSpace(line)
	if len(t) < 3 {
		return false
	}
	c := t[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for i := 1; i < len(t); i++ {
		if t[i] != c {
			return false
		}
	}
	return true
}

// emphasisMarker returns the emphasis run the string starts with, longest
// match first, or "" when it starts with none.
func emphasisMarker(s string) string {
	switch {
	case strings.HasPrefix(s, "**"):
		return "**"
	case strings.HasPrefix(s, "*"):
		return "*"
	case strings.HasPrefix(s, "__"):
		return "__"
	case strings.HasPrefix(s, "_"):
		return "_"
	}
	return ""
}

// optionParts splits an option line into its letter and text. An option line
// is an uppercase letter followed by "." or ")" and then the option text,
// with optional emphasis around the label: "A. Paris", "B) London",
// "**C.** Berlin" and "*D)* Madrid" all parse. The separator must be followed
// by whitespace or end the line, so a sentence like "B.C. has forests" is not
// an option. Empty text still counts as option-shaped; validation rejects it
// later with a better message than a boundary mismatch would give.
func optionParts(line string) (letter, text string, ok bool) {
	t := strings.TrimSpace(line)
	marker := emphasisMarker(t)
	t = t[len(marker):]
	if t == "" {
		return "", "", false
	}
	c := t[0]
	if c < 'A' || c > 'Z' {
		return "", "", false
	}
	rest := t[1:]
	if marker != "" {
		rest = strings.TrimPrefix(rest, marker)
	}
	if rest == "" || (rest[0] != '.' && rest[0] != ')') {
		return "", "", false
	}
	rest = rest[1:]
	if marker != "" {
		rest = strings.TrimPrefix(rest, marker)
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", "", false
	}
	return string(c), strings.TrimSpace(rest), true
}

const controlToken = "<control"

// controlLetters extracts the correct-answer letters from the first control
// marker in the line, e.g. <control message="B" additional="C">. The found
// result reports whether a marker exists at all; the letter slice can be
// empty when the marker carries no usable attribute values. Letters are
// case-folded to upper and de-duplicated, message attribute first.
func controlLetters(line string) (letters []string, found bool) {
	start := strings.Index(line, controlToken)
	if start < 0 {
		return nil, false
	}
	tag := line[start+len(controlToken):]
	if tag != "" && tag[0] != ' ' && tag[0] != '\t' && tag[0] != '>' && tag[0] != '/' {
		return nil, false
	}
	if end := strings.IndexByte(tag, '>'); end >= 0 {
		tag = tag[:end]
	}
	seen := make(map[rune]bool)
	for _, name := range []string{"message", "additional"} {
		v, ok := attrValue(tag, name)
		if !ok {
			continue
		}
		for _, r := range strings.ToUpper(v) {
			if r >= 'A' && r <= 'Z' && !seen[r] {
				seen[r] = true
				letters = append(letters, string(r))
			}
		}
	}
	return letters, true
}

// attrValue finds name="value" (single or double quotes) inside a tag body.
// An unterminated quote takes the rest of the tag.
func attrValue(tag, name string) (string, bool) {
	rest := tag
	for {
		idx := strings.Index(rest, name)
		if idx < 0 {
			return "", false
		}
		if idx > 0 && rest[idx-1] != ' ' && rest[idx-1] != '\t' {
			rest = rest[idx+len(name):]
			continue
		}
		after := strings.TrimLeft(rest[idx+len(name):], " \t")
		if after == "" || after[0] != '=' {
			rest = rest[idx+len(name):]
			continue
		}
		after = strings.TrimLeft(after[1:], " \t")
		if after == "" || (after[0] != '"' && after[0] != '\'') {
			rest = rest[idx+len(name):]
			continue
		}
		quote := after[0]
		val := after[1:]
		if end := strings.IndexByte(val, quote); end >= 0 {
			return val[:end], true
		}
		return val, true
	}
}

// splitBlocks walks the document line by line and groups it into question
// blocks. Lines before the first question heading are preamble and skipped.
// A question heading opens a new block; any other heading or a section rule
// closes the current one.
func splitBlocks(doc string) []rawBlock {
	var blocks []rawBlock
	var cur *rawBlock
	flush := func() {
		if cur != nil {
			cur.ordinal = len(blocks) + 1
			blocks = append(blocks, *cur)
			cur = nil
		}
	}
	for _, line := range strings.Split(doc, "\n") {
		t := strings.TrimSpace(line)
		if num, ok := headingNumber(t); ok {
			flush()
			cur = &rawBlock{number: num}
			continue
		}
		if cur == nil {
			continue
		}
		if strings.HasPrefix(t, "#") || isRule(t) {
			flush()
			continue
		}
		cur.lines = append(cur.lines, line)
	}
	flush()
	return blocks
}

// bodyEnd returns the index of the first line that ends the question body:
// the first option line or the first line carrying a control marker. If
// neither occurs the body runs to the end of the block.
//
// This is the only place the body/option boundary is decided.
func bodyEnd(lines []string) int {
	for i, line := range lines {
		if _, found := controlLetters(line); found {
			return i
		}
		if _, _, ok := optionParts(line); ok {
			return i
		}
	}
	return len(lines)
}
