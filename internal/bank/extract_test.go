package bank

import (
	"reflect"
	"testing"
)

func block(number string, lines ...string) rawBlock {
	return rawBlock{number: number, ordinal: 1, lines: lines}
}

func TestExtract_BodyOptionsControl(t *testing.T) {
	c := extract(block("001",
		"",
		"What is the capital of France?",
		"",
		"A. Paris",
		"B. London",
		"",
		`<control message="A">`,
	))

	if c.content != "What is the capital of France?" {
		t.Errorf("content = %q, want the trimmed body", c.content)
	}
	wantOpts := []Option{{Letter: "A", Text: "Paris"}, {Letter: "B", Text: "London"}}
	if !reflect.DeepEqual(c.options, wantOpts) {
		t.Errorf("options = %v, want %v", c.options, wantOpts)
	}
	if !reflect.DeepEqual(c.correct, []string{"A"}) {
		t.Errorf("correct = %v, want [A]", c.correct)
	}
	if !c.marker {
		t.Error("marker = false, want true")
	}
}

func TestExtract_MultilineBody(t *testing.T) {
	c := extract(block("002",
		"First paragraph.",
		"",
		"Second paragraph.",
		"A. yes",
		"B. no",
		`<control message="B">`,
	))

	want := "First paragraph.\n\nSecond paragraph."
	if c.content != want {
		t.Errorf("content = %q, want %q", c.content, want)
	}
}

func TestExtract_DuplicateLetterFirstWins(t *testing.T) {
	c := extract(block("003",
		"Pick a letter, any letter.",
		"A. first",
		"A. second",
		"B. other",
		`<control message="A">`,
	))

	wantOpts := []Option{{Letter: "A", Text: "first"}, {Letter: "B", Text: "other"}}
	if !reflect.DeepEqual(c.options, wantOpts) {
		t.Errorf("options = %v, want first occurrence kept", c.options)
	}
}

func TestExtract_FirstControlMarkerWins(t *testing.T) {
	c := extract(block("004",
		"Two markers, one truth.",
		"A. yes",
		"B. no",
		`<control message="A">`,
		`<control message="B">`,
	))

	if !reflect.DeepEqual(c.correct, []string{"A"}) {
		t.Errorf("correct = %v, want the first marker's [A]", c.correct)
	}
}

func TestExtract_ControlBeforeOptions(t *testing.T) {
	c := extract(block("005",
		"Marker first, options after.",
		`<control message="B">`,
		"A. yes",
		"B. no",
	))

	if c.content != "Marker first, options after." {
		t.Errorf("content = %q, want body cut at the marker", c.content)
	}
	if len(c.options) != 2 {
		t.Errorf("len(options) = %d, want 2", len(c.options))
	}
	if !reflect.DeepEqual(c.correct, []string{"B"}) {
		t.Errorf("correct = %v, want [B]", c.correct)
	}
}

func TestExtract_CorrectLettersSorted(t *testing.T) {
	c := extract(block("006",
		"Sorting of answer letters.",
		"A. one",
		"B. two",
		"C. three",
		`<control message="C" additional="A">`,
	))

	if !reflect.DeepEqual(c.correct, []string{"A", "C"}) {
		t.Errorf("correct = %v, want sorted [A C]", c.correct)
	}
}

func TestExtract_NoMarker(t *testing.T) {
	c := extract(block("007",
		"No marker anywhere here.",
		"A. yes",
		"B. no",
	))

	if c.marker {
		t.Error("marker = true, want false")
	}
	if len(c.correct) != 0 {
		t.Errorf("correct = %v, want empty", c.correct)
	}
}

func TestExtract_InterleavedProseIgnored(t *testing.T) {
	c := extract(block("008",
		"Body text up here.",
		"A. yes",
		"remember: both could apply",
		"B. no",
		`<control message="A">`,
	))

	if len(c.options) != 2 {
		t.Errorf("len(options) = %d, want prose between options ignored", len(c.options))
	}
	if c.content != "Body text up here." {
		t.Errorf("content = %q, want prose after the boundary excluded", c.content)
	}
}

func TestPadNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "001"},
		{"042", "042"},
		{"0042", "042"},
		{"123", "123"},
		{"1234", "1234"},
	}

	for _, tc := range tests {
		if got := padNumber(tc.in); got != tc.want {
			t.Errorf("padNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildQuestion(t *testing.T) {
	q := buildQuestion(candidate{
		number:  "7",
		content: "Which way is up?",
		options: []Option{{Letter: "A", Text: "this way"}, {Letter: "B", Text: "that way"}},
		correct: []string{"A"},
	})

	if q.ID != "007" {
		t.Errorf("ID = %q, want 007", q.ID)
	}
	if q.Title != "Question 007" {
		t.Errorf("Title = %q, want %q", q.Title, "Question 007")
	}
	if q.IsMulti() {
		t.Error("IsMulti = true for a single-answer question")
	}
	if text, ok := q.OptionText("B"); !ok || text != "that way" {
		t.Errorf("OptionText(B) = (%q, %v), want (that way, true)", text, ok)
	}
	if _, ok := q.OptionText("Z"); ok {
		t.Error("OptionText(Z) reported ok for a missing letter")
	}
}
