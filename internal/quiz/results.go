package quiz

import (
	"math"

	"quizdoc/internal/bank"
)

// QuestionResult is the graded detail for one question of a completed run.
type QuestionResult struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`

	// Chosen holds the submitted letters, nil when the question was never
	// answered; ChosenTexts resolves them to option texts, index-aligned.
	Chosen      []string `json:"chosen"`
	ChosenTexts []string `json:"chosen_texts"`

	// Answer holds the correct letters, AnswerTexts their option texts.
	Answer      []string `json:"answer"`
	AnswerTexts []string `json:"answer_texts"`

	Correct bool `json:"correct"`
}

// Results is the final outcome of a completed session.
type Results struct {
	// Score is round(100 * CorrectCount / TotalQuestions), 0-100.
	Score          int `json:"score"`
	CorrectCount   int `json:"correct_count"`
	TotalQuestions int `json:"total_questions"`

	// DurationSecs spans first accepted answer to completion. Zero when the
	// clock never started.
	DurationSecs int `json:"duration_secs"`

	Questions []QuestionResult `json:"questions"`
}

// Results grades the finished run. Only a completed session has results;
// asking earlier is a state error. Unanswered questions count as incorrect.
func (s *Session) Results() (*Results, error) {
	if s.phase != PhaseCompleted {
		return nil, &ErrInvalidState{Op: "results", Phase: s.phase}
	}
	res := &Results{
		TotalQuestions: len(s.selected),
		Questions:      make([]QuestionResult, len(s.selected)),
	}
	for i := range s.selected {
		q := &s.selected[i]
		chosen := s.answers[i]
		qr := QuestionResult{
			Index:       i,
			ID:          q.ID,
			Title:       q.Title,
			Content:     q.Content,
			Chosen:      chosen,
			ChosenTexts: optionTexts(q, chosen),
			Answer:      q.Correct,
			AnswerTexts: optionTexts(q, q.Correct),
			Correct:     chosen != nil && setEqual(chosen, q.Correct),
		}
		if qr.Correct {
			res.CorrectCount++
		}
		res.Questions[i] = qr
	}
	res.Score = int(math.Round(100 * float64(res.CorrectCount) / float64(res.TotalQuestions)))
	if !s.startedAt.IsZero() {
		res.DurationSecs = int(math.Round(s.completedAt.Sub(s.startedAt).Seconds()))
	}
	return res, nil
}

// optionTexts resolves letters to their option texts. Letters stored on a
// session were validated against the question, so lookups cannot miss.
func optionTexts(q *bank.Question, letters []string) []string {
	if letters == nil {
		return nil
	}
	texts := make([]string, len(letters))
	for i, letter := range letters {
		texts[i], _ = q.OptionText(letter)
	}
	return texts
}
