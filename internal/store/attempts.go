package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// AttemptRecord is one finished session as persisted.
type AttemptRecord struct {
	ID           string
	Source       string
	TakenAt      time.Time
	Total        int
	Correct      int
	Score        int
	DurationSecs int

	// Answers holds the per-question detail. List leaves it empty; Save
	// writes whatever is present.
	Answers []AnswerRecord
}

// AnswerRecord is the per-question detail of an attempt. Letter slices are
// stored as JSON arrays in their columns.
type AnswerRecord struct {
	Index      int
	QuestionID string
	Title      string
	Chosen     []string
	Answer     []string
	Correct    bool
}

// StatsSummary aggregates the whole attempt history.
type StatsSummary struct {
	Attempts          int
	QuestionsAnswered int
	CorrectAnswers    int
	AvgScore          float64
	BestScore         int
	WorstScore        int
}

// QuestionStat is the per-question miss aggregate behind "hardest questions".
type QuestionStat struct {
	QuestionID string
	Title      string
	Attempts   int
	Missed     int
	MissRate   float64
}

// AttemptRepo manages attempt history.
type AttemptRepo interface {
	// Save stores an attempt with its answer detail, atomically.
	Save(ctx context.Context, rec *AttemptRecord) error

	// List returns the most recent attempts, newest first, without answer
	// detail. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]AttemptRecord, error)

	// Stats aggregates over all stored attempts.
	Stats(ctx context.Context) (StatsSummary, error)

	// HardestQuestions ranks questions by miss rate, most missed first.
	// Questions never missed are excluded.
	HardestQuestions(ctx context.Context, limit int) ([]QuestionStat, error)

	// Clear deletes the entire history.
	Clear(ctx context.Context) error
}

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Save(ctx context.Context, rec *AttemptRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attempts (id, source, taken_at, total, correct, score, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.TakenAt.Unix(), rec.Total, rec.Correct, rec.Score, rec.DurationSecs)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	for _, a := range rec.Answers {
		chosen, err := json.Marshal(a.Chosen)
		if err != nil {
			return fmt.Errorf("marshal chosen: %w", err)
		}
		answer, err := json.Marshal(a.Answer)
		if err != nil {
			return fmt.Errorf("marshal answer: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO attempt_answers (attempt_id, idx, question_id, title, chosen, answer, correct)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, a.Index, a.QuestionID, a.Title, chosen, answer, boolToInt(a.Correct))
		if err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *attemptRepo) List(ctx context.Context, limit int) ([]AttemptRecord, error) {
	q := `SELECT id, source, taken_at, total, correct, score, duration_secs
	      FROM attempts ORDER BY taken_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var rec AttemptRecord
		var takenAt int64
		if err := rows.Scan(&rec.ID, &rec.Source, &takenAt, &rec.Total,
			&rec.Correct, &rec.Score, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.TakenAt = time.Unix(takenAt, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *attemptRepo) Stats(ctx context.Context) (StatsSummary, error) {
	var s StatsSummary
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(total), 0),
		        COALESCE(SUM(correct), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MIN(score), 0)
		 FROM attempts`).
		Scan(&s.Attempts, &s.QuestionsAnswered, &s.CorrectAnswers,
			&s.AvgScore, &s.BestScore, &s.WorstScore)
	if err != nil {
		return StatsSummary{}, fmt.Errorf("stats: %w", err)
	}
	return s, nil
}

func (r *attemptRepo) HardestQuestions(ctx context.Context, limit int) ([]QuestionStat, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT question_id, title, COUNT(*) AS n,
		        SUM(CASE WHEN correct = 0 THEN 1 ELSE 0 END) AS missed
		 FROM attempt_answers
		 GROUP BY question_id, title
		 HAVING missed > 0
		 ORDER BY CAST(missed AS REAL) / COUNT(*) DESC, n DESC, question_id ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("hardest questions: %w", err)
	}
	defer rows.Close()

	var out []QuestionStat
	for rows.Next() {
		var qs QuestionStat
		if err := rows.Scan(&qs.QuestionID, &qs.Title, &qs.Attempts, &qs.Missed); err != nil {
			return nil, fmt.Errorf("scan question stat: %w", err)
		}
		qs.MissRate = float64(qs.Missed) / float64(qs.Attempts)
		out = append(out, qs)
	}
	return out, rows.Err()
}

func (r *attemptRepo) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM attempt_answers"); err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM attempts"); err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
