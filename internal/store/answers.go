package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mindreset/internal/progress"
)

// CategoryCount aggregates answers by option key.
type CategoryCount struct {
	Key    string
	Count  int
	Points int
}

// AnswerRepo provides append and query access to the answer history.
type AnswerRepo interface {
	// Append records an answer. Sequence and ID are assigned by the store.
	Append(ctx context.Context, rec progress.AnswerRecord) error

	// Recent returns up to limit answers, newest first (limit <= 0 = all).
	Recent(ctx context.Context, limit int) ([]progress.AnswerRecord, error)

	// Totals returns answer counts and points per option key, ordered by key.
	Totals(ctx context.Context) ([]CategoryCount, error)
}

type answerRepo struct {
	store *Store
}

func (r *answerRepo) Append(ctx context.Context, rec progress.AnswerRecord) error {
	seq, err := r.store.seq.Next(ctx)
	if err != nil {
		return err
	}
	if rec.AnsweredAt.IsZero() {
		rec.AnsweredAt = time.Now()
	}

	query, args := builder().
		Insert(answersTable).
		Columns("sequence", "run_id", "position", "question_id", "option_key", "points", "answered_at").
		Values(seq, rec.RunID, rec.Position, rec.QuestionID, rec.Key, rec.Points, rec.AnsweredAt.Unix()).
		Query()

	if _, err := r.store.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append answer: %w", err)
	}
	return nil
}

func (r *answerRepo) Recent(ctx context.Context, limit int) ([]progress.AnswerRecord, error) {
	sel := builder().
		Select("id", "sequence", "run_id", "position", "question_id", "option_key", "points", "answered_at").
		From(entsql.Table(answersTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []progress.AnswerRecord
	for rows.Next() {
		var rec progress.AnswerRecord
		var answeredAt int64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.RunID, &rec.Position,
			&rec.QuestionID, &rec.Key, &rec.Points, &answeredAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.AnsweredAt = time.Unix(answeredAt, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *answerRepo) Totals(ctx context.Context) ([]CategoryCount, error) {
	query, args := builder().
		Select(
			"option_key",
			entsql.As(entsql.Count("*"), "n"),
			entsql.As(entsql.Sum("points"), "pts"),
		).
		From(entsql.Table(answersTable)).
		GroupBy("option_key").
		OrderBy("option_key").
		Query()

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var out []CategoryCount
	for rows.Next() {
		var c CategoryCount
		var pts sql.NullInt64
		if err := rows.Scan(&c.Key, &c.Count, &pts); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		c.Points = int(pts.Int64)
		out = append(out, c)
	}
	return out, rows.Err()
}
