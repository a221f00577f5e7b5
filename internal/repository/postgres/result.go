package postgres

import (
	"context"
	"errors"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

const resultColumns = `id, test_id, student_id, score, max_score, pending_review, answers, date`

type resultStore struct {
	db *DB
}

// NewResultStore returns a ResultStore backed by db.
func NewResultStore(db *DB) repository.ResultStore {
	return &resultStore{db: db}
}

func scanResult(row scanner) (*model.TestResult, error) {
	var r model.TestResult
	if err := row.Scan(&r.ID, &r.TestID, &r.StudentID, &r.Score, &r.MaxScore, &r.PendingReview, &r.Answers, &r.Date); err != nil {
		return nil, err
	}
	r.Date = r.Date.UTC()
	return &r, nil
}

// Create inserts r unless a result for the same test and student exists.
func (s *resultStore) Create(ctx context.Context, r *model.TestResult) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		var id string
		err := tx.QueryRow(ctx,
			`INSERT INTO test_results (`+resultColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (test_id, student_id) DO NOTHING
			 RETURNING id`,
			r.ID, r.TestID, r.StudentID, r.Score, r.MaxScore, r.PendingReview, r.Answers, r.Date,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrConflict
		}
		return err
	})
}

func (s *resultStore) Get(ctx context.Context, testID, studentID string) (*model.TestResult, error) {
	var r *model.TestResult
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		r, err = scanResult(tx.QueryRow(ctx,
			`SELECT `+resultColumns+` FROM test_results WHERE test_id = $1 AND student_id = $2`, testID, studentID,
		))
		return err
	})
	return r, err
}

func (s *resultStore) ListByTest(ctx context.Context, testID string) ([]model.TestResult, error) {
	return s.list(ctx, `SELECT `+resultColumns+` FROM test_results WHERE test_id = $1 ORDER BY date DESC, id`, testID)
}

func (s *resultStore) ListByStudent(ctx context.Context, studentID string) ([]model.TestResult, error) {
	return s.list(ctx, `SELECT `+resultColumns+` FROM test_results WHERE student_id = $1 ORDER BY date DESC, id`, studentID)
}

func (s *resultStore) list(ctx context.Context, query string, arg string) ([]model.TestResult, error) {
	out := make([]model.TestResult, 0)
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			r, err := scanResult(rows)
			if err != nil {
				return err
			}
			out = append(out, *r)
		}
		return rows.Err()
	})
	return out, err
}
