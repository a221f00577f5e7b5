package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, student_id, course_id, college_id, status, created_at, decided_at`

type applicationStore struct {
	db *DB
}

// NewApplicationStore returns an ApplicationStore backed by db.
func NewApplicationStore(db *DB) repository.ApplicationStore {
	return &applicationStore{db: db}
}

func scanApplication(row scanner) (*model.Application, error) {
	var a model.Application
	if err := row.Scan(&a.ID, &a.StudentID, &a.CourseID, &a.CollegeID, &a.Status, &a.CreatedAt, &a.DecidedAt); err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.DecidedAt = utcPtr(a.DecidedAt)
	return &a, nil
}

func (s *applicationStore) Create(ctx context.Context, a *model.Application) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		var id string
		err := tx.QueryRow(ctx,
			`INSERT INTO applications (`+applicationColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (student_id, course_id) DO NOTHING
			 RETURNING id`,
			a.ID, a.StudentID, a.CourseID, a.CollegeID, a.Status, a.CreatedAt, a.DecidedAt,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrConflict
		}
		return err
	})
}

func (s *applicationStore) Get(ctx context.Context, id string) (*model.Application, error) {
	var a *model.Application
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		a, err = scanApplication(tx.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
		return err
	})
	return a, err
}

func (s *applicationStore) Transition(ctx context.Context, id string, from, to model.ApplicationStatus, at time.Time) (*model.Application, error) {
	var a *model.Application
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		a, err = scanApplication(tx.QueryRow(ctx,
			`UPDATE applications SET status = $3, decided_at = $4
			 WHERE id = $1 AND status = $2
			 RETURNING `+applicationColumns, id, from, to, at,
		))
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		var current model.ApplicationStatus
		if err := tx.QueryRow(ctx, `SELECT status FROM applications WHERE id = $1`, id).Scan(&current); err != nil {
			return err
		}
		return model.ErrInvalidState
	})
	return a, err
}

func (s *applicationStore) ListByStudent(ctx context.Context, studentID string) ([]model.Application, error) {
	return s.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 ORDER BY created_at DESC, id`, studentID)
}

func (s *applicationStore) ListByCollege(ctx context.Context, collegeID string) ([]model.Application, error) {
	return s.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE college_id = $1 ORDER BY created_at DESC, id`, collegeID)
}

func (s *applicationStore) list(ctx context.Context, query, arg string) ([]model.Application, error) {
	out := make([]model.Application, 0)
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			a, err := scanApplication(rows)
			if err != nil {
				return err
			}
			out = append(out, *a)
		}
		return rows.Err()
	})
	return out, err
}
