package postgres

import (
	"context"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

const studentColumns = `id, profile_id, name, email, created_at, updated_at`

type studentStore struct {
	db *DB
}

// NewStudentStore returns a StudentStore backed by db.
func NewStudentStore(db *DB) repository.StudentStore {
	return &studentStore{db: db}
}

func scanStudent(row scanner) (*model.Student, error) {
	var s model.Student
	if err := row.Scan(&s.ID, &s.ProfileID, &s.Name, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return &s, nil
}

func (s *studentStore) List(ctx context.Context) ([]model.Student, error) {
	out := make([]model.Student, 0)
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY name, id`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			st, err := scanStudent(rows)
			if err != nil {
				return err
			}
			out = append(out, *st)
		}
		return rows.Err()
	})
	return out, err
}

func (s *studentStore) getBy(ctx context.Context, column, value string) (*model.Student, error) {
	var st *model.Student
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		st, err = scanStudent(tx.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE `+column+` = $1`, value))
		return err
	})
	return st, err
}

func (s *studentStore) Get(ctx context.Context, id string) (*model.Student, error) {
	return s.getBy(ctx, "id", id)
}

func (s *studentStore) GetByProfileID(ctx context.Context, profileID string) (*model.Student, error) {
	return s.getBy(ctx, "profile_id", profileID)
}

func (s *studentStore) Create(ctx context.Context, st *model.Student) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO students (`+studentColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
			st.ID, st.ProfileID, st.Name, st.Email, st.CreatedAt, st.UpdatedAt,
		)
		return err
	})
}

func (s *studentStore) Update(ctx context.Context, st *model.Student) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE students SET name = $2, email = $3, updated_at = $4 WHERE id = $1`,
			st.ID, st.Name, st.Email, st.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}

func (s *studentStore) Delete(ctx context.Context, id string) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
