package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

const testColumns = `id, college_id, title, description, question_ids, duration_minutes, status, created_at, updated_at, published_at`

type testStore struct {
	db *DB
}

// NewTestStore returns a TestStore backed by db.
func NewTestStore(db *DB) repository.TestStore {
	return &testStore{db: db}
}

func scanTest(row scanner) (*model.Test, error) {
	var t model.Test
	if err := row.Scan(&t.ID, &t.CollegeID, &t.Title, &t.Description, &t.QuestionIDs, &t.DurationMinutes,
		&t.Status, &t.CreatedAt, &t.UpdatedAt, &t.PublishedAt); err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	t.PublishedAt = utcPtr(t.PublishedAt)
	return &t, nil
}

func (s *testStore) List(ctx context.Context, f repository.TestFilter) ([]model.Test, error) {
	out := make([]model.Test, 0)
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT `+testColumns+` FROM tests
			 WHERE ($1::text = '' OR college_id = $1) AND (NOT $2::boolean OR status = 'published')
			 ORDER BY created_at DESC, id`, f.CollegeID, f.PublishedOnly,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			t, err := scanTest(rows)
			if err != nil {
				return err
			}
			out = append(out, *t)
		}
		return rows.Err()
	})
	return out, err
}

func (s *testStore) Get(ctx context.Context, id string) (*model.Test, error) {
	var t *model.Test
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		t, err = scanTest(tx.QueryRow(ctx, `SELECT `+testColumns+` FROM tests WHERE id = $1`, id))
		return err
	})
	return t, err
}

func (s *testStore) Create(ctx context.Context, t *model.Test) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO tests (`+testColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			t.ID, t.CollegeID, t.Title, t.Description, t.QuestionIDs, t.DurationMinutes,
			t.Status, t.CreatedAt, t.UpdatedAt, t.PublishedAt,
		)
		return err
	})
}

// notDraft resolves a conditional write that matched no row.
func notDraft(ctx context.Context, tx pgx.Tx, id string) error {
	var status model.TestStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM tests WHERE id = $1`, id).Scan(&status); err != nil {
		return err
	}
	return model.ErrInvalidState
}

func (s *testStore) Update(ctx context.Context, t *model.Test) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE tests
			 SET title = $2, description = $3, question_ids = $4, duration_minutes = $5, updated_at = $6
			 WHERE id = $1 AND status = 'draft'`,
			t.ID, t.Title, t.Description, t.QuestionIDs, t.DurationMinutes, t.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return notDraft(ctx, tx, t.ID)
		}
		return nil
	})
}

func (s *testStore) Delete(ctx context.Context, id string) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM tests WHERE id = $1 AND status = 'draft'`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return notDraft(ctx, tx, id)
		}
		return nil
	})
}

func (s *testStore) Publish(ctx context.Context, id string, at time.Time) (*model.Test, error) {
	var t *model.Test
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		t, err = scanTest(tx.QueryRow(ctx,
			`UPDATE tests SET status = 'published', published_at = $2, updated_at = $2
			 WHERE id = $1 AND status = 'draft'
			 RETURNING `+testColumns, id, at,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return notDraft(ctx, tx, id)
		}
		return err
	})
	return t, err
}
