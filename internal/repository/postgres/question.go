package postgres

import (
	"context"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

const questionColumns = `id, college_id, type, text, options, difficulty_level, categories, created_at, updated_at`

type questionStore struct {
	db *DB
}

// NewQuestionStore returns a QuestionStore backed by db.
func NewQuestionStore(db *DB) repository.QuestionStore {
	return &questionStore{db: db}
}

func scanQuestion(row scanner) (*model.Question, error) {
	var q model.Question
	if err := row.Scan(&q.ID, &q.CollegeID, &q.Type, &q.Text, &q.Options, &q.DifficultyLevel, &q.Categories, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	q.CreatedAt = q.CreatedAt.UTC()
	q.UpdatedAt = q.UpdatedAt.UTC()
	return &q, nil
}

func collectQuestions(rows pgx.Rows) ([]model.Question, error) {
	defer rows.Close()
	out := make([]model.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func (s *questionStore) List(ctx context.Context, collegeID *string) ([]model.Question, error) {
	var out []model.Question
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT `+questionColumns+` FROM questions
			 WHERE ($1::text IS NULL OR college_id = $1)
			 ORDER BY created_at, id`, collegeID,
		)
		if err != nil {
			return err
		}
		out, err = collectQuestions(rows)
		return err
	})
	return out, err
}

func (s *questionStore) Get(ctx context.Context, id string, collegeID *string) (*model.Question, error) {
	var q *model.Question
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		q, err = scanQuestion(tx.QueryRow(ctx,
			`SELECT `+questionColumns+` FROM questions
			 WHERE id = $1 AND ($2::text IS NULL OR college_id = $2)`, id, collegeID,
		))
		return err
	})
	return q, err
}

func (s *questionStore) GetMany(ctx context.Context, ids []string) ([]model.Question, error) {
	var out []model.Question
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT `+questionColumns+` FROM questions WHERE id = ANY($1)`, ids,
		)
		if err != nil {
			return err
		}
		found, err := collectQuestions(rows)
		if err != nil {
			return err
		}
		byID := make(map[string]model.Question, len(found))
		for _, q := range found {
			byID[q.ID] = q
		}
		out = make([]model.Question, 0, len(ids))
		for _, id := range ids {
			if q, ok := byID[id]; ok {
				out = append(out, q)
			}
		}
		return nil
	})
	return out, err
}

func (s *questionStore) Create(ctx context.Context, q *model.Question) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO questions (`+questionColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			q.ID, q.CollegeID, q.Type, q.Text, q.Options, q.DifficultyLevel, q.Categories, q.CreatedAt, q.UpdatedAt,
		)
		return err
	})
}

func (s *questionStore) Update(ctx context.Context, q *model.Question) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE questions
			 SET type = $2, text = $3, options = $4, difficulty_level = $5, categories = $6, updated_at = $7
			 WHERE id = $1`,
			q.ID, q.Type, q.Text, q.Options, q.DifficultyLevel, q.Categories, q.UpdatedAt,
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

func (s *questionStore) Delete(ctx context.Context, id string, collegeID *string) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM questions WHERE id = $1 AND ($2::text IS NULL OR college_id = $2)`, id, collegeID,
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
