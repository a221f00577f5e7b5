package postgres

import (
	"context"
	"strings"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

const collegeColumns = `id, profile_id, name, location, country, description, logo_url, is_verified, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type collegeStore struct {
	db *DB
}

// NewCollegeStore returns a CollegeStore backed by db.
func NewCollegeStore(db *DB) repository.CollegeStore {
	return &collegeStore{db: db}
}

func scanCollege(row scanner) (*model.College, error) {
	var c model.College
	if err := row.Scan(&c.ID, &c.ProfileID, &c.Name, &c.Location, &c.Country, &c.Description, &c.LogoURL,
		&c.IsVerified, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func (s *collegeStore) query(ctx context.Context, sql string, args ...any) ([]model.College, error) {
	out := make([]model.College, 0)
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			c, err := scanCollege(rows)
			if err != nil {
				return err
			}
			out = append(out, *c)
		}
		return rows.Err()
	})
	return out, err
}

func (s *collegeStore) List(ctx context.Context) ([]model.College, error) {
	return s.query(ctx, `SELECT `+collegeColumns+` FROM colleges ORDER BY name, id`)
}

func (s *collegeStore) Search(ctx context.Context, f repository.CollegeFilter) ([]model.College, error) {
	term := strings.TrimSpace(f.Term)
	pattern := ""
	if term != "" {
		pattern = "%" + likeEscaper.Replace(term) + "%"
	}
	return s.query(ctx,
		`SELECT `+collegeColumns+` FROM colleges
		 WHERE is_verified
		   AND ($1::text = '' OR name ILIKE $1 OR description ILIKE $1)
		   AND ($2::text = '' OR lower(country) = lower($2))
		 ORDER BY name, id`,
		pattern, strings.TrimSpace(f.Country),
	)
}

func (s *collegeStore) getBy(ctx context.Context, column, value string) (*model.College, error) {
	var c *model.College
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		c, err = scanCollege(tx.QueryRow(ctx, `SELECT `+collegeColumns+` FROM colleges WHERE `+column+` = $1`, value))
		return err
	})
	return c, err
}

func (s *collegeStore) Get(ctx context.Context, id string) (*model.College, error) {
	return s.getBy(ctx, "id", id)
}

func (s *collegeStore) GetByProfileID(ctx context.Context, profileID string) (*model.College, error) {
	return s.getBy(ctx, "profile_id", profileID)
}

func (s *collegeStore) Create(ctx context.Context, c *model.College) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO colleges (`+collegeColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			c.ID, c.ProfileID, c.Name, c.Location, c.Country, c.Description, c.LogoURL,
			c.IsVerified, c.CreatedAt, c.UpdatedAt,
		)
		return err
	})
}

func (s *collegeStore) Update(ctx context.Context, c *model.College) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE colleges
			 SET name = $2, location = $3, country = $4, description = $5, logo_url = $6,
			     is_verified = $7, updated_at = $8
			 WHERE id = $1`,
			c.ID, c.Name, c.Location, c.Country, c.Description, c.LogoURL, c.IsVerified, c.UpdatedAt,
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

// Delete removes the college; courses follow through ON DELETE CASCADE.
func (s *collegeStore) Delete(ctx context.Context, id string) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM colleges WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}

const courseColumns = `id, college_id, name, description, duration_months, created_at`

type courseStore struct {
	db *DB
}

// NewCourseStore returns a CourseStore backed by db.
func NewCourseStore(db *DB) repository.CourseStore {
	return &courseStore{db: db}
}

func scanCourse(row scanner) (*model.Course, error) {
	var c model.Course
	if err := row.Scan(&c.ID, &c.CollegeID, &c.Name, &c.Description, &c.DurationMonths, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (s *courseStore) ListByCollege(ctx context.Context, collegeID string) ([]model.Course, error) {
	out := make([]model.Course, 0)
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT `+courseColumns+` FROM courses WHERE college_id = $1 ORDER BY name, id`, collegeID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			c, err := scanCourse(rows)
			if err != nil {
				return err
			}
			out = append(out, *c)
		}
		return rows.Err()
	})
	return out, err
}

func (s *courseStore) Get(ctx context.Context, id string) (*model.Course, error) {
	var c *model.Course
	err := s.db.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		c, err = scanCourse(tx.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
		return err
	})
	return c, err
}

func (s *courseStore) Create(ctx context.Context, c *model.Course) error {
	return s.db.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO courses (`+courseColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, c.CollegeID, c.Name, c.Description, c.DurationMonths, c.CreatedAt,
		)
		return err
	})
}
