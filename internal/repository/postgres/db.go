// Package postgres implements the repository stores on PostgreSQL.
//
// Every call runs in its own transaction that first publishes the caller's
// identity through set_config, so the row-level-security policies created by
// the migrations decide which rows the statement may see or write.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// roleService is the RLS role used when no principal is attached to the context.
const roleService = "service"

// PostgreSQL error codes the stores translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInsufficientPriv    = "42501"
)

// DB wraps a pool with the per-call timeout.
type DB struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// New returns a DB whose calls are bounded by timeout.
func New(pool *pgxpool.Pool, timeout time.Duration) *DB {
	return &DB{pool: pool, timeout: timeout}
}

// Stores returns every store backed by db.
func (db *DB) Stores() repository.Stores {
	return repository.Stores{
		Questions:    NewQuestionStore(db),
		Tests:        NewTestStore(db),
		Results:      NewResultStore(db),
		Applications: NewApplicationStore(db),
		Colleges:     NewCollegeStore(db),
		Courses:      NewCourseStore(db),
		Students:     NewStudentStore(db),
	}
}

type scanner interface {
	Scan(dest ...any) error
}

// withTx runs fn in a transaction scoped to the principal carried by ctx.
func (db *DB) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return translate(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	profileID, role := "", roleService
	if p := model.PrincipalFrom(ctx); p != nil {
		profileID, role = p.Subject, string(p.Role)
	}
	if _, err := tx.Exec(ctx,
		`SELECT set_config('app.profile_id', $1, true), set_config('app.role', $2, true)`,
		profileID, role,
	); err != nil {
		return translate(err)
	}

	if err := fn(tx); err != nil {
		return translate(err)
	}
	return translate(tx.Commit(ctx))
}

// translate maps driver errors onto the model error taxonomy.
func translate(err error) error {
	if err == nil {
		return nil
	}
	// Already translated inside fn.
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrConflict) ||
		errors.Is(err, model.ErrInvalidState) || errors.Is(err, model.ErrForbidden) ||
		errors.Is(err, model.ErrRemoteUnavailable) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", model.ErrConflict, pgErr.ConstraintName)
		case codeInsufficientPriv:
			return fmt.Errorf("%w: %s", model.ErrForbidden, pgErr.Message)
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: postgres: %v", model.ErrRemoteUnavailable, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: postgres: %v", model.ErrRemoteUnavailable, err)
	}
	return err
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
