package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, model.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), model.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: codeUniqueViolation}, model.ErrConflict},
		{"foreign key violation", &pgconn.PgError{Code: codeForeignKeyViolation}, model.ErrConflict},
		{"rls rejection", &pgconn.PgError{Code: codeInsufficientPriv}, model.ErrForbidden},
		{"deadline", context.DeadlineExceeded, model.ErrRemoteUnavailable},
		{"already translated", model.ErrInvalidState, model.ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tt.err), tt.want)
		})
	}

	assert.NoError(t, translate(nil))

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestLikeEscaper(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, likeEscaper.Replace(`50% off_now\`))
}
