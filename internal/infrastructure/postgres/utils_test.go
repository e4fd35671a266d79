package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wms-catalog/internal/domain"
)

func TestWrap_MapeaCodigos(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"fk inexistente", &pgconn.PgError{Code: "23503"}, domain.ErrInvalidInput},
		{"check", &pgconn.PgError{Code: "23514"}, domain.ErrInvalidInput},
		{"conexión", &pgconn.PgError{Code: "08006"}, domain.ErrUnavailable},
		{"timeout", context.DeadlineExceeded, domain.ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(wrap("op", tc.err), tc.want))
		})
	}
}

func TestIsNoRow_UUIDInvalido(t *testing.T) {
	assert.True(t, isNoRow(pgx.ErrNoRows))
	assert.True(t, isNoRow(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, isNoRow(&pgconn.PgError{Code: "23503"}))
}
