package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Doacoes-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// wrap convierte un error del driver en DependencyError. Sin reintentos.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return domain.NewDependencyError(op, err)
}

// nullIfEmpty guarda NULL en columnas de texto opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// execBatch envía todas las sentencias en un solo round trip y devuelve el primer error.
func execBatch(ctx context.Context, q Querier, op string, b *pgx.Batch) error {
	if b.Len() == 0 {
		return nil
	}
	br := q.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return wrap(op, err)
		}
	}
	return wrap(op, br.Close())
}

// timeOrNil guarda NULL para fechas opcionales.
func timeOrNil(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

// limitOrAll traduce limit <= 0 a "sin límite" (LIMIT NULL).
func limitOrAll(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
