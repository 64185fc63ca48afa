package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Doacoes-api/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, wrap("x", nil))

	cause := errors.New("connection reset")
	err := wrap("insert launch", cause)
	assert.True(t, errors.Is(err, domain.ErrDependency))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "insert launch")
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "a", nullIfEmpty("a"))

	assert.Nil(t, timeOrNil(nil))
	assert.Nil(t, timeOrNil(&time.Time{}))
	now := time.Now()
	assert.Equal(t, now, timeOrNil(&now))

	assert.Nil(t, limitOrAll(0))
	assert.Equal(t, 5, limitOrAll(5))
}
