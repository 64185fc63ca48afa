package migrate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_OrdenYFormatoGoose(t *testing.T) {
	names, err := Files()
	require.NoError(t, err)
	require.Equal(t, []string{"00001_stock_core.sql", "00002_stock_movements.sql"}, names)

	for _, n := range names {
		raw, err := migrationsFS.ReadFile(migrationsDir + "/" + n)
		require.NoError(t, err)
		body := string(raw)
		assert.True(t, strings.HasPrefix(body, "-- +goose Up"), "%s debe iniciar con -- +goose Up", n)
		assert.Contains(t, body, "-- +goose Down", "%s debe tener bloque Down", n)
	}
}

func TestRun_SinDB(t *testing.T) {
	err := Run(context.Background(), nil, "up")
	assert.Error(t, err)
}
