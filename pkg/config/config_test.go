package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Doacoes-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Doação", "Compra", "Entrada"}, cfg.Stock.IncomingKinds)
	assert.True(t, cfg.Stock.AllowNegative)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STOCK_INCOMING_KINDS", " Doação , Devolução,, ")
	t.Setenv("STOCK_ALLOW_NEGATIVE", "false")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Doação", "Devolução"}, cfg.Stock.IncomingKinds)
	assert.False(t, cfg.Stock.AllowNegative)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "doacoes", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/doacoes?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
