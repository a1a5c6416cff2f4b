package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.DB.Host)
	require.Equal(t, "5432", cfg.DB.Port)
	require.Equal(t, "store", cfg.DB.DBName)
	require.Equal(t, "disable", cfg.DB.SSLMode)
	require.Equal(t, 10, cfg.DB.MaxIdleConns)
	require.Equal(t, 100, cfg.DB.MaxOpenConns)
	require.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 24, cfg.JWT.ExpirationHours)
	require.Equal(t, "store", cfg.Metrics.Prefix)
	require.False(t, cfg.Seed.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "db.internal", cfg.DB.Host)
	require.Equal(t, "5433", cfg.DB.Port)
	require.Equal(t, 25, cfg.DB.MaxOpenConns)
	require.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	require.Equal(t, logger.Silent, cfg.DB.LogLevel)
	require.Equal(t, "9090", cfg.Server.Port)
	require.True(t, cfg.Seed.Enabled)
}

func TestGetDSN(t *testing.T) {
	cfg := DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "secret",
		DBName:   "store",
		SSLMode:  "disable",
	}

	require.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=store sslmode=disable",
		cfg.GetDSN())
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")
	t.Setenv("DB_CONN_MAX_LIFETIME", "soon")
	t.Setenv("SEED_DEMO_DATA", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 10, cfg.DB.MaxIdleConns)
	require.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	require.False(t, cfg.Seed.Enabled)
}
