package postgres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"identity/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestOpen_SQLiteDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLite.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := Open(cfg, gormlogger.Discard)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	assert.True(t, db.Config.TranslateError)
	_, registered := db.Config.Plugins[auditPluginName]
	assert.True(t, registered)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.PingContext(context.Background()))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "oracle"

	_, err := Open(cfg, gormlogger.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestGormSlogLogger_LevelFollowsDebugFlag(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	assert.Equal(t, gormlogger.Warn, newGormSlogLogger(logger, cfg).(*gormSlogLogger).level)

	cfg.Env.Debug = true
	assert.Equal(t, gormlogger.Info, newGormSlogLogger(logger, cfg).(*gormSlogLogger).level)
}

func TestGormSlogLogger_SlowThreshold(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, defaultGormSlowThreshold, slowThreshold(cfg))

	cfg.Database.SlowQueryThreshold = 3 * defaultGormSlowThreshold
	assert.Equal(t, 3*defaultGormSlowThreshold, slowThreshold(cfg))
}
