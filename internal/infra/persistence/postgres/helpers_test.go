package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"identity/internal/domain/entity"
	"identity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var baseTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// testClock is a manually advanced clock for the audit plugin.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: baseTime}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// newTestDB opens a private in-memory SQLite database with the audit plugin and schema installed.
func newTestDB(t *testing.T, clock *testClock) *gorm.DB {
	t.Helper()

	if clock == nil {
		clock = newTestClock()
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := openSQLite(dsn)
	require.NoError(t, err)

	db, err = prepare(db, gormlogger.Discard, NewAuditPluginWithClock(clock.Now))
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func newTestUser(username, email string) *entity.User {
	return &entity.User{
		Base:         entity.NewBase(),
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$hash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PhoneNumber:  "555-0100",
	}
}

func actorCtx(actor entity.Actor) context.Context {
	return entity.ContextWithActor(context.Background(), actor)
}

func rawUserCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Unscoped().Model(&model.UserModel{}).Count(&n).Error)

	return n
}
