package postgres

import (
	"context"
	"testing"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_Commit(t *testing.T) {
	db := newTestDB(t, nil)
	txManager := NewTransactionManager(db)

	err := txManager.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		_, err := factory.UserRepo().Add(context.Background(), newTestUser("ada", "ada@example.com"))

		return err
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), rawUserCount(t, db))
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	db := newTestDB(t, nil)
	txManager := NewTransactionManager(db)
	errBoom := errors.New("boom")

	err := txManager.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		if _, err := factory.UserRepo().Add(context.Background(), newTestUser("ada", "ada@example.com")); err != nil {
			return err
		}

		return errBoom
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBoom))

	assert.Equal(t, int64(0), rawUserCount(t, db))
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	db := newTestDB(t, nil)
	txManager := NewTransactionManager(db)

	assert.Panics(t, func() {
		_ = txManager.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
			if _, err := factory.UserRepo().Add(context.Background(), newTestUser("ada", "ada@example.com")); err != nil {
				return err
			}
			panic("boom")
		})
	})

	assert.Equal(t, int64(0), rawUserCount(t, db))
}

func TestTransactionManager_BeginFailureIsTransactionError(t *testing.T) {
	db := newTestDB(t, nil)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	called := false
	err = NewTransactionManager(db).Execute(context.Background(), func(repository.RepositoryFactory) error {
		called = true

		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, errors.Is(err, domainerrors.ErrTransactionFailed))
	assert.Contains(t, err.Error(), "failed to begin transaction")

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "TRANSACTION_FAILED", appErr.ErrorCode())
}
