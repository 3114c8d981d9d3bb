package postgres

import (
	"testing"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateWriteError(t *testing.T) {
	repo := &gormRepository[*entity.User, model.UserModel]{name: "user"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "duplicate key",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`),
			want: repository.ErrConflict,
		},
		{
			name: "translated duplicate",
			err:  gorm.ErrDuplicatedKey,
			want: repository.ErrConflict,
		},
		{
			name: "not null",
			err:  errors.New(`ERROR: null value in column "username" violates not-null constraint (SQLSTATE 23502)`),
			want: domainerrors.ErrValidationFailed,
		},
		{
			name: "value too long",
			err:  errors.New("ERROR: value too long for type character varying(50) (SQLSTATE 22001)"),
			want: domainerrors.ErrValidationFailed,
		},
		{
			name: "bare sqlstate 22001",
			err:  errors.New("pq: SQLSTATE 22001"),
			want: domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repo.translateWriteError(tt.err, "create")
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateWriteError_UnknownIsDatabaseError(t *testing.T) {
	repo := &gormRepository[*entity.User, model.UserModel]{name: "user"}

	got := repo.translateWriteError(errors.New("connection reset by peer"), "update")

	var dbErr *domainerrors.DatabaseExecuteError
	assert.True(t, errors.As(got, &dbErr))
	assert.Equal(t, "failed to update user", dbErr.Details())
	assert.NotErrorIs(t, got, domainerrors.ErrValidationFailed)
}

func TestIsValueTooLong(t *testing.T) {
	assert.True(t, isValueTooLong(errors.New("ERROR: value too long for type character varying(50)")))
	assert.False(t, isValueTooLong(errors.New("ERROR: duplicate key value")))
}
