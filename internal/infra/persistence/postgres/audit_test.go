package postgres

import (
	"context"
	"testing"
	"time"

	"identity/internal/domain/entity"
	"identity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAuditPlugin_StampsCreate(t *testing.T) {
	db := newTestDB(t, nil)
	actor := entity.ActorFromUserID(uuid.New())

	row := &model.UserModel{
		BaseModel: model.BaseModel{
			ID:        uuid.New(),
			CreatedBy: "caller supplied",
			IsDeleted: true,
		},
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, db.WithContext(actorCtx(actor)).Create(row).Error)

	assert.True(t, row.CreatedAt.Equal(baseTime))
	assert.Equal(t, actor.String(), row.CreatedBy)
	assert.False(t, row.IsDeleted)
}

func TestAuditPlugin_StampsMapUpdates(t *testing.T) {
	clock := newTestClock()
	db := newTestDB(t, clock)
	ctx := context.Background()

	row := &model.UserModel{
		BaseModel:    model.BaseModel{ID: uuid.New()},
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, db.WithContext(ctx).Create(row).Error)

	clock.Advance(2 * time.Hour)
	editor := entity.ActorFromUserID(uuid.New())
	require.NoError(t, db.WithContext(actorCtx(editor)).
		Model(&model.UserModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{"first_name": "Augusta"}).Error)

	var got model.UserModel
	require.NoError(t, db.WithContext(ctx).Where("id = ?", row.ID).Take(&got).Error)

	assert.Equal(t, "Augusta", got.FirstName)
	require.NotNil(t, got.ModifiedAt)
	assert.True(t, got.ModifiedAt.Equal(baseTime.Add(2*time.Hour)))
	assert.Equal(t, editor.String(), got.ModifiedBy)
	assert.Equal(t, entity.SystemActor.String(), got.CreatedBy)
}

func TestAuditPlugin_FiltersDeletedRowsFromQueriesAndRows(t *testing.T) {
	db := newTestDB(t, nil)
	ctx := context.Background()

	live := &model.UserModel{BaseModel: model.BaseModel{ID: uuid.New()}, Username: "live", Email: "live@example.com", PasswordHash: "hash"}
	gone := &model.UserModel{BaseModel: model.BaseModel{ID: uuid.New()}, Username: "gone", Email: "gone@example.com", PasswordHash: "hash"}
	require.NoError(t, db.WithContext(ctx).Create(live).Error)
	require.NoError(t, db.WithContext(ctx).Create(gone).Error)
	require.NoError(t, db.WithContext(ctx).Model(gone).Update("is_deleted", true).Error)

	var rows []model.UserModel
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "live", rows[0].Username)

	var usernames []string
	require.NoError(t, db.WithContext(ctx).Model(&model.UserModel{}).Pluck("username", &usernames).Error)
	assert.Equal(t, []string{"live"}, usernames)

	var username string
	err := db.WithContext(ctx).Model(&model.UserModel{}).
		Select("username").
		Where("id = ?", gone.ID).
		Row().
		Scan(&username)
	assert.Error(t, err)

	assert.Equal(t, int64(2), rawUserCount(t, db))
}

func TestAuditPlugin_IgnoresModelsWithoutAuditColumns(t *testing.T) {
	type plainModel struct {
		ID   uint
		Name string
	}

	db := newTestDB(t, nil)
	require.NoError(t, db.AutoMigrate(&plainModel{}))

	require.NoError(t, db.Create(&plainModel{Name: "x"}).Error)

	var out []plainModel
	require.NoError(t, db.Find(&out).Error)
	assert.Len(t, out, 1)
}

func TestAuditPlugin_Name(t *testing.T) {
	var plugin gorm.Plugin = NewAuditPlugin()
	assert.Equal(t, auditPluginName, plugin.Name())
}
