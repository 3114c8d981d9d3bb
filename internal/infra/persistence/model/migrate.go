package model

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// All lists every model owned by the service, in creation order.
func All() []any {
	return []any{
		&UserModel{},
	}
}

// AutoMigrate creates or updates the tables, indexes and constraints of every model.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(All()...); err != nil {
		return errors.Wrap(err, "failed to auto-migrate models")
	}

	return nil
}
