// Package model contains the GORM persistence models. They mirror the database tables
// and are mapped to and from domain entities by the repository adapters.
package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel mirrors the identity, audit and soft-delete columns every table carries.
// Timestamps are owned by the audit plugin, so GORM's own auto time tracking is off.
type BaseModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime:false"`
	ModifiedAt *time.Time `gorm:"autoUpdateTime:false"`
	CreatedBy  string     `gorm:"type:varchar(100);not null"`
	ModifiedBy string     `gorm:"type:varchar(100)"`
	IsDeleted  bool       `gorm:"not null;default:false;index"`
}
