// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base holds the identity, audit and soft-delete fields shared by every persisted record.
type Base struct {
	ID         uuid.UUID  // Assigned by the caller before the first persistence, never changed afterwards.
	CreatedAt  time.Time  // Stamped once when the record is first stored.
	ModifiedAt *time.Time // Stamped on every update after creation. Nil until the first update.
	CreatedBy  string     // Actor that created the record.
	ModifiedBy string     // Actor that last modified the record.
	IsDeleted  bool       // Soft delete flag. Deleted records are invisible to normal reads.
}

// Auditable is implemented by every entity that carries a Base.
// Repositories and the audit interceptor operate on entities through it.
type Auditable interface {
	GetBase() *Base
}

// GetBase returns the embedded base fields.
func (b *Base) GetBase() *Base {
	return b
}

// NewBase returns a Base with a freshly generated random identifier.
func NewBase() Base {
	return Base{ID: uuid.New()}
}
