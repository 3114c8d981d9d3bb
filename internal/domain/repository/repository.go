// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record does not exist or has been soft deleted.
	ErrNotFound = domainerrors.ErrNotFound
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = domainerrors.ErrConflict
	// ErrInvalidFilter is returned when a filter names an unknown field or operator.
	ErrInvalidFilter = domainerrors.ErrInvalidFilter
)

// Repository is the generic CRUD and query contract shared by every entity type.
// Reads never return soft-deleted records.
type Repository[T entity.Auditable] interface {
	// GetAll returns every live record. An empty result is not an error.
	GetAll(ctx context.Context) ([]T, error)

	// GetByID returns the live record with the given id, or an error matching domain ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (T, error)

	// Get returns every live record matching the filter. An empty result is not an error.
	Get(ctx context.Context, filter Filter) ([]T, error)

	// Add persists a new record and returns it with its audit fields populated.
	// A uniqueness violation is reported as domain ErrConflict.
	Add(ctx context.Context, e T) (T, error)

	// Update marks the record as modified and persists it. Last write wins.
	Update(ctx context.Context, e T) error

	// Delete soft deletes the record. Deleting an already deleted record is not an error.
	Delete(ctx context.Context, e T) error
}
