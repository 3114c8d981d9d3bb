package postgres

import (
	"context"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	columnID        = "id"
	columnCreatedAt = "created_at"
	columnCreatedBy = "created_by"
)

// gormRepository implements repository.Repository for an entity E persisted as model M.
// Each table gets one instance with its own mappers and filter whitelist.
type gormRepository[E entity.Auditable, M any] struct {
	db         *gorm.DB
	name       string
	columns    columnMap
	notFound   error
	toDomain   func(*M) E
	fromDomain func(E) *M
}

// GetAll returns every live record ordered by creation time.
func (r *gormRepository[E, M]) GetAll(ctx context.Context) ([]E, error) {
	var rows []*M
	if err := r.db.WithContext(ctx).Order(createdAtAsc()).Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list "+r.name+" records")
	}

	return r.mapAll(rows), nil
}

// GetByID returns the live record with the given id.
func (r *gormRepository[E, M]) GetByID(ctx context.Context, id uuid.UUID) (E, error) {
	var zero E

	row := new(M)
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: columnID}, Value: id}).
		Take(row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, errors.Wrapf(r.notFound, "%s %s", r.name, id)
		}

		return zero, domainerrors.NewDatabaseExecuteError(err, "failed to find "+r.name+" by id")
	}

	return r.toDomain(row), nil
}

// Get returns every live record matching the filter.
func (r *gormRepository[E, M]) Get(ctx context.Context, filter repository.Filter) ([]E, error) {
	expr, err := buildFilter(filter, r.columns)
	if err != nil {
		return nil, err
	}

	var rows []*M
	err = r.db.WithContext(ctx).
		Clauses(clause.Where{Exprs: []clause.Expression{expr}}).
		Order(createdAtAsc()).
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to query "+r.name+" records")
	}

	return r.mapAll(rows), nil
}

// Add inserts the record. The audit plugin fills CreatedAt, CreatedBy and IsDeleted.
func (r *gormRepository[E, M]) Add(ctx context.Context, e E) (E, error) {
	var zero E

	if e.GetBase().ID == uuid.Nil {
		e.GetBase().ID = uuid.New()
	}

	row := r.fromDomain(e)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return zero, r.translateWriteError(err, "create")
	}

	return r.toDomain(row), nil
}

// Update persists every mutable column of a live record. Identity and creation
// audit columns are never rewritten and a soft-deleted row is reported as not found.
func (r *gormRepository[E, M]) Update(ctx context.Context, e E) error {
	row := r.fromDomain(e)
	base := e.GetBase()

	result := r.db.WithContext(ctx).
		Model(row).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: columnID}, Value: base.ID}).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: softDeleteColumn}, Value: false}).
		Select("*").
		Omit(columnID, columnCreatedAt, columnCreatedBy, softDeleteColumn).
		Updates(row)
	if result.Error != nil {
		return r.translateWriteError(result.Error, "update")
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(r.notFound, "%s %s", r.name, base.ID)
	}

	updated := r.toDomain(row).GetBase()
	base.ModifiedAt = updated.ModifiedAt
	base.ModifiedBy = updated.ModifiedBy

	return nil
}

// Delete flags the record as deleted. Repeating it on a deleted record succeeds.
func (r *gormRepository[E, M]) Delete(ctx context.Context, e E) error {
	base := e.GetBase()
	row := r.fromDomain(e)

	result := r.db.WithContext(ctx).
		Model(row).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: columnID}, Value: base.ID}).
		Updates(map[string]any{softDeleteColumn: true})
	if result.Error != nil {
		return r.translateWriteError(result.Error, "delete")
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(r.notFound, "%s %s", r.name, base.ID)
	}

	deleted := r.toDomain(row).GetBase()
	base.IsDeleted = true
	base.ModifiedAt = deleted.ModifiedAt
	base.ModifiedBy = deleted.ModifiedBy

	return nil
}

func (r *gormRepository[E, M]) mapAll(rows []*M) []E {
	out := make([]E, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.toDomain(row))
	}

	return out
}

func (r *gormRepository[E, M]) translateWriteError(err error, op string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return errors.Wrapf(repository.ErrConflict, "%s %s: %v", op, r.name, err)
	case isNotNullConstraintViolation(err), isCheckConstraintViolation(err), isValueTooLong(err):
		return errors.Wrapf(domainerrors.ErrValidationFailed, "%s %s: %v", op, r.name, err)
	default:
		return domainerrors.NewDatabaseExecuteError(err, "failed to "+op+" "+r.name)
	}
}

func createdAtAsc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: columnCreatedAt}}
}
