package postgres

import (
	"identity/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

// columnMap whitelists the entity fields a filter may reference, keyed by field name.
type columnMap map[string]string

// buildFilter translates a domain filter into a GORM clause expression.
// Unknown fields and operators are rejected with repository.ErrInvalidFilter.
func buildFilter(f repository.Filter, columns columnMap) (clause.Expression, error) {
	if f.IsGroup() {
		return buildGroup(f, columns)
	}

	column, ok := columns[f.Field]
	if !ok {
		return nil, errors.Wrapf(repository.ErrInvalidFilter, "unknown field %q", f.Field)
	}
	col := clause.Column{Table: clause.CurrentTable, Name: column}

	switch f.Op {
	case repository.OpEq:
		return clause.Eq{Column: col, Value: f.Value}, nil
	case repository.OpNeq:
		return clause.Neq{Column: col, Value: f.Value}, nil
	case repository.OpLike:
		if _, ok := f.Value.(string); !ok {
			return nil, errors.Wrapf(repository.ErrInvalidFilter, "like on %q needs a string pattern", f.Field)
		}

		return clause.Like{Column: col, Value: f.Value}, nil
	case repository.OpIn:
		values, ok := f.Value.([]any)
		if !ok {
			return nil, errors.Wrapf(repository.ErrInvalidFilter, "in on %q needs a value list", f.Field)
		}

		return clause.IN{Column: col, Values: values}, nil
	default:
		return nil, errors.Wrapf(repository.ErrInvalidFilter, "unknown operator %q", f.Op)
	}
}

func buildGroup(f repository.Filter, columns columnMap) (clause.Expression, error) {
	if len(f.Children) == 0 {
		return nil, errors.Wrapf(repository.ErrInvalidFilter, "empty %s group", f.Logic)
	}

	exprs := make([]clause.Expression, 0, len(f.Children))
	for _, child := range f.Children {
		expr, err := buildFilter(child, columns)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	if len(exprs) == 1 && (f.Logic == repository.LogicAnd || f.Logic == repository.LogicOr) {
		return exprs[0], nil
	}

	switch f.Logic {
	case repository.LogicAnd:
		return clause.And(exprs...), nil
	case repository.LogicOr:
		return clause.Or(exprs...), nil
	default:
		return nil, errors.Wrapf(repository.ErrInvalidFilter, "unknown logic %q", f.Logic)
	}
}
