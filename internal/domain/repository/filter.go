package repository

import (
	"fmt"
	"strings"
)

// Operator is the comparison applied by a filter condition.
type Operator string

const (
	OpEq   Operator = "eq"
	OpNeq  Operator = "neq"
	OpLike Operator = "like"
	OpIn   Operator = "in"
)

// Logic combines the children of a filter group.
type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

// Filter is a structured predicate over entity fields. It is either a single
// condition (Field, Op, Value) or a group of filters combined with And/Or.
// Adapters translate it into their own query language.
type Filter struct {
	Field string
	Op    Operator
	Value any

	Logic    Logic
	Children []Filter
}

// Eq matches records whose field equals value.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

// Neq matches records whose field differs from value.
func Neq(field string, value any) Filter {
	return Filter{Field: field, Op: OpNeq, Value: value}
}

// Like matches records whose field matches the SQL LIKE pattern.
func Like(field, pattern string) Filter {
	return Filter{Field: field, Op: OpLike, Value: pattern}
}

// In matches records whose field is one of values.
func In(field string, values ...any) Filter {
	return Filter{Field: field, Op: OpIn, Value: values}
}

// And matches records satisfying every filter.
func And(filters ...Filter) Filter {
	return Filter{Logic: LogicAnd, Children: filters}
}

// Or matches records satisfying at least one filter.
func Or(filters ...Filter) Filter {
	return Filter{Logic: LogicOr, Children: filters}
}

// IsGroup reports whether the filter combines children rather than testing a field.
func (f Filter) IsGroup() bool {
	return f.Logic != ""
}

// String renders the filter for logs.
func (f Filter) String() string {
	if !f.IsGroup() {
		return fmt.Sprintf("%s %s %v", f.Field, f.Op, f.Value)
	}

	parts := make([]string, 0, len(f.Children))
	for _, child := range f.Children {
		parts = append(parts, child.String())
	}

	return "(" + strings.Join(parts, " "+string(f.Logic)+" ") + ")"
}
