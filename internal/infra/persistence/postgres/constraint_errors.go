package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether err comes from a unique index.
// GORM translates the driver error when TranslateError is on; the message check
// covers drivers that surface the raw error.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "sqlstate 23505")
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null constraint") ||
		strings.Contains(errMsg, "sqlstate 23502") // PostgreSQL not_null_violation error code
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}

// isValueTooLong reports a string that exceeds its column width
// (PostgreSQL string_data_right_truncation).
func isValueTooLong(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "value too long") ||
		strings.Contains(errMsg, "sqlstate 22001")
}
