// Package pgerrs classifies PostgreSQL errors regardless of which driver
// produced them.
package pgerrs

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation pq.ErrorCode = "23505"

// IsUniqueViolation reports a violated unique constraint. gorm translates
// pgx errors into gorm.ErrDuplicatedKey when TranslateError is set; lib/pq
// errors are matched by SQLSTATE.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
