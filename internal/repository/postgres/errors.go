package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/mamadbah2/leafline/internal/domain/models"
)

// PostgreSQL error codes the gateway distinguishes.
const (
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrNotNullViolation    = "23502" // not_null_violation
	PgErrCheckViolation      = "23514" // check_violation
)

// translate maps gorm and driver errors onto the domain sentinels so raw
// driver errors never escape the gateway.
func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, models.ErrConflict)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrUniqueViolation, PgErrForeignKeyViolation, PgErrCheckViolation, PgErrNotNullViolation:
			return fmt.Errorf("%s: %w: %s", op, models.ErrConflict, pgErr.Message)
		}
		return fmt.Errorf("%s: %w: [%s] %s", op, models.ErrUnavailable, pgErr.Code, pgErr.Message)
	}

	return fmt.Errorf("%s: %w: %v", op, models.ErrUnavailable, err)
}
