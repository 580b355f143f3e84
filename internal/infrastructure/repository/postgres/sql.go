package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/riskibarqy/league-standings/internal/domain/uow"
)

const (
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqUniqueViolation     = "23505"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// translateError maps constraint violations onto store level sentinels and
// leaves every other error untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %s", uow.ErrReferenceNotFound, constraintName(pqErr))
	case pqCheckViolation, pqUniqueViolation:
		return fmt.Errorf("%w: %s", uow.ErrConstraint, constraintName(pqErr))
	default:
		return err
	}
}

func constraintName(err *pq.Error) string {
	if err.Constraint != "" {
		return err.Constraint
	}
	return err.Message
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	out := int(value.Int64)
	return &out
}

func nullInt64ToInt(value sql.NullInt64) int {
	if !value.Valid {
		return 0
	}
	return int(value.Int64)
}

func nullStringToString(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}
