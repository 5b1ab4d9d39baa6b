// Package dberr translates store errors into the apperr taxonomy.
package dberr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"bookrental/util/apperr"
)

// Map converts err from an operation on entity. Errors the taxonomy does
// not cover are wrapped with the entity name and returned as is.
func Map(err error, entity string) error {
	if err == nil {
		return nil
	}
	if apperr.Code(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(apperr.ErrNotFound, err, "%s not found", entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Wrap(apperr.ErrValidation, err, "%s already exists", entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Wrap(apperr.ErrIntegrity, err, "%s references a missing or still-referenced record", entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Wrap(apperr.ErrValidation, err, "%s %s already exists", entity, duplicateField(pgErr))
		case pgerrcode.ForeignKeyViolation:
			return apperr.Wrap(apperr.ErrIntegrity, err, "%s references a missing or still-referenced record", entity)
		case pgerrcode.CheckViolation:
			return apperr.Wrap(apperr.ErrValidation, err, "%s has an out-of-range value", entity)
		}
	}
	return fmt.Errorf("%s: %w", entity, err)
}

func duplicateField(pgErr *pgconn.PgError) string {
	cn := strings.ToLower(pgErr.ConstraintName)
	msg := strings.ToLower(pgErr.Message)
	for _, f := range []string{"email", "username", "name", "condition"} {
		if strings.Contains(cn, f) || strings.Contains(msg, f) {
			return f
		}
	}
	return "value"
}
