package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookrental/util/apperr"
)

func TestMapGormErrors(t *testing.T) {
	require.Nil(t, Map(nil, "book"))

	err := Map(gorm.ErrRecordNotFound, "book")
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
	require.Equal(t, "book not found", err.Error())

	require.Equal(t, apperr.ErrValidation, apperr.Code(Map(gorm.ErrDuplicatedKey, "author")))
	require.Equal(t, apperr.ErrIntegrity, apperr.Code(Map(gorm.ErrForeignKeyViolated, "book")))
}

func TestMapPostgresErrors(t *testing.T) {
	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_customers_email"}
	err := Map(fmt.Errorf("insert: %w", dup), "customer")
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))
	require.Equal(t, "customer email already exists", err.Error())

	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	require.Equal(t, apperr.ErrIntegrity, apperr.Code(Map(fk, "book")))
}

func TestMapPassesThrough(t *testing.T) {
	coded := apperr.Validation("bad")
	require.Same(t, coded, Map(coded, "book"))

	other := errors.New("connection reset")
	err := Map(other, "rental")
	require.Equal(t, apperr.ErrCode(""), apperr.Code(err))
	require.ErrorIs(t, err, other)
}
