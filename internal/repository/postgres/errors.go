package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"groupapi/internal/repository"
)

// SQLSTATE codes the service layer reports specifically.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeStringTruncation    = "22001"
)

// classify wraps recognized PostgreSQL errors in a *repository.StoreError.
// Unrecognized errors are returned unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	var kind repository.ErrorKind
	switch pgErr.Code {
	case codeUniqueViolation:
		kind = repository.KindUniqueViolation
	case codeStringTruncation:
		kind = repository.KindValueTooLong
	case codeForeignKeyViolation:
		kind = repository.KindForeignKeyViolation
	case codeNotNullViolation:
		kind = repository.KindNotNullViolation
	default:
		return err
	}
	return &repository.StoreError{Kind: kind, Detail: pgErr.Detail, Err: err}
}
