package repository

import (
	"errors"
	"fmt"

	"groupapi/internal/apperror"
)

// ErrorKind classifies storage failures the service layer knows how to report.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUniqueViolation
	KindValueTooLong
	KindForeignKeyViolation
	KindNotNullViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindUniqueViolation:
		return "unique_violation"
	case KindValueTooLong:
		return "value_too_long"
	case KindForeignKeyViolation:
		return "foreign_key_violation"
	case KindNotNullViolation:
		return "not_null_violation"
	default:
		return "unknown"
	}
}

var (
	// ErrNoRowsAffected is returned when a write targets a row that no longer exists.
	ErrNoRowsAffected = errors.New("no rows affected")
	// ErrSoftDeleteUnsupported is returned by SoftRemove on tables without a deleted_at column.
	ErrSoftDeleteUnsupported = errors.New("soft delete is not supported by this table")
)

// StoreError is a storage failure with a recognized database-level cause.
type StoreError struct {
	Kind ErrorKind
	// Detail is the database's own description, e.g. "Key (email)=(a@x.com) already exists."
	Detail string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// KindOf returns the classification of err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// AsStoreError extracts a *StoreError from err's chain.
func AsStoreError(err error) (*StoreError, bool) {
	var se *StoreError
	ok := errors.As(err, &se)
	return se, ok
}

// Translate maps a recognized store error to the error reported to API
// callers. Unknown kinds and non-store errors report false.
func Translate(err error) (*apperror.Error, bool) {
	se, ok := AsStoreError(err)
	if !ok {
		return nil, false
	}
	var e *apperror.Error
	switch se.Kind {
	case KindUniqueViolation:
		e = apperror.Conflict("%s", se.Detail)
	case KindValueTooLong:
		e = apperror.BadRequest("some property exceeds the allowed length")
	case KindForeignKeyViolation:
		e = apperror.Conflict("the record is still referenced by other records.")
	default:
		return nil, false
	}
	e.Err = err
	return e, true
}
