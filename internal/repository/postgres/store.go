package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"groupapi/internal/model"
	"groupapi/internal/repository"
)

// DeletedAtColumn marks soft-deleted rows.
const DeletedAtColumn = "deleted_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// Table maps an entity type onto a PostgreSQL table.
// Columns starts with the identity column; Values and Scan follow the same order
// (Values without the identity).
type Table[T any] struct {
	Name       string
	Entity     string
	Columns    []string
	SoftDelete bool
	ID         func(e *T) int64
	Values     func(e *T) []any
	Scan       func(s scanner, e *T) error
	Timestamps func(e *T) *model.Timestamps
}

func (t Table[T]) writable() []string { return t.Columns[1:] }

// Store is a PostgreSQL implementation of repository.Store built with squirrel
// and parameterized queries.
type Store[T any] struct {
	db    DBTX
	table Table[T]
	now   func() time.Time
}

// NewStore creates a Store for the given table.
func NewStore[T any](db DBTX, table Table[T]) *Store[T] {
	return &Store[T]{db: db, table: table, now: time.Now}
}

func (s *Store[T]) Entity() string { return s.table.Entity }

func (s *Store[T]) filtered(b sq.SelectBuilder, q repository.Query) sq.SelectBuilder {
	if len(q.Where) > 0 {
		b = b.Where(sq.Eq(q.Where))
	}
	if len(q.AnyOf) > 0 {
		or := sq.Or{}
		for _, w := range q.AnyOf {
			or = append(or, sq.Eq(w))
		}
		b = b.Where(or)
	}
	if q.Search != nil && q.Search.Value != "" && len(q.Search.Fields) > 0 {
		pattern := "%" + q.Search.Value + "%"
		or := sq.Or{}
		for _, f := range q.Search.Fields {
			or = append(or, sq.ILike{f: pattern})
		}
		b = b.Where(or)
	}
	for _, c := range q.Conds {
		b = b.Where(c)
	}
	if s.table.SoftDelete && !q.WithDeleted {
		b = b.Where(sq.Eq{DeletedAtColumn: nil})
	}
	return b
}

func (s *Store[T]) selectRows(q repository.Query) sq.SelectBuilder {
	b := s.filtered(psql.Select(s.table.Columns...).From(s.table.Name), q)
	if len(q.Order) > 0 {
		b = b.OrderBy(q.Order...)
	}
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		b = b.Offset(uint64(q.Offset))
	}
	return b
}

// FindOne returns the first matching row or nil when none matches.
func (s *Store[T]) FindOne(ctx context.Context, q repository.Query) (*T, error) {
	q.Limit = 1
	query, args, err := s.selectRows(q).ToSql()
	if err != nil {
		return nil, err
	}
	var out T
	if err := s.table.Scan(s.db.QueryRowContext(ctx, query, args...), &out); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err)
	}
	return &out, nil
}

// FindMany returns the rows matching q.
func (s *Store[T]) FindMany(ctx context.Context, q repository.Query) ([]T, error) {
	query, args, err := s.selectRows(q).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var e T
		if err := s.table.Scan(rows, &e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return items, nil
}

// Count returns the number of rows matching q.
func (s *Store[T]) Count(ctx context.Context, q repository.Query) (int, error) {
	query, args, err := s.filtered(psql.Select("COUNT(*)").From(s.table.Name), q).ToSql()
	if err != nil {
		return 0, err
	}
	var total int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, classify(err)
	}
	return total, nil
}

// Save inserts a new row when the entity has no identity yet, otherwise it
// rewrites every writable column of the existing row.
func (s *Store[T]) Save(ctx context.Context, entity *T) (*T, error) {
	now := s.now().UTC()
	ts := s.table.Timestamps(entity)
	returning := "RETURNING " + strings.Join(s.table.Columns, ", ")

	var query string
	var args []any
	var err error

	id := s.table.ID(entity)
	if id == 0 {
		ts.CreatedAt, ts.UpdatedAt = now, now
		query, args, err = psql.Insert(s.table.Name).
			Columns(s.table.writable()...).
			Values(s.table.Values(entity)...).
			Suffix(returning).
			ToSql()
	} else {
		ts.UpdatedAt = now
		set := make(map[string]any, len(s.table.writable()))
		for i, v := range s.table.Values(entity) {
			set[s.table.writable()[i]] = v
		}
		query, args, err = psql.Update(s.table.Name).
			SetMap(set).
			Where(sq.Eq{repository.IDColumn: id}).
			Suffix(returning).
			ToSql()
	}
	if err != nil {
		return nil, err
	}

	var out T
	if err := s.table.Scan(s.db.QueryRowContext(ctx, query, args...), &out); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoRowsAffected
		}
		return nil, classify(err)
	}
	return &out, nil
}

// Remove deletes the row permanently.
func (s *Store[T]) Remove(ctx context.Context, entity *T) error {
	query, args, err := psql.Delete(s.table.Name).
		Where(sq.Eq{repository.IDColumn: s.table.ID(entity)}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return classify(err)
	}
	return nil
}

// SoftRemove stamps deleted_at; the row stays visible to WithDeleted reads.
func (s *Store[T]) SoftRemove(ctx context.Context, entity *T) error {
	if !s.table.SoftDelete {
		return fmt.Errorf("%s: %w", s.table.Name, repository.ErrSoftDeleteUnsupported)
	}
	now := s.now().UTC()
	query, args, err := psql.Update(s.table.Name).
		Set(DeletedAtColumn, now).
		Set("updated_at", now).
		Where(sq.Eq{repository.IDColumn: s.table.ID(entity)}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNoRowsAffected
	}
	return nil
}
