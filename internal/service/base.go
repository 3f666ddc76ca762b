package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"groupapi/internal/apperror"
	"groupapi/internal/repository"
)

// Patch is a partial update. Apply copies only the fields that were set onto
// the persisted row.
type Patch[T any] interface {
	Apply(row *T)
}

// Constraint is a set of column values that must not collide with any
// existing row, soft-deleted rows included.
type Constraint struct {
	Fields  repository.Where
	Message string
}

// Options carries the uniqueness pre-checks of a write.
type Options struct {
	Unique []Constraint
}

// PageRequest is the pagination input of list endpoints.
// A zero Limit means the configured default.
type PageRequest struct {
	Limit  int
	Offset int
	Q      string
}

// Page is one page of results with the total number of matching rows.
type Page[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// FindOptions describes a paginated search.
type FindOptions struct {
	PageRequest
	Where repository.Where
	// SearchFields are matched against Q with a case-insensitive substring match.
	SearchFields []string
	Conds        []sq.Sqlizer
	Order        []string
}

// GetOptions describes a single-row lookup.
type GetOptions struct {
	Where repository.Where
	AnyOf []repository.Where
	Conds []sq.Sqlizer
	// CheckIfExists turns a miss into a NotFound error.
	CheckIfExists bool
}

// Limits bounds page sizes.
type Limits struct {
	Default int
	Maximum int
}

// Base implements the CRUD plumbing shared by every domain service on top of
// a repository.Store.
type Base[T any] struct {
	store  repository.Store[T]
	id     func(*T) int64
	limits Limits
	log    *zap.Logger

	// ReferencedMessage replaces the default conflict message returned when a
	// removal is blocked by rows referencing the entity.
	ReferencedMessage string
}

// NewBase creates a Base. id returns the internal identity of an entity.
func NewBase[T any](store repository.Store[T], id func(*T) int64, limits Limits, log *zap.Logger) *Base[T] {
	if log == nil {
		log = zap.NewNop()
	}
	if limits.Default <= 0 {
		limits.Default = 10
	}
	if limits.Maximum <= 0 {
		limits.Maximum = 50
	}
	return &Base[T]{store: store, id: id, limits: limits, log: log}
}

// Entity returns the display name of the entity.
func (b *Base[T]) Entity() string { return b.store.Entity() }

// Create checks the uniqueness constraints and inserts entity.
func (b *Base[T]) Create(ctx context.Context, entity *T, opts Options) (*T, error) {
	if err := b.checkUnique(ctx, opts.Unique, 0); err != nil {
		return nil, err
	}
	saved, err := b.store.Save(ctx, entity)
	if err != nil {
		return nil, b.fail(err)
	}
	return saved, nil
}

// FindPage returns the rows matching opts together with their total count.
func (b *Base[T]) FindPage(ctx context.Context, opts FindOptions) (*Page[T], error) {
	limit := opts.Limit
	if limit > b.limits.Maximum {
		return nil, apperror.Conflict("limit greater than %d.", b.limits.Maximum)
	}
	if limit <= 0 {
		limit = b.limits.Default
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	q := repository.Query{
		Where: opts.Where,
		Conds: opts.Conds,
		Order: opts.Order,
		Limit: limit, Offset: offset,
	}
	if opts.Q != "" && len(opts.SearchFields) > 0 {
		q.Search = &repository.FreeText{Value: opts.Q, Fields: opts.SearchFields}
	}

	count, err := b.store.Count(ctx, q)
	if err != nil {
		return nil, b.fail(err)
	}
	results, err := b.store.FindMany(ctx, q)
	if err != nil {
		return nil, b.fail(err)
	}
	if results == nil {
		results = []T{}
	}
	return &Page[T]{Count: count, Results: results}, nil
}

// GetOne returns the first row matching opts. On a miss it returns nil, or
// NotFound when CheckIfExists is set.
func (b *Base[T]) GetOne(ctx context.Context, opts GetOptions) (*T, error) {
	row, err := b.store.FindOne(ctx, repository.Query{
		Where: opts.Where,
		AnyOf: opts.AnyOf,
		Conds: opts.Conds,
	})
	if err != nil {
		return nil, b.fail(err)
	}
	if row == nil && opts.CheckIfExists {
		return nil, b.notFound(opts.Where, opts.AnyOf)
	}
	return row, nil
}

// Count returns the number of rows matching where.
func (b *Base[T]) Count(ctx context.Context, where repository.Where) (int, error) {
	n, err := b.store.Count(ctx, repository.Query{Where: where})
	if err != nil {
		return 0, b.fail(err)
	}
	return n, nil
}

// Update checks the uniqueness constraints, loads the row with the given
// identity, applies patch and saves it.
func (b *Base[T]) Update(ctx context.Context, id int64, patch Patch[T], opts Options) (*T, error) {
	if err := b.checkUnique(ctx, opts.Unique, id); err != nil {
		return nil, err
	}
	row, err := b.GetOne(ctx, GetOptions{
		Where:         repository.Where{repository.IDColumn: id},
		CheckIfExists: true,
	})
	if err != nil {
		return nil, err
	}
	return b.save(ctx, row, patch)
}

// GetOneAndUpdate resolves the row matching where and updates it.
func (b *Base[T]) GetOneAndUpdate(ctx context.Context, where repository.Where, patch Patch[T], opts Options) (*T, error) {
	row, err := b.GetOne(ctx, GetOptions{Where: where, CheckIfExists: true})
	if err != nil {
		return nil, err
	}
	if err := b.checkUnique(ctx, opts.Unique, b.id(row)); err != nil {
		return nil, err
	}
	return b.save(ctx, row, patch)
}

// GetOneAndRemove resolves the row matching where, deletes it and returns
// the row as it was before removal.
func (b *Base[T]) GetOneAndRemove(ctx context.Context, where repository.Where) (*T, error) {
	row, err := b.GetOne(ctx, GetOptions{Where: where, CheckIfExists: true})
	if err != nil {
		return nil, err
	}
	if err := b.store.Remove(ctx, row); err != nil {
		return nil, b.failRemove(err)
	}
	return row, nil
}

// GetOneAndSoftRemove is GetOneAndRemove for tables that keep deleted rows.
func (b *Base[T]) GetOneAndSoftRemove(ctx context.Context, where repository.Where) (*T, error) {
	row, err := b.GetOne(ctx, GetOptions{Where: where, CheckIfExists: true})
	if err != nil {
		return nil, err
	}
	if err := b.store.SoftRemove(ctx, row); err != nil {
		return nil, b.failRemove(err)
	}
	return row, nil
}

func (b *Base[T]) save(ctx context.Context, row *T, patch Patch[T]) (*T, error) {
	if patch != nil {
		patch.Apply(row)
	}
	saved, err := b.store.Save(ctx, row)
	if err != nil {
		return nil, b.fail(err)
	}
	return saved, nil
}

// checkUnique runs one lookup per constraint, ignoring nil values. A non-zero
// self excludes the row being updated.
func (b *Base[T]) checkUnique(ctx context.Context, constraints []Constraint, self int64) error {
	for _, c := range constraints {
		fields := repository.Where{}
		for k, v := range c.Fields {
			if v, ok := deref(v); ok {
				fields[k] = v
			}
		}
		if len(fields) == 0 {
			continue
		}

		q := repository.Query{Where: fields, WithDeleted: true}
		if self != 0 {
			q.Conds = []sq.Sqlizer{sq.NotEq{repository.IDColumn: self}}
		}
		existing, err := b.store.FindOne(ctx, q)
		if err != nil {
			return b.fail(err)
		}
		if existing == nil {
			continue
		}
		if c.Message != "" {
			return apperror.Conflict("%s", c.Message)
		}
		return apperror.Conflict("%s with %s already exists.", b.Entity(), describe(fields, " ", ", "))
	}
	return nil
}

func (b *Base[T]) notFound(where repository.Where, anyOf []repository.Where) error {
	var parts []string
	if len(where) > 0 {
		parts = append(parts, describe(where, ") = (", ") | ("))
	}
	for _, w := range anyOf {
		parts = append(parts, describe(w, ") = (", ") | ("))
	}
	if len(parts) == 0 {
		return apperror.NotFound("can't get the %s.", b.Entity())
	}
	return apperror.NotFound("can't get the %s with the values: (%s).", b.Entity(), strings.Join(parts, ") | ("))
}

func (b *Base[T]) failRemove(err error) error {
	if repository.KindOf(err) == repository.KindForeignKeyViolation {
		if b.ReferencedMessage != "" {
			return apperror.Conflict("%s", b.ReferencedMessage)
		}
		return apperror.Conflict("the %s cannot be removed because it is still referenced by other records.", b.Entity())
	}
	return b.fail(err)
}

// fail translates a store error into an *apperror.Error. Unrecognized errors
// are logged and hidden behind a generic internal error.
func (b *Base[T]) fail(err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	if se, ok := repository.AsStoreError(err); ok && se.Kind == repository.KindUniqueViolation && se.Detail == "" {
		return apperror.Conflict("%s already exists.", b.Entity())
	}
	if e, ok := repository.Translate(err); ok && repository.KindOf(err) != repository.KindForeignKeyViolation {
		return e
	}
	if errors.Is(err, repository.ErrNoRowsAffected) {
		return apperror.NotFound("can't get the %s.", b.Entity())
	}

	b.log.Error("unexpected store error", zap.String("entity", b.Entity()), zap.Error(err))
	return apperror.Internal(err)
}

// deref unwraps pointer values. It reports false for nil values, which take
// no part in a uniqueness lookup.
func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, false
		}
		return rv.Elem().Interface(), true
	case reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
	}
	return v, true
}

// describe renders the pairs of w sorted by column, e.g. "email a@x.com".
func describe(w repository.Where, kv, sep string) string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := deref(w[k])
		parts = append(parts, k+kv+fmt.Sprint(v))
	}
	return strings.Join(parts, sep)
}
