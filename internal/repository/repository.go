// Package repository defines the storage port the service layer is written
// against. Implementations live in subpackages (e.g., postgres).
package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

// IDColumn is the internal numeric identity every table carries.
const IDColumn = "id"

// Where is an exact-match filter. Entries are AND-ed together.
// Keys are column names chosen by the service layer, never by callers.
type Where map[string]any

// FreeText matches rows where any of Fields contains Value, case-insensitively.
type FreeText struct {
	Value  string
	Fields []string
}

// Query describes a read against a single table.
type Query struct {
	Where Where
	// AnyOf holds alternative exact filters; a row matches if it matches any of them.
	AnyOf  []Where
	Search *FreeText
	// Conds are extra caller-supplied predicates, AND-ed with the rest.
	Conds []sq.Sqlizer
	Order []string
	// Limit of 0 means no limit.
	Limit       int
	Offset      int
	WithDeleted bool
}

// Store is the persistence port for one entity type. It contains no business logic.
type Store[T any] interface {
	// Entity is the lower-case display name used in error messages, e.g. "user".
	Entity() string

	// FindOne returns the first matching row, or nil and no error when none matches.
	FindOne(ctx context.Context, q Query) (*T, error)

	// FindMany returns the matching rows honoring order, limit and offset.
	FindMany(ctx context.Context, q Query) ([]T, error)

	// Count returns the number of matching rows, ignoring order, limit and offset.
	Count(ctx context.Context, q Query) (int, error)

	// Save inserts entity when its identity is zero and updates every column otherwise.
	// The stored row is returned.
	Save(ctx context.Context, entity *T) (*T, error)

	// Remove permanently deletes the row.
	Remove(ctx context.Context, entity *T) error

	// SoftRemove marks the row deleted while keeping it in storage.
	SoftRemove(ctx context.Context, entity *T) error
}
