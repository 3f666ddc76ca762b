package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"groupapi/internal/repository"
)

// memStore is an in-memory repository.Store used to check facade behavior
// end to end. It understands Where, AnyOf, Search, WithDeleted and sq.NotEq conds.
type memStore[T any] struct {
	mu      sync.Mutex
	entity  string
	rows    []T
	nextID  int64
	columns func(*T) map[string]any
	setID   func(*T, int64)
	deleted func(*T) *time.Time
	remove  func(*T, time.Time)
	// cond evaluates conditions other than sq.NotEq; nil ignores them.
	cond  func(*T, sq.Sqlizer) bool
	saves int
	// saveErr and removeErr, when set, are returned by Save and Remove.
	saveErr   error
	removeErr error
}

func (m *memStore[T]) Entity() string { return m.entity }

func (m *memStore[T]) matches(row *T, q repository.Query) bool {
	cols := m.columns(row)
	if m.deleted != nil && !q.WithDeleted && m.deleted(row) != nil {
		return false
	}
	if !matchWhere(cols, q.Where) {
		return false
	}
	if len(q.AnyOf) > 0 {
		ok := false
		for _, w := range q.AnyOf {
			if matchWhere(cols, w) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if q.Search != nil {
		found := false
		needle := strings.ToLower(q.Search.Value)
		for _, f := range q.Search.Fields {
			v, set := deref(cols[f])
			if set && strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, c := range q.Conds {
		if ne, ok := c.(sq.NotEq); ok {
			for k, v := range ne {
				if fmt.Sprint(cols[k]) == fmt.Sprint(v) {
					return false
				}
			}
			continue
		}
		if m.cond != nil && !m.cond(row, c) {
			return false
		}
	}
	return true
}

func matchWhere(cols map[string]any, w repository.Where) bool {
	for k, v := range w {
		got, _ := deref(cols[k])
		if !matchValue(got, v) {
			return false
		}
	}
	return true
}

// matchValue compares got with want; a slice want matches any of its elements.
func matchValue(got, want any) bool {
	rv := reflect.ValueOf(want)
	if rv.Kind() == reflect.Slice {
		for i := 0; i < rv.Len(); i++ {
			if fmt.Sprint(got) == fmt.Sprint(rv.Index(i).Interface()) {
				return true
			}
		}
		return false
	}
	return fmt.Sprint(got) == fmt.Sprint(want)
}

func (m *memStore[T]) FindOne(_ context.Context, q repository.Query) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.matches(&m.rows[i], q) {
			row := m.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (m *memStore[T]) FindMany(_ context.Context, q repository.Query) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []T{}
	for i := range m.rows {
		if m.matches(&m.rows[i], q) {
			out = append(out, m.rows[i])
		}
	}
	if q.Offset >= len(out) {
		return []T{}, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStore[T]) Count(_ context.Context, q repository.Query) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for i := range m.rows {
		if m.matches(&m.rows[i], q) {
			n++
		}
	}
	return n, nil
}

func (m *memStore[T]) id(row *T) int64 {
	id, _ := m.columns(row)[repository.IDColumn].(int64)
	return id
}

func (m *memStore[T]) Save(_ context.Context, entity *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	if m.id(entity) == 0 {
		m.nextID++
		m.setID(entity, m.nextID)
		m.rows = append(m.rows, *entity)
		row := *entity
		return &row, nil
	}
	for i := range m.rows {
		if m.id(&m.rows[i]) == m.id(entity) {
			m.rows[i] = *entity
			row := *entity
			return &row, nil
		}
	}
	return nil, repository.ErrNoRowsAffected
}

func (m *memStore[T]) Remove(_ context.Context, entity *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removeErr != nil {
		return m.removeErr
	}
	for i := range m.rows {
		if m.id(&m.rows[i]) == m.id(entity) {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNoRowsAffected
}

func (m *memStore[T]) SoftRemove(_ context.Context, entity *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.remove == nil {
		return repository.ErrSoftDeleteUnsupported
	}
	for i := range m.rows {
		if m.id(&m.rows[i]) == m.id(entity) {
			m.remove(&m.rows[i], time.Now())
			return nil
		}
	}
	return repository.ErrNoRowsAffected
}
