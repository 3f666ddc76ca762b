package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"groupapi/internal/repository"
)

// MockStore is a testify mock of repository.Store for any entity type.
type MockStore[T any] struct {
	mock.Mock
	Name string
}

// NewMockStore returns a mock reporting name as its entity.
func NewMockStore[T any](name string) *MockStore[T] {
	return &MockStore[T]{Name: name}
}

func (m *MockStore[T]) Entity() string { return m.Name }

func (m *MockStore[T]) FindOne(ctx context.Context, q repository.Query) (*T, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockStore[T]) FindMany(ctx context.Context, q repository.Query) ([]T, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) Count(ctx context.Context, q repository.Query) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *MockStore[T]) Save(ctx context.Context, entity *T) (*T, error) {
	args := m.Called(ctx, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockStore[T]) Remove(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockStore[T]) SoftRemove(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}
