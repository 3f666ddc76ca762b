// Package mocks provides testify mocks of the service interfaces for handler tests.
package mocks

import "github.com/stretchr/testify/mock"

// result unpacks a (*T, error) return recorded on a mock call.
func result[T any](args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}
