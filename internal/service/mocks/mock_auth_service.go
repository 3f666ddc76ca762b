package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"groupapi/internal/auth"
	"groupapi/internal/model"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	return result[auth.TokenPair](m.Called(ctx, email, password))
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	return result[auth.TokenPair](m.Called(ctx, refreshToken))
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	return result[model.User](m.Called(ctx, accessToken))
}
