package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"groupapi/internal/model"
	"groupapi/internal/service"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, in service.CreateUserInput) (*model.User, error) {
	return result[model.User](m.Called(ctx, in))
}

func (m *MockUserService) FindAll(ctx context.Context, f service.UserFilter) (*service.Page[model.User], error) {
	return result[service.Page[model.User]](m.Called(ctx, f))
}

func (m *MockUserService) FindOne(ctx context.Context, authUID string) (*model.User, error) {
	return result[model.User](m.Called(ctx, authUID))
}

func (m *MockUserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return result[model.User](m.Called(ctx, email))
}

func (m *MockUserService) Update(ctx context.Context, actor *model.User, authUID string, patch service.UserPatch) (*model.User, error) {
	return result[model.User](m.Called(ctx, actor, authUID, patch))
}

func (m *MockUserService) Delete(ctx context.Context, actor *model.User, authUID string) (*model.User, error) {
	return result[model.User](m.Called(ctx, actor, authUID))
}
