package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"groupapi/internal/model"
	"groupapi/internal/service"
)

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) Create(ctx context.Context, actor *model.User, name string) (*model.Group, error) {
	return result[model.Group](m.Called(ctx, actor, name))
}

func (m *MockGroupService) FindAll(ctx context.Context, actor *model.User, page service.PageRequest) (*service.Page[model.Group], error) {
	return result[service.Page[model.Group]](m.Called(ctx, actor, page))
}

func (m *MockGroupService) FindOne(ctx context.Context, actor *model.User, uid string) (*model.Group, error) {
	return result[model.Group](m.Called(ctx, actor, uid))
}

func (m *MockGroupService) Update(ctx context.Context, actor *model.User, uid string, patch service.GroupPatch) (*model.Group, error) {
	return result[model.Group](m.Called(ctx, actor, uid, patch))
}

func (m *MockGroupService) Delete(ctx context.Context, actor *model.User, uid string) (*model.Group, error) {
	return result[model.Group](m.Called(ctx, actor, uid))
}

func (m *MockGroupService) UserRole(ctx context.Context, actor *model.User, uid string) (*model.GroupAssignedUser, error) {
	return result[model.GroupAssignedUser](m.Called(ctx, actor, uid))
}

func (m *MockGroupService) AssignUser(ctx context.Context, user *model.User, group *model.Group, role model.GroupRole) (*model.GroupAssignedUser, error) {
	return result[model.GroupAssignedUser](m.Called(ctx, user, group, role))
}
