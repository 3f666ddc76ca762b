package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"groupapi/internal/model"
	"groupapi/internal/service"
)

type MockGroupRequestService struct {
	mock.Mock
}

func (m *MockGroupRequestService) FindAll(ctx context.Context, actor *model.User, f service.GroupRequestFilter) (*service.Page[model.GroupRequest], error) {
	return result[service.Page[model.GroupRequest]](m.Called(ctx, actor, f))
}

func (m *MockGroupRequestService) Delete(ctx context.Context, actor *model.User, uid string) (*model.GroupRequest, error) {
	return result[model.GroupRequest](m.Called(ctx, actor, uid))
}

func (m *MockGroupRequestService) AssignToUsers(ctx context.Context, actor *model.User, in service.AssignRequestsInput) (*service.AssignRequestsResult, error) {
	return result[service.AssignRequestsResult](m.Called(ctx, actor, in))
}

func (m *MockGroupRequestService) Approve(ctx context.Context, actor *model.User, uid string) (*model.GroupAssignedUser, error) {
	return result[model.GroupAssignedUser](m.Called(ctx, actor, uid))
}

func (m *MockGroupRequestService) Reject(ctx context.Context, actor *model.User, uid string) (*model.GroupRequest, error) {
	return result[model.GroupRequest](m.Called(ctx, actor, uid))
}
