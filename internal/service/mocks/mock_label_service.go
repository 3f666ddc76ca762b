package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"groupapi/internal/model"
	"groupapi/internal/service"
)

type MockLabelService struct {
	mock.Mock
}

func (m *MockLabelService) Create(ctx context.Context, in service.LabelInput) (*model.Label, error) {
	return result[model.Label](m.Called(ctx, in))
}

func (m *MockLabelService) FindAll(ctx context.Context, page service.PageRequest) (*service.Page[model.Label], error) {
	return result[service.Page[model.Label]](m.Called(ctx, page))
}

func (m *MockLabelService) FindOne(ctx context.Context, uid string) (*model.Label, error) {
	return result[model.Label](m.Called(ctx, uid))
}

func (m *MockLabelService) Update(ctx context.Context, uid string, patch service.LabelPatch) (*model.Label, error) {
	return result[model.Label](m.Called(ctx, uid, patch))
}

func (m *MockLabelService) Delete(ctx context.Context, uid string) (*model.Label, error) {
	return result[model.Label](m.Called(ctx, uid))
}

type MockGroupLabelService struct {
	mock.Mock
}

func (m *MockGroupLabelService) Create(ctx context.Context, actor *model.User, in service.GroupLabelInput) (*model.GroupLabel, error) {
	return result[model.GroupLabel](m.Called(ctx, actor, in))
}

func (m *MockGroupLabelService) GetAllByGroup(ctx context.Context, actor *model.User, groupUID string, page service.PageRequest) (*service.Page[model.GroupLabel], error) {
	return result[service.Page[model.GroupLabel]](m.Called(ctx, actor, groupUID, page))
}

func (m *MockGroupLabelService) FindOne(ctx context.Context, actor *model.User, groupUID, uid string) (*model.GroupLabel, error) {
	return result[model.GroupLabel](m.Called(ctx, actor, groupUID, uid))
}

func (m *MockGroupLabelService) Update(ctx context.Context, actor *model.User, groupUID, uid string, patch service.GroupLabelPatch) (*model.GroupLabel, error) {
	return result[model.GroupLabel](m.Called(ctx, actor, groupUID, uid, patch))
}

func (m *MockGroupLabelService) Delete(ctx context.Context, actor *model.User, groupUID, uid string) (*model.GroupLabel, error) {
	return result[model.GroupLabel](m.Called(ctx, actor, groupUID, uid))
}
