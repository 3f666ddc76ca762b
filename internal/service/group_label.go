package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"groupapi/internal/apperror"
	"groupapi/internal/model"
	"groupapi/internal/repository"
)

// GroupLabelInput is the payload of group label creation.
type GroupLabelInput struct {
	LabelInput
	GroupUID string
}

// GroupLabelPatch holds the editable fields of a group label.
type GroupLabelPatch struct {
	LabelPatch
}

func (p GroupLabelPatch) Apply(l *model.GroupLabel) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.TextColor != nil {
		l.TextColor = *p.TextColor
	}
	if p.BackgroundColor != nil {
		l.BackgroundColor = *p.BackgroundColor
	}
}

// GroupLabelService manages labels scoped to a group.
type GroupLabelService interface {
	// Create adds a label to the group. Actor must administer the group.
	Create(ctx context.Context, actor *model.User, in GroupLabelInput) (*model.GroupLabel, error)

	// GetAllByGroup lists the labels of a group actor belongs to.
	GetAllByGroup(ctx context.Context, actor *model.User, groupUID string, page PageRequest) (*Page[model.GroupLabel], error)

	FindOne(ctx context.Context, actor *model.User, groupUID, uid string) (*model.GroupLabel, error)

	// Update edits a label. Actor must administer the group.
	Update(ctx context.Context, actor *model.User, groupUID, uid string, patch GroupLabelPatch) (*model.GroupLabel, error)

	// Delete removes a label that nothing references. Actor must administer the group.
	Delete(ctx context.Context, actor *model.User, groupUID, uid string) (*model.GroupLabel, error)
}

type groupLabelService struct {
	base  *Base[model.GroupLabel]
	group GroupService
}

func NewGroupLabelService(store repository.Store[model.GroupLabel], group GroupService, limits Limits, log *zap.Logger) GroupLabelService {
	base := NewBase(store, func(l *model.GroupLabel) int64 { return l.ID }, limits, log)
	base.ReferencedMessage = "the label cannot be removed because it is being used on images or videos."
	return &groupLabelService{base: base, group: group}
}

// manage resolves actor's membership and requires an administrative role.
func (s *groupLabelService) manage(ctx context.Context, actor *model.User, groupUID, action string) (*model.GroupAssignedUser, error) {
	member, err := s.group.UserRole(ctx, actor, groupUID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanManage() {
		return nil, apperror.Conflict("only group admin users can %s labels.", action)
	}
	return member, nil
}

func (s *groupLabelService) Create(ctx context.Context, actor *model.User, in GroupLabelInput) (*model.GroupLabel, error) {
	member, err := s.manage(ctx, actor, in.GroupUID, "create new")
	if err != nil {
		return nil, err
	}
	name := strings.ToLower(in.Name)
	return s.base.Create(ctx, &model.GroupLabel{
		UID:             uuid.NewString(),
		Name:            name,
		TextColor:       in.TextColor,
		BackgroundColor: in.BackgroundColor,
		GroupID:         member.GroupID,
	}, Options{Unique: []Constraint{{
		Fields:  repository.Where{"group_id": member.GroupID, "name": name},
		Message: "label with name " + name + " already exists.",
	}}})
}

func (s *groupLabelService) GetAllByGroup(ctx context.Context, actor *model.User, groupUID string, page PageRequest) (*Page[model.GroupLabel], error) {
	group, err := s.group.FindOne(ctx, actor, groupUID)
	if err != nil {
		return nil, err
	}
	return s.base.FindPage(ctx, FindOptions{
		PageRequest:  page,
		Where:        repository.Where{"group_id": group.ID},
		SearchFields: []string{"name"},
		Order:        []string{"id DESC"},
	})
}

func (s *groupLabelService) FindOne(ctx context.Context, actor *model.User, groupUID, uid string) (*model.GroupLabel, error) {
	group, err := s.group.FindOne(ctx, actor, groupUID)
	if err != nil {
		return nil, err
	}
	return s.base.GetOne(ctx, GetOptions{
		Where:         repository.Where{"uid": uid, "group_id": group.ID},
		CheckIfExists: true,
	})
}

func (s *groupLabelService) Update(ctx context.Context, actor *model.User, groupUID, uid string, patch GroupLabelPatch) (*model.GroupLabel, error) {
	member, err := s.manage(ctx, actor, groupUID, "update")
	if err != nil {
		return nil, err
	}
	patch.LabelPatch = patch.LabelPatch.normalized()

	var unique []Constraint
	if patch.Name != nil {
		unique = append(unique, Constraint{
			Fields:  repository.Where{"group_id": member.GroupID, "name": *patch.Name},
			Message: "label with name " + *patch.Name + " already exists.",
		})
	}
	return s.base.GetOneAndUpdate(ctx, repository.Where{"uid": uid, "group_id": member.GroupID}, patch, Options{Unique: unique})
}

func (s *groupLabelService) Delete(ctx context.Context, actor *model.User, groupUID, uid string) (*model.GroupLabel, error) {
	member, err := s.manage(ctx, actor, groupUID, "delete")
	if err != nil {
		return nil, err
	}
	return s.base.GetOneAndRemove(ctx, repository.Where{"uid": uid, "group_id": member.GroupID})
}
