package service

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"groupapi/internal/apperror"
	"groupapi/internal/model"
	"groupapi/internal/repository"
)

// GroupPatch holds the editable fields of a group.
type GroupPatch struct {
	Name *string
}

func (p GroupPatch) Apply(g *model.Group) {
	if p.Name != nil {
		g.Name = *p.Name
	}
}

// GroupService manages groups and their memberships.
type GroupService interface {
	// Create makes a group and assigns actor to it as SUPER_ADMIN.
	Create(ctx context.Context, actor *model.User, name string) (*model.Group, error)

	// FindAll lists the groups actor belongs to, newest first.
	FindAll(ctx context.Context, actor *model.User, page PageRequest) (*Page[model.Group], error)

	// FindOne returns a group actor belongs to, or NotFound.
	FindOne(ctx context.Context, actor *model.User, uid string) (*model.Group, error)

	// Update renames a group. The actor must be an ADMIN or SUPER_ADMIN of it.
	Update(ctx context.Context, actor *model.User, uid string, patch GroupPatch) (*model.Group, error)

	// Delete removes a group. The actor must be its SUPER_ADMIN.
	Delete(ctx context.Context, actor *model.User, uid string) (*model.Group, error)

	// UserRole returns actor's membership in the group with uid.
	UserRole(ctx context.Context, actor *model.User, uid string) (*model.GroupAssignedUser, error)

	// AssignUser adds user to group with role.
	AssignUser(ctx context.Context, user *model.User, group *model.Group, role model.GroupRole) (*model.GroupAssignedUser, error)
}

type groupService struct {
	groups  *Base[model.Group]
	members *Base[model.GroupAssignedUser]
}

// NewGroupService constructs a GroupService.
func NewGroupService(
	groups repository.Store[model.Group],
	members repository.Store[model.GroupAssignedUser],
	limits Limits,
	log *zap.Logger,
) GroupService {
	return &groupService{
		groups:  NewBase(groups, func(g *model.Group) int64 { return g.ID }, limits, log),
		members: NewBase(members, func(m *model.GroupAssignedUser) int64 { return m.ID }, limits, log),
	}
}

// memberOf restricts group rows to those UserID belongs to.
type memberOf struct {
	UserID int64
}

func (m memberOf) ToSql() (string, []any, error) {
	return "id IN (SELECT group_id FROM group_assigned_users WHERE user_id = ?)", []any{m.UserID}, nil
}

func (s *groupService) Create(ctx context.Context, actor *model.User, name string) (*model.Group, error) {
	group, err := s.groups.Create(ctx, &model.Group{UID: uuid.NewString(), Name: name}, Options{})
	if err != nil {
		return nil, err
	}
	if _, err := s.AssignUser(ctx, actor, group, model.GroupRoleSuperAdmin); err != nil {
		// A group without its owner is unreachable, so drop it.
		if _, rmErr := s.groups.GetOneAndRemove(ctx, repository.Where{repository.IDColumn: group.ID}); rmErr != nil {
			return nil, errors.Join(err, rmErr)
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) FindAll(ctx context.Context, actor *model.User, page PageRequest) (*Page[model.Group], error) {
	return s.groups.FindPage(ctx, FindOptions{
		PageRequest:  page,
		SearchFields: []string{"name"},
		Conds:        []sq.Sqlizer{memberOf{UserID: actor.ID}},
		Order:        []string{"id DESC"},
	})
}

func (s *groupService) FindOne(ctx context.Context, actor *model.User, uid string) (*model.Group, error) {
	return s.groups.GetOne(ctx, GetOptions{
		Where:         repository.Where{"uid": uid},
		Conds:         []sq.Sqlizer{memberOf{UserID: actor.ID}},
		CheckIfExists: true,
	})
}

func (s *groupService) Update(ctx context.Context, actor *model.User, uid string, patch GroupPatch) (*model.Group, error) {
	group, member, err := s.membership(ctx, actor, uid)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanManage() {
		return nil, apperror.Conflict("only group admin users can update the group.")
	}
	return s.groups.Update(ctx, group.ID, patch, Options{})
}

func (s *groupService) Delete(ctx context.Context, actor *model.User, uid string) (*model.Group, error) {
	group, member, err := s.membership(ctx, actor, uid)
	if err != nil {
		return nil, err
	}
	if member.Role != model.GroupRoleSuperAdmin {
		return nil, apperror.Conflict("only the group super admin can delete the group.")
	}
	return s.groups.GetOneAndRemove(ctx, repository.Where{repository.IDColumn: group.ID})
}

func (s *groupService) UserRole(ctx context.Context, actor *model.User, uid string) (*model.GroupAssignedUser, error) {
	_, member, err := s.membership(ctx, actor, uid)
	return member, err
}

func (s *groupService) AssignUser(ctx context.Context, user *model.User, group *model.Group, role model.GroupRole) (*model.GroupAssignedUser, error) {
	return s.members.Create(ctx, &model.GroupAssignedUser{
		UID:     uuid.NewString(),
		Role:    role,
		UserID:  user.ID,
		GroupID: group.ID,
	}, Options{Unique: []Constraint{{
		Fields:  repository.Where{"user_id": user.ID, "group_id": group.ID},
		Message: "the user already belongs to the group.",
	}}})
}

func (s *groupService) membership(ctx context.Context, actor *model.User, uid string) (*model.Group, *model.GroupAssignedUser, error) {
	group, err := s.FindOne(ctx, actor, uid)
	if err != nil {
		return nil, nil, err
	}
	member, err := s.members.GetOne(ctx, GetOptions{
		Where:         repository.Where{"user_id": actor.ID, "group_id": group.ID},
		CheckIfExists: true,
	})
	if err != nil {
		return nil, nil, err
	}
	return group, member, nil
}
