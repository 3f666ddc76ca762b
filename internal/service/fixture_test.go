package service

import (
	"context"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"groupapi/internal/auth"
	"groupapi/internal/config"
	"groupapi/internal/model"
	"groupapi/internal/repository"
)

// fixture wires every domain service over in-memory stores.
type fixture struct {
	users       *memStore[model.User]
	groups      *memStore[model.Group]
	members     *memStore[model.GroupAssignedUser]
	requests    *memStore[model.GroupRequest]
	labels      *memStore[model.Label]
	groupLabels *memStore[model.GroupLabel]

	User       UserService
	Auth       AuthService
	Group      GroupService
	Request    GroupRequestService
	Label      LabelService
	GroupLabel GroupLabelService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users: newUserMem(),
		members: &memStore[model.GroupAssignedUser]{
			entity: "group member",
			columns: func(m *model.GroupAssignedUser) map[string]any {
				return map[string]any{"id": m.ID, "uid": m.UID, "role": m.Role, "user_id": m.UserID, "group_id": m.GroupID}
			},
			setID: func(m *model.GroupAssignedUser, id int64) { m.ID = id },
		},
		requests: &memStore[model.GroupRequest]{
			entity: "group request",
			columns: func(r *model.GroupRequest) map[string]any {
				return map[string]any{"id": r.ID, "uid": r.UID, "status": r.Status, "user_id": r.UserID, "group_id": r.GroupID}
			},
			setID: func(r *model.GroupRequest, id int64) { r.ID = id },
		},
		labels: &memStore[model.Label]{
			entity: "label",
			columns: func(l *model.Label) map[string]any {
				return map[string]any{"id": l.ID, "uid": l.UID, "name": l.Name}
			},
			setID: func(l *model.Label, id int64) { l.ID = id },
		},
		groupLabels: &memStore[model.GroupLabel]{
			entity: "group label",
			columns: func(l *model.GroupLabel) map[string]any {
				return map[string]any{"id": l.ID, "uid": l.UID, "name": l.Name, "group_id": l.GroupID}
			},
			setID: func(l *model.GroupLabel, id int64) { l.ID = id },
		},
	}
	f.groups = &memStore[model.Group]{
		entity: "group",
		columns: func(g *model.Group) map[string]any {
			return map[string]any{"id": g.ID, "uid": g.UID, "name": g.Name}
		},
		setID: func(g *model.Group, id int64) { g.ID = id },
		cond: func(g *model.Group, c sq.Sqlizer) bool {
			m, ok := c.(memberOf)
			if !ok {
				return true
			}
			n, _ := f.members.Count(context.Background(), repository.Query{
				Where: repository.Where{"user_id": m.UserID, "group_id": g.ID},
			})
			return n > 0
		},
	}

	log := zap.NewNop()
	tokens := auth.NewTokenManager(config.JWTConfig{
		Issuer:                 "groupapi",
		AccessTokenSecret:      "access",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenSecret:     "refresh",
		RefreshTokenExpiration: time.Hour,
	})

	f.User = NewUserService(f.users, testLimits, log)
	f.Auth = NewAuthService(f.User, tokens, log)
	f.Group = NewGroupService(f.groups, f.members, testLimits, log)
	f.Request = NewGroupRequestService(f.requests, f.users, f.groups, f.members, f.Group, testLimits, log)
	f.Label = NewLabelService(f.labels, testLimits, log)
	f.GroupLabel = NewGroupLabelService(f.groupLabels, f.Group, testLimits, log)
	return f
}

// register creates an account with the password "password123".
func (f *fixture) register(t *testing.T, email string) *model.User {
	t.Helper()
	u, err := f.User.Create(context.Background(), CreateUserInput{
		Name: "Test", LastName: "User", Email: email, Password: "password123",
	})
	require.NoError(t, err)
	return u
}

// groupWith creates a group owned by owner and adds the given members with a role.
func (f *fixture) groupWith(t *testing.T, owner *model.User, name string, others map[*model.User]model.GroupRole) *model.Group {
	t.Helper()
	ctx := context.Background()
	g, err := f.Group.Create(ctx, owner, name)
	require.NoError(t, err)
	for u, role := range others {
		_, err := f.Group.AssignUser(ctx, u, g, role)
		require.NoError(t, err)
	}
	return g
}
