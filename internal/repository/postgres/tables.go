package postgres

import (
	"groupapi/internal/model"
)

// UserTable maps model.User onto the users table.
var UserTable = Table[model.User]{
	Name:       "users",
	Entity:     "user",
	SoftDelete: true,
	Columns: []string{
		"id", "auth_uid", "name", "last_name", "email", "phone", "password",
		"is_admin", "is_active", "verified_email", "created_at", "updated_at", "deleted_at",
	},
	ID: func(u *model.User) int64 { return u.ID },
	Values: func(u *model.User) []any {
		return []any{
			u.AuthUID, u.Name, u.LastName, u.Email, u.Phone, u.Password,
			u.IsAdmin, u.IsActive, u.VerifiedEmail, u.CreatedAt, u.UpdatedAt, u.DeletedAt,
		}
	},
	Scan: func(s scanner, u *model.User) error {
		return s.Scan(
			&u.ID, &u.AuthUID, &u.Name, &u.LastName, &u.Email, &u.Phone, &u.Password,
			&u.IsAdmin, &u.IsActive, &u.VerifiedEmail, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
		)
	},
	Timestamps: func(u *model.User) *model.Timestamps { return &u.Timestamps },
}

var GroupTable = Table[model.Group]{
	Name:    "groups",
	Entity:  "group",
	Columns: []string{"id", "uid", "name", "created_at", "updated_at"},
	ID:      func(g *model.Group) int64 { return g.ID },
	Values: func(g *model.Group) []any {
		return []any{g.UID, g.Name, g.CreatedAt, g.UpdatedAt}
	},
	Scan: func(s scanner, g *model.Group) error {
		return s.Scan(&g.ID, &g.UID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	},
	Timestamps: func(g *model.Group) *model.Timestamps { return &g.Timestamps },
}

var GroupAssignedUserTable = Table[model.GroupAssignedUser]{
	Name:    "group_assigned_users",
	Entity:  "group member",
	Columns: []string{"id", "uid", "role", "user_id", "group_id", "created_at", "updated_at"},
	ID:      func(m *model.GroupAssignedUser) int64 { return m.ID },
	Values: func(m *model.GroupAssignedUser) []any {
		return []any{m.UID, string(m.Role), m.UserID, m.GroupID, m.CreatedAt, m.UpdatedAt}
	},
	Scan: func(s scanner, m *model.GroupAssignedUser) error {
		return s.Scan(&m.ID, &m.UID, &m.Role, &m.UserID, &m.GroupID, &m.CreatedAt, &m.UpdatedAt)
	},
	Timestamps: func(m *model.GroupAssignedUser) *model.Timestamps { return &m.Timestamps },
}

var GroupRequestTable = Table[model.GroupRequest]{
	Name:    "group_requests",
	Entity:  "group request",
	Columns: []string{"id", "uid", "status", "user_id", "group_id", "created_at", "updated_at"},
	ID:      func(r *model.GroupRequest) int64 { return r.ID },
	Values: func(r *model.GroupRequest) []any {
		return []any{r.UID, string(r.Status), r.UserID, r.GroupID, r.CreatedAt, r.UpdatedAt}
	},
	Scan: func(s scanner, r *model.GroupRequest) error {
		return s.Scan(&r.ID, &r.UID, &r.Status, &r.UserID, &r.GroupID, &r.CreatedAt, &r.UpdatedAt)
	},
	Timestamps: func(r *model.GroupRequest) *model.Timestamps { return &r.Timestamps },
}

var LabelTable = Table[model.Label]{
	Name:    "labels",
	Entity:  "label",
	Columns: []string{"id", "uid", "name", "text_color", "background_color", "created_at", "updated_at"},
	ID:      func(l *model.Label) int64 { return l.ID },
	Values: func(l *model.Label) []any {
		return []any{l.UID, l.Name, l.TextColor, l.BackgroundColor, l.CreatedAt, l.UpdatedAt}
	},
	Scan: func(s scanner, l *model.Label) error {
		return s.Scan(&l.ID, &l.UID, &l.Name, &l.TextColor, &l.BackgroundColor, &l.CreatedAt, &l.UpdatedAt)
	},
	Timestamps: func(l *model.Label) *model.Timestamps { return &l.Timestamps },
}

var GroupLabelTable = Table[model.GroupLabel]{
	Name:   "group_labels",
	Entity: "group label",
	Columns: []string{
		"id", "uid", "name", "text_color", "background_color", "group_id", "created_at", "updated_at",
	},
	ID: func(l *model.GroupLabel) int64 { return l.ID },
	Values: func(l *model.GroupLabel) []any {
		return []any{l.UID, l.Name, l.TextColor, l.BackgroundColor, l.GroupID, l.CreatedAt, l.UpdatedAt}
	},
	Scan: func(s scanner, l *model.GroupLabel) error {
		return s.Scan(&l.ID, &l.UID, &l.Name, &l.TextColor, &l.BackgroundColor, &l.GroupID, &l.CreatedAt, &l.UpdatedAt)
	},
	Timestamps: func(l *model.GroupLabel) *model.Timestamps { return &l.Timestamps },
}

// Stores bundles one Store per entity sharing a connection.
type Stores struct {
	Users       *Store[model.User]
	Groups      *Store[model.Group]
	Members     *Store[model.GroupAssignedUser]
	Requests    *Store[model.GroupRequest]
	Labels      *Store[model.Label]
	GroupLabels *Store[model.GroupLabel]
}

// NewStores builds every store over db.
func NewStores(db DBTX) *Stores {
	return &Stores{
		Users:       NewStore(db, UserTable),
		Groups:      NewStore(db, GroupTable),
		Members:     NewStore(db, GroupAssignedUserTable),
		Requests:    NewStore(db, GroupRequestTable),
		Labels:      NewStore(db, LabelTable),
		GroupLabels: NewStore(db, GroupLabelTable),
	}
}
