package model

// GroupRole is the role a member holds inside a group.
type GroupRole string

const (
	GroupRoleSuperAdmin GroupRole = "SUPER_ADMIN"
	GroupRoleAdmin      GroupRole = "ADMIN"
	GroupRoleUser       GroupRole = "USER"
)

// CanManage reports whether the role may administer the group.
func (r GroupRole) CanManage() bool {
	return r == GroupRoleSuperAdmin || r == GroupRoleAdmin
}

type Group struct {
	ID   int64  `json:"-"`
	UID  string `json:"uid"`
	Name string `json:"name"`
	Timestamps
}

// GroupAssignedUser links a user to a group with a role.
type GroupAssignedUser struct {
	ID      int64     `json:"-"`
	UID     string    `json:"uid"`
	Role    GroupRole `json:"role"`
	UserID  int64     `json:"-"`
	GroupID int64     `json:"-"`
	Timestamps
}
