package model

type GroupRequestStatus string

const (
	GroupRequestPending  GroupRequestStatus = "PENDING"
	GroupRequestRejected GroupRequestStatus = "REJECTED"
)

// Valid reports whether s is a known status.
func (s GroupRequestStatus) Valid() bool {
	return s == GroupRequestPending || s == GroupRequestRejected
}

// GroupRequest is an invitation for a user to join a group.
type GroupRequest struct {
	ID      int64              `json:"-"`
	UID     string             `json:"uid"`
	Status  GroupRequestStatus `json:"status"`
	UserID  int64              `json:"-"`
	GroupID int64              `json:"-"`
	Group   *Group             `json:"group,omitempty"`
	Timestamps
}
