package model

import "time"

// User is an account. Users are soft deleted.
type User struct {
	ID            int64      `json:"-"`
	AuthUID       string     `json:"auth_uid"`
	Name          string     `json:"name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Phone         *string    `json:"phone"`
	Password      string     `json:"-"`
	IsAdmin       bool       `json:"is_admin"`
	IsActive      bool       `json:"is_active"`
	VerifiedEmail bool       `json:"verified_email"`
	DeletedAt     *time.Time `json:"-"`
	Timestamps
}
