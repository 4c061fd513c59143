package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of dashboard roles. The zero value grants no
// visibility, so an unrecognized role can never widen a scope.
type Role int

const (
	RoleNone Role = iota
	RoleAdmin
	RoleBizDev
	RoleViewer
)

// String returns the role name used in logs and session captions.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleBizDev:
		return "bizdev"
	case RoleViewer:
		return "viewer"
	default:
		return "none"
	}
}

// User is an authenticated dashboard identity resolved from the static
// authorization table. RepName is set for RoleBizDev, DoctorList for
// RoleViewer; each role's scope predicate reads only its own field.
type User struct {
	Email string
	Name  string
	Role  Role

	RepName    string
	DoctorList []string
}

// Session is the per-login state. Created at login, discarded at logout,
// never persisted.
type Session struct {
	ID      uuid.UUID
	User    User
	LoginAt time.Time
}
