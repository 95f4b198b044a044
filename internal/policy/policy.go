// Package policy holds the authorization rules applied after a request has
// been authenticated.  Authentication (who the caller is) lives in the gate
// middleware; this package answers whether that caller may perform an action
// on a resource.  The decision function is pure: it performs no I/O, so a
// deny never depends on database state beyond what the caller passes in.
package policy

import (
	"github.com/okandemir/student-info-api/internal/utils"
)

// Role values carried in the JWT "role" claim and stored on user rows.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleTeacher || s == RoleStudent
}

// Action enumerates the operations the policy knows about.
type Action string

const (
	ActionListUsers    Action = "users.list"
	ActionReadUser     Action = "users.read"
	ActionUpdateUser   Action = "users.update"
	ActionDeleteUser   Action = "users.delete"
	ActionCreateAdmin  Action = "users.create_admin"
	ActionManageRoster Action = "roster.manage"
	ActionViewStats    Action = "stats.view"
)

// Resource describes the target of an action.  OwnerID is the user ID that
// owns the resource (for user records, the record's own ID); zero means the
// action has no owner to compare against.
type Resource struct {
	OwnerID uint64
}

// DeniedError carries the human-readable reason surfaced to the client as a
// 403 {"message": reason} body.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string { return e.Reason }

// Authorize decides whether the identity may perform the action on the
// resource.  It returns nil on allow and a *DeniedError on deny.
//
// Rules:
//   - listing and deleting users, and creating admin accounts, require the
//     admin role
//   - reading or updating a user record requires admin or ownership
//   - roster CRUD (students/teachers/courses/grades/attendances) and stats
//     require only a valid authenticated identity; any caller that passed
//     the gate may mutate any roster record
func Authorize(id utils.Identity, action Action, res Resource) error {
	if id.UserID == 0 || !ValidRole(id.Role) {
		return &DeniedError{Reason: "no authenticated identity"}
	}
	switch action {
	case ActionListUsers:
		if id.Role != RoleAdmin {
			return &DeniedError{Reason: "only admins may list users"}
		}
	case ActionDeleteUser:
		if id.Role != RoleAdmin {
			return &DeniedError{Reason: "only admins may delete users"}
		}
	case ActionCreateAdmin:
		if id.Role != RoleAdmin {
			return &DeniedError{Reason: "only admins may create admin accounts"}
		}
	case ActionReadUser, ActionUpdateUser:
		if id.Role != RoleAdmin && id.UserID != res.OwnerID {
			return &DeniedError{Reason: "not the owner of this account"}
		}
	case ActionManageRoster, ActionViewStats:
		// Any authenticated identity is allowed.
	default:
		return &DeniedError{Reason: "unknown action"}
	}
	return nil
}
