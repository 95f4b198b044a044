package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/student-info-api/internal/utils"
)

func TestValidRole(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidRole("admin"))
	assert.True(t, ValidRole("teacher"))
	assert.True(t, ValidRole("student"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("Admin"))
	assert.False(t, ValidRole("superuser"))
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	admin := utils.Identity{UserID: 1, Role: RoleAdmin}
	teacher := utils.Identity{UserID: 2, Role: RoleTeacher}
	student := utils.Identity{UserID: 3, Role: RoleStudent}

	cases := []struct {
		name    string
		id      utils.Identity
		action  Action
		res     Resource
		allowed bool
	}{
		{"admin lists users", admin, ActionListUsers, Resource{}, true},
		{"teacher lists users", teacher, ActionListUsers, Resource{}, false},
		{"admin deletes user", admin, ActionDeleteUser, Resource{OwnerID: 3}, true},
		{"student deletes own account", student, ActionDeleteUser, Resource{OwnerID: 3}, false},
		{"admin creates admin", admin, ActionCreateAdmin, Resource{}, true},
		{"teacher creates admin", teacher, ActionCreateAdmin, Resource{}, false},
		{"owner reads own record", student, ActionReadUser, Resource{OwnerID: 3}, true},
		{"non-owner reads record", student, ActionReadUser, Resource{OwnerID: 2}, false},
		{"admin reads any record", admin, ActionReadUser, Resource{OwnerID: 3}, true},
		{"owner updates own record", teacher, ActionUpdateUser, Resource{OwnerID: 2}, true},
		{"non-owner updates record", teacher, ActionUpdateUser, Resource{OwnerID: 3}, false},
		{"student manages roster", student, ActionManageRoster, Resource{}, true},
		{"teacher views stats", teacher, ActionViewStats, Resource{}, true},
		{"unknown action", admin, Action("nope"), Resource{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.id, tc.action, tc.res)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var denied *DeniedError
				assert.ErrorAs(t, err, &denied)
				assert.NotEmpty(t, denied.Reason)
			}
		})
	}
}

func TestAuthorizeRejectsAnonymous(t *testing.T) {
	t.Parallel()

	err := Authorize(utils.Identity{}, ActionManageRoster, Resource{})
	require.Error(t, err)

	err = Authorize(utils.Identity{UserID: 5, Role: "ghost"}, ActionViewStats, Resource{})
	require.Error(t, err)
}
