package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name string
		role Role
		cap  Capability
		want bool
	}{
		{name: "admin manages teachers", role: RoleAdmin, cap: CanManageTeachers, want: true},
		{name: "teacher manages students", role: RoleTeacher, cap: CanManageStudents, want: true},
		{name: "teacher cannot manage classes", role: RoleTeacher, cap: CanManageClasses},
		{name: "parent manages finance", role: RoleParent, cap: CanManageFinance, want: true},
		{name: "parent cannot manage library", role: RoleParent, cap: CanManageLibrary},
		{name: "student manages library", role: RoleStudent, cap: CanManageLibrary, want: true},
		{name: "student cannot delete", role: RoleStudent, cap: CanDeleteAllData},
		{name: "unknown role", role: Role("janitor"), cap: CanViewReports},
		{name: "unknown capability", role: RoleAdmin, cap: Capability("canFly")},
		{name: "empty role", cap: CanViewReports},
		{name: "empty capability", role: RoleAdmin},
		{name: "system holds known capability", role: RoleSystem, cap: CanManageParents, want: true},
		{name: "system rejects unknown capability", role: RoleSystem, cap: Capability("canFly")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.cap))
		})
	}
}

func TestCapabilitiesAreExhaustive(t *testing.T) {
	for _, role := range AllRoles {
		caps := Capabilities(role)
		require.Len(t, caps, len(AllCapabilities), role)
		for _, c := range AllCapabilities {
			_, ok := caps[c]
			assert.True(t, ok, "%s misses %s", role, c)
		}
	}
	assert.Nil(t, Capabilities(Role("janitor")))
}

func TestCapabilitiesReturnsCopy(t *testing.T) {
	caps := Capabilities(RoleStudent)
	caps[CanManageUsers] = true
	assert.False(t, HasPermission(RoleStudent, CanManageUsers))
}

func TestCanAccessRoute(t *testing.T) {
	tests := []struct {
		name  string
		role  Role
		route string
		want  bool
	}{
		{name: "teacher lists students", role: RoleTeacher, route: "/students", want: true},
		{name: "teacher cannot edit students", role: RoleTeacher, route: "/students/[id]/edit"},
		{name: "admin edits students", role: RoleAdmin, route: "/students/[id]/edit", want: true},
		{name: "parent sees finance", role: RoleParent, route: "/finance/fees", want: true},
		{name: "parent cannot see salaries", role: RoleParent, route: "/finance/salaries"},
		{name: "student sees books", role: RoleStudent, route: "/library/books", want: true},
		{name: "dynamic segment is literal only", role: RoleAdmin, route: "/students/student-001"},
		{name: "unknown route", role: RoleAdmin, route: "/nowhere"},
		{name: "empty route", role: RoleAdmin},
		{name: "empty role", route: "/settings"},
		{name: "system is not in the table", role: RoleSystem, route: "/settings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessRoute(tt.role, tt.route))
		})
	}
}

func TestCanAccessRouteUnknownRouteIsFalseForEveryRole(t *testing.T) {
	for _, role := range append(AllRoles, RoleSystem) {
		assert.False(t, CanAccessRoute(role, "/students/:id"), role)
		assert.False(t, CanAccessRoute(role, "/STUDENTS"), role)
	}
}

func TestNavigation(t *testing.T) {
	nav := Navigation(RoleStudent)
	ids := make([]string, 0, len(nav))
	for _, item := range nav {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"dashboard", "grades", "schedule", "library", "reports", "settings"}, ids)

	assert.Len(t, Navigation(RoleAdmin), 16)
	assert.Equal(t, "/dashboard", Navigation(RoleTeacher)[0].Path)
	assert.Nil(t, Navigation(RoleSystem))

	nav[0].Path = "/hacked"
	assert.Equal(t, "/dashboard", Navigation(RoleStudent)[0].Path)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("parent")
	require.NoError(t, err)
	assert.Equal(t, RoleParent, role)

	_, err = ParseRole("system")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestAccessibleRoutes(t *testing.T) {
	routes := AccessibleRoutes(RoleStudent)
	assert.Contains(t, routes, "/grades/[id]")
	assert.NotContains(t, routes, "/students")
	assert.Len(t, AccessibleRoutes(RoleAdmin), len(Routes()))
}
