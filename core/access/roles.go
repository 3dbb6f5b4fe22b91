// Package access holds the console's static role tables: capability flags per role,
// the ordered navigation menu per role and the route → allowed roles table.
package access

import (
	"sort"

	"github.com/pkg/errors"
)

type Role string

// Roles
const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
	RoleStudent Role = "student"

	// RoleSystem is the actor used by the store's own orchestration (seed load, message timers).
	// It holds every capability and never appears in the route table or navigation.
	RoleSystem Role = "system"
)

var (
	AllRoles = []Role{RoleAdmin, RoleTeacher, RoleParent, RoleStudent}

	ErrUnknownRole = errors.New("unknown role")
)

func (r Role) String() string { return string(r) }

// ParseRole maps s onto one of AllRoles.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownRole, "%q", s)
}

type Capability string

const (
	CanManageStudents      Capability = "canManageStudents"
	CanManageTeachers      Capability = "canManageTeachers"
	CanManageParents       Capability = "canManageParents"
	CanManageClasses       Capability = "canManageClasses"
	CanManageCourses       Capability = "canManageCourses"
	CanManageGrades        Capability = "canManageGrades"
	CanManageAttendance    Capability = "canManageAttendance"
	CanManageSchedule      Capability = "canManageSchedule"
	CanManageFinance       Capability = "canManageFinance"
	CanManageLibrary       Capability = "canManageLibrary"
	CanManageTransport     Capability = "canManageTransport"
	CanManageCommunication Capability = "canManageCommunication"
	CanManageSettings      Capability = "canManageSettings"
	CanViewReports         Capability = "canViewReports"
	CanManageUsers         Capability = "canManageUsers"
	CanViewAllData         Capability = "canViewAllData"
	CanEditAllData         Capability = "canEditAllData"
	CanDeleteAllData       Capability = "canDeleteAllData"
)

// AllCapabilities lists every capability in table order.
var AllCapabilities = []Capability{
	CanManageStudents, CanManageTeachers, CanManageParents, CanManageClasses,
	CanManageCourses, CanManageGrades, CanManageAttendance, CanManageSchedule,
	CanManageFinance, CanManageLibrary, CanManageTransport, CanManageCommunication,
	CanManageSettings, CanViewReports, CanManageUsers, CanViewAllData,
	CanEditAllData, CanDeleteAllData,
}

// grant builds a full flag set where only the listed capabilities are true.
func grant(caps ...Capability) map[Capability]bool {
	flags := make(map[Capability]bool, len(AllCapabilities))
	for _, c := range AllCapabilities {
		flags[c] = false
	}
	for _, c := range caps {
		flags[c] = true
	}
	return flags
}

var rolePermissions = map[Role]map[Capability]bool{
	RoleAdmin: grant(AllCapabilities...),
	RoleTeacher: grant(
		CanManageStudents, CanManageGrades, CanManageAttendance, CanManageSchedule,
		CanManageLibrary, CanManageCommunication, CanViewReports,
	),
	RoleParent: grant(
		CanManageFinance, CanManageTransport, CanManageCommunication, CanViewReports,
	),
	RoleStudent: grant(CanManageLibrary, CanViewReports),
}

// HasPermission returns the flag for role/capability, false when either is unrecognized.
// RoleSystem holds every known capability.
func HasPermission(role Role, capability Capability) bool {
	if role == "" || capability == "" {
		return false
	}
	if role == RoleSystem {
		_, known := rolePermissions[RoleAdmin][capability]
		return known
	}
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[capability]
}

// Capabilities returns a copy of the role's flag set, nil for unknown roles.
func Capabilities(role Role) map[Capability]bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	cpy := make(map[Capability]bool, len(perms))
	for c, v := range perms {
		cpy[c] = v
	}
	return cpy
}

// Granted lists the role's true capabilities, sorted.
func Granted(role Role) []Capability {
	granted := make([]Capability, 0)
	for c, v := range rolePermissions[role] {
		if v {
			granted = append(granted, c)
		}
	}
	sort.Slice(granted, func(i, j int) bool { return granted[i] < granted[j] })
	return granted
}
