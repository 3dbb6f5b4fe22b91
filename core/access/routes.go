package access

import "sort"

// NavItem is one entry of a role's sidebar menu. Icon names the frontend icon component.
type NavItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Path  string `json:"path"`
}

var (
	navDashboard     = NavItem{ID: "dashboard", Label: "Dashboard", Icon: "LayoutDashboard", Path: "/dashboard"}
	navStudents      = NavItem{ID: "students", Label: "Students", Icon: "GraduationCap", Path: "/students"}
	navTeachers      = NavItem{ID: "teachers", Label: "Teachers", Icon: "Users", Path: "/teachers"}
	navParents       = NavItem{ID: "parents", Label: "Parents", Icon: "UserCircle", Path: "/parents"}
	navClasses       = NavItem{ID: "classes", Label: "Classes", Icon: "School", Path: "/classes"}
	navCourses       = NavItem{ID: "courses", Label: "Courses", Icon: "BookOpen", Path: "/courses"}
	navGrades        = NavItem{ID: "grades", Label: "Grades", Icon: "Award", Path: "/grades"}
	navAttendance    = NavItem{ID: "attendance", Label: "Attendance", Icon: "CalendarCheck", Path: "/attendance"}
	navSchedule      = NavItem{ID: "schedule", Label: "Schedule", Icon: "Calendar", Path: "/schedule"}
	navFinance       = NavItem{ID: "finance", Label: "Finance", Icon: "DollarSign", Path: "/finance"}
	navLibrary       = NavItem{ID: "library", Label: "Library", Icon: "Library", Path: "/library"}
	navTransport     = NavItem{ID: "transport", Label: "Transport", Icon: "Bus", Path: "/transport"}
	navCommunication = NavItem{ID: "communication", Label: "Communication", Icon: "MessageSquare", Path: "/communication"}
	navReports       = NavItem{ID: "reports", Label: "Reports", Icon: "BarChart3", Path: "/reports"}
	navAdmin         = NavItem{ID: "admin", Label: "Admin", Icon: "Shield", Path: "/admin"}
	navSettings      = NavItem{ID: "settings", Label: "Settings", Icon: "Settings", Path: "/settings"}
)

var navigation = map[Role][]NavItem{
	RoleAdmin: {
		navDashboard, navStudents, navTeachers, navParents, navClasses, navCourses,
		navGrades, navAttendance, navSchedule, navFinance, navLibrary, navTransport,
		navCommunication, navReports, navAdmin, navSettings,
	},
	RoleTeacher: {
		navDashboard, navStudents, navClasses, navCourses, navGrades, navAttendance,
		navSchedule, navLibrary, navCommunication, navReports, navSettings,
	},
	RoleParent: {
		navDashboard, navGrades, navAttendance, navSchedule, navFinance, navTransport,
		navCommunication, navReports, navSettings,
	},
	RoleStudent: {
		navDashboard, navGrades, navSchedule, navLibrary, navReports, navSettings,
	},
}

// Navigation returns the ordered menu for role, nil for unknown roles.
func Navigation(role Role) []NavItem {
	items, ok := navigation[role]
	if !ok {
		return nil
	}
	cpy := make([]NavItem, len(items))
	copy(cpy, items)
	return cpy
}

var (
	adminOnly        = []Role{RoleAdmin}
	adminTeacher     = []Role{RoleAdmin, RoleTeacher}
	adminParent      = []Role{RoleAdmin, RoleParent}
	adminTeacherPar  = []Role{RoleAdmin, RoleTeacher, RoleParent}
	adminTeacherStud = []Role{RoleAdmin, RoleTeacher, RoleStudent}
	everyone         = []Role{RoleAdmin, RoleTeacher, RoleParent, RoleStudent}
)

// routePermissions keys are literal paths. Dynamic segments are written as [id] and
// are only matched by that exact literal; no substitution happens here.
var routePermissions = map[string][]Role{
	"/students":           adminTeacher,
	"/students/create":    adminTeacher,
	"/students/[id]":      adminTeacher,
	"/students/[id]/edit": adminOnly,

	"/teachers":           adminOnly,
	"/teachers/create":    adminOnly,
	"/teachers/[id]":      adminOnly,
	"/teachers/[id]/edit": adminOnly,

	"/parents":        adminOnly,
	"/parents/create": adminOnly,
	"/parents/[id]":   adminOnly,

	"/classes":           adminTeacher,
	"/classes/create":    adminOnly,
	"/classes/[id]":      adminTeacher,
	"/classes/[id]/edit": adminOnly,

	"/courses":        adminTeacher,
	"/courses/create": adminTeacher,

	"/grades":        everyone,
	"/grades/create": adminTeacher,
	"/grades/[id]":   everyone,

	"/attendance":        adminTeacherPar,
	"/attendance/create": adminTeacher,

	"/schedule":        everyone,
	"/schedule/create": adminTeacher,

	"/finance":          adminParent,
	"/finance/fees":     adminParent,
	"/finance/salaries": adminOnly,
	"/finance/expenses": adminOnly,

	"/library":       adminTeacherStud,
	"/library/books": adminTeacherStud,

	"/transport":        adminParent,
	"/transport/buses":  adminParent,
	"/transport/routes": adminParent,

	"/communication": adminTeacherPar,

	"/reports": adminTeacher,

	"/admin":              adminOnly,
	"/admin/users":        adminOnly,
	"/admin/users/create": adminOnly,
	"/admin/roles":        adminOnly,
	"/admin/permissions":  adminOnly,
	"/admin/logs":         adminOnly,
	"/admin/backup":       adminOnly,

	"/settings":               everyone,
	"/settings/profile":       everyone,
	"/settings/account":       everyone,
	"/settings/notifications": everyone,
	"/settings/security":      everyone,
	"/settings/system":        adminOnly,
}

// CanAccessRoute reports whether role appears in the allowed roles of route.
// Unknown routes and empty roles are never accessible.
func CanAccessRoute(role Role, route string) bool {
	if role == "" || route == "" {
		return false
	}
	for _, allowed := range routePermissions[route] {
		if allowed == role {
			return true
		}
	}
	return false
}

// Routes lists every route of the table, sorted.
func Routes() []string {
	routes := make([]string, 0, len(routePermissions))
	for r := range routePermissions {
		routes = append(routes, r)
	}
	sort.Strings(routes)
	return routes
}

// AccessibleRoutes lists the routes role may reach, sorted.
func AccessibleRoutes(role Role) []string {
	routes := make([]string, 0)
	for _, r := range Routes() {
		if CanAccessRoute(role, r) {
			routes = append(routes, r)
		}
	}
	return routes
}
