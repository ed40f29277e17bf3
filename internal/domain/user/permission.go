package user

type Permission string

const (
	// Attendance
	PermissionAttendanceClock    Permission = "attendance.clock"
	PermissionAttendanceViewOwn  Permission = "attendance.view_own"
	PermissionAttendanceViewTeam Permission = "attendance.view_team"
	PermissionAttendanceViewAll  Permission = "attendance.view_all"
	PermissionAttendanceExport   Permission = "attendance.export"

	// Requests
	PermissionRequestCreate  Permission = "request.create"
	PermissionRequestViewOwn Permission = "request.view_own"
	PermissionRequestReview  Permission = "request.review"

	// Directory
	PermissionDirectoryViewTeam Permission = "directory.view_team"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewTeam,
		PermissionAttendanceViewAll,
		PermissionAttendanceExport,
		PermissionRequestCreate,
		PermissionRequestViewOwn,
		PermissionRequestReview,
		PermissionDirectoryViewTeam,
	},
	RoleSupervisor: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewTeam,
		PermissionAttendanceExport,
		PermissionRequestCreate,
		PermissionRequestViewOwn,
		PermissionRequestReview,
		PermissionDirectoryViewTeam,
	},
	RoleEmployee: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionRequestCreate,
		PermissionRequestViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
