package user

import "time"

type Role string

const (
	RoleEmployee   Role = "Employee"   // Clocks in/out and files requests
	RoleSupervisor Role = "Supervisor" // Reviews direct reports' requests and attendance
	RoleAdmin      Role = "Admin"      // Sees every attendance record
)

// User is a directory record. It is owned by the identity collaborator and is
// read-only to the attendance and request services.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	SupervisorID *string
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// IsAdmin checks if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSupervisor checks if user is supervisor or admin
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor || u.Role == RoleAdmin
}

// ReportsTo reports whether supervisorID is u's direct manager.
func (u *User) ReportsTo(supervisorID string) bool {
	return u.SupervisorID != nil && *u.SupervisorID == supervisorID
}

// CanResolveRequestOf decides whether approver may approve or reject a request
// filed by requester: the requester's own supervisor, or any admin.
func CanResolveRequestOf(approver, requester User) bool {
	if approver.IsAdmin() {
		return true
	}
	return requester.ReportsTo(approver.ID)
}

// CanViewRequestOf is CanResolveRequestOf plus the requester themself.
func CanViewRequestOf(viewer, requester User) bool {
	return viewer.ID == requester.ID || CanResolveRequestOf(viewer, requester)
}
