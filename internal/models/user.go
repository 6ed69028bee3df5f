package models

// UserRole is the dashboard role stored in the user's app_metadata.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleViewer  UserRole = "viewer"
)

// CanArchive reports whether the role may archive or restore records.
func (r UserRole) CanArchive() bool {
	return r == RoleAdmin || r == RoleManager
}
