package model

// Role enumerates the two account levels.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Authorization actions gated per route. Staff-level actions are not listed;
// any authenticated user may perform them.
const (
	ActionCaseCreateAuth  = "case:create"
	ActionCaseRenameAuth  = "case:rename"
	ActionCaseArchiveAuth = "case:archive"
	ActionUserViewAuth    = "user:view"
	ActionUserCreateAuth  = "user:create"
	ActionUserDisableAuth = "user:disable"
)

// ActionRoles is the explicit authorization table: which roles may perform
// each gated action. Actions absent from the table require any logged-in
// user.
var ActionRoles = map[string][]Role{
	ActionCaseCreateAuth:  {RoleAdmin},
	ActionCaseRenameAuth:  {RoleAdmin},
	ActionCaseArchiveAuth: {RoleAdmin},
	ActionUserViewAuth:    {RoleAdmin},
	ActionUserCreateAuth:  {RoleAdmin},
	ActionUserDisableAuth: {RoleAdmin},
}

// RoleAllowed checks the table for a role/action pair.
func RoleAllowed(role Role, action string) bool {
	allowed, ok := ActionRoles[action]
	if !ok {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
