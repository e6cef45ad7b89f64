package domain

// Role enumerates console roles carried in tokens.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Identity is the authenticated caller resolved from a verified bearer token.
type Identity struct {
	ID   string
	Role Role
	Name string
}
