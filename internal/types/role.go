package types

// Role is the membership role of a club user.
type Role int

const (
	RoleUnknown Role = 0
	RoleMember  Role = 1
	RoleAdmin   Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func (r Role) Validate() bool {
	return r == RoleMember || r == RoleAdmin
}
