package model

// Role is the closed set of account roles. Role values are stored
// verbatim in users.role and embedded in the JWT "role" claim, so the
// constants below must never change without a data migration.
//
// Values:
//  RoleUser  – normal user; browses stores and submits ratings.
//  RoleOwner – store owner; reads the ratings of their assigned store.
//  RoleAdmin – system administrator; manages users and stores.
type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps an incoming string onto the closed role set. The
// second return value is false for anything outside the set; callers
// must treat that as a validation failure rather than defaulting.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleOwner, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// String returns the stored representation of the role.
func (r Role) String() string { return string(r) }
