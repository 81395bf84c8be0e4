package domain

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// roleHierarchy maps each role to the set of roles it subsumes. The relation
// is reflexive and transitive by construction and must never be mutated at
// runtime.
var roleHierarchy = map[string][]string{
	RoleAdmin:     {RoleAdmin, RoleModerator, RoleUser},
	RoleModerator: {RoleModerator, RoleUser},
	RoleUser:      {RoleUser},
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	_, ok := roleHierarchy[s]
	return ok
}

// RoleSatisfies reports whether actual grants the permissions of required.
// Unknown actual roles satisfy nothing.
func RoleSatisfies(actual, required string) bool {
	for _, r := range roleHierarchy[actual] {
		if r == required {
			return true
		}
	}
	return false
}
